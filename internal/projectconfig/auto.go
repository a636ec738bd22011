package projectconfig

import (
	"encoding/json"

	appErrors "github.com/unclebandit/adreport-backend/internal/errors"
)

// Target selects which schedule branch of Auto is live.
type Target string

const (
	TargetWeekly  Target = "weekly"
	TargetMonthly Target = "monthly"
)

const (
	// selectedDay used when the whole weekly object is missing. A weekly
	// object without selectedDay gets 0 instead; both are relied upon.
	defaultWeeklySelectedDay = 1

	defaultScheduleDay = 1
	defaultScheduleHr  = 0
	defaultScheduleMin = 0
)

type Weekly struct {
	// 0 = Sunday
	SelectedDay int `json:"selectedDay" validate:"min=0,max=6"`
}

type Schedule struct {
	Day int `json:"day" validate:"min=1,max=28"`
	Hr  int `json:"hr" validate:"min=0,max=23"`
	Min int `json:"min" validate:"min=0,max=59"`
}

type Monthly struct {
	Schedules []Schedule `json:"schedules" validate:"dive"`
}

// Auto is the automated report schedule of a project. Weekly and Monthly are
// both kept whatever UsingTarget says, so switching modes loses nothing.
type Auto struct {
	UsingTarget         Target   `json:"usingTarget" validate:"oneof=weekly monthly"`
	Weekly              Weekly   `json:"weekly"`
	Monthly             Monthly  `json:"monthly"`
	IsFilter            bool     `json:"isFilter"`
	ImpressionThreshold float64  `json:"impressionThreshold" validate:"gte=0"`
	ReportEmailList     []string `json:"reportEmailList" validate:"dive,email"`
}

func (a Auto) IsWeekly() bool  { return a.UsingTarget == TargetWeekly }
func (a Auto) IsMonthly() bool { return a.UsingTarget == TargetMonthly }

func defaultAuto() Auto {
	return Auto{
		UsingTarget:     TargetWeekly,
		Weekly:          Weekly{SelectedDay: defaultWeeklySelectedDay},
		Monthly:         Monthly{Schedules: []Schedule{}},
		ReportEmailList: []string{},
	}
}

// DefaultAuto is the schedule of a freshly registered project.
func DefaultAuto() Auto {
	return defaultAuto()
}

func (d *decoder) auto(fields map[string]json.RawMessage) Auto {
	a := defaultAuto()

	var target string
	if d.str("usingTarget", fields["usingTarget"], &target) {
		a.UsingTarget = Target(target)
	}
	if w, ok := d.object("weekly", fields["weekly"]); ok {
		a.Weekly.SelectedDay = 0
		d.integer("weekly.selectedDay", w["selectedDay"], &a.Weekly.SelectedDay)
	}
	if m, ok := d.object("monthly", fields["monthly"]); ok {
		a.Monthly.Schedules = d.schedules("monthly.schedules", m["schedules"])
	}
	d.boolean("isFilter", fields["isFilter"], &a.IsFilter)
	d.number("impressionThreshold", fields["impressionThreshold"], &a.ImpressionThreshold)

	if items, ok := d.array("reportEmailList", fields["reportEmailList"]); ok {
		for i, raw := range items {
			path := indexPath("reportEmailList", i)
			var email string
			if isEmptyJSON(raw) {
				d.mismatch(path, "a string")
			} else {
				d.str(path, raw, &email)
			}
			a.ReportEmailList = append(a.ReportEmailList, email)
		}
	}
	return a
}

// schedules keeps one entry per input element, so reported indexes match the
// request even when an element is unusable.
func (d *decoder) schedules(path string, raw json.RawMessage) []Schedule {
	out := []Schedule{}
	items, ok := d.array(path, raw)
	if !ok {
		return out
	}
	for i, item := range items {
		p := indexPath(path, i)
		s := Schedule{Day: defaultScheduleDay, Hr: defaultScheduleHr, Min: defaultScheduleMin}
		if entry, ok := d.element(p, item); ok {
			d.integer(fieldPath(p, "day"), entry["day"], &s.Day)
			d.integer(fieldPath(p, "hr"), entry["hr"], &s.Hr)
			d.integer(fieldPath(p, "min"), entry["min"], &s.Min)
		}
		out = append(out, s)
	}
	return out
}

// ParseAuto defaults and validates an arbitrary, possibly partial, auto object.
// Every violated constraint is reported in one *apperrors.ValidationError.
func ParseAuto(input any) (Auto, error) {
	verr := &appErrors.ValidationError{}
	d := newDecoder(verr)

	fields, ok := d.root(input)
	if !ok {
		return Auto{}, verr
	}

	a := d.auto(fields)
	d.collect(a)
	if err := verr.OrNil(); err != nil {
		return Auto{}, err
	}
	return a, nil
}
