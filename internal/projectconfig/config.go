package projectconfig

import (
	"encoding/json"

	appErrors "github.com/unclebandit/adreport-backend/internal/errors"
)

// Config holds the report column lists of a project. Column values are not
// checked for uniqueness.
type Config struct {
	SelectibleColumn []Column `json:"selectibleColumn" validate:"dive"`
	UsualColumn      []Column `json:"usualColumn" validate:"dive"`
	CustomizeColumn  []Column `json:"customizeColumn" validate:"dive"`
}

func (d *decoder) config(fields map[string]json.RawMessage) Config {
	return Config{
		SelectibleColumn: d.columns("selectibleColumn", fields["selectibleColumn"], DefaultSelectibleColumns),
		UsualColumn:      d.columns("usualColumn", fields["usualColumn"], DefaultUsualColumns),
		CustomizeColumn:  d.columns("customizeColumn", fields["customizeColumn"], noColumns),
	}
}

func noColumns() []Column { return []Column{} }

// columns returns def() when the list is absent. A given list, even an empty
// one, replaces the defaults.
func (d *decoder) columns(path string, raw json.RawMessage, def func() []Column) []Column {
	items, ok := d.array(path, raw)
	if !ok {
		return def()
	}

	out := make([]Column, 0, len(items))
	for i, item := range items {
		p := indexPath(path, i)
		col := Column{}
		if entry, ok := d.element(p, item); ok {
			d.str(fieldPath(p, "name"), entry["name"], &col.Name)
			d.str(fieldPath(p, "value"), entry["value"], &col.Value)
			if isEmptyJSON(entry["isUsing"]) {
				d.verr.Add(fieldPath(p, "isUsing"), "is required")
			} else {
				d.boolean(fieldPath(p, "isUsing"), entry["isUsing"], &col.IsUsing)
			}
		}
		out = append(out, col)
	}
	return out
}

// DefaultConfig is the column configuration of a freshly registered project.
func DefaultConfig() Config {
	return Config{
		SelectibleColumn: DefaultSelectibleColumns(),
		UsualColumn:      DefaultUsualColumns(),
		CustomizeColumn:  noColumns(),
	}
}

// ParseConfig defaults and validates an arbitrary, possibly partial, config object.
func ParseConfig(input any) (Config, error) {
	verr := &appErrors.ValidationError{}
	d := newDecoder(verr)

	fields, ok := d.root(input)
	if !ok {
		return Config{}, verr
	}

	c := d.config(fields)
	d.collect(c)
	if err := verr.OrNil(); err != nil {
		return Config{}, err
	}
	return c, nil
}
