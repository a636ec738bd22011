package projectconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	appErrors "github.com/unclebandit/adreport-backend/internal/errors"
	"github.com/unclebandit/adreport-backend/internal/validation"
)

// inputJSON turns the untyped input accepted by the parsers into JSON text.
// Raw bytes are taken as JSON; any other value is encoded first.
func inputJSON(input any) ([]byte, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return v, nil
	case []byte:
		return v, nil
	default:
		return json.Marshal(v)
	}
}

func isEmptyJSON(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}

func fieldPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}

// decoder walks JSON input one node at a time so that every type mismatch is
// reported with its own path. Paths that failed to decode are remembered and
// constraint violations under them are not reported a second time.
type decoder struct {
	verr    *appErrors.ValidationError
	invalid []string
}

func newDecoder(verr *appErrors.ValidationError) *decoder {
	return &decoder{verr: verr}
}

func (d *decoder) mismatch(path, want string) {
	d.verr.Add(path, "must be "+want)
	d.invalid = append(d.invalid, path)
}

func (d *decoder) covered(path string) bool {
	for _, p := range d.invalid {
		if path == p || strings.HasPrefix(path, p+".") || strings.HasPrefix(path, p+"[") {
			return true
		}
	}
	return false
}

// collect runs the struct rules on v, skipping paths that already hold a type error.
func (d *decoder) collect(v any) {
	found := &appErrors.ValidationError{}
	validation.Collect(found, "", v)
	for _, f := range found.Fields {
		if !d.covered(f.Field) {
			d.verr.Add(f.Field, f.Message)
		}
	}
}

// root reads the top level object. Missing input yields an empty object; ok is
// false when the input is unusable.
func (d *decoder) root(input any) (fields map[string]json.RawMessage, ok bool) {
	data, err := inputJSON(input)
	if err != nil {
		d.verr.Add("", "cannot be encoded as JSON")
		return nil, false
	}
	if isEmptyJSON(data) {
		return map[string]json.RawMessage{}, true
	}
	if !json.Valid(data) {
		d.verr.Add("", "malformed JSON")
		return nil, false
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		d.mismatch("", "an object")
		return nil, false
	}
	return fields, true
}

// object decodes an optional object member. Absent or null reports false
// without an error.
func (d *decoder) object(path string, raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if isEmptyJSON(raw) {
		return nil, false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		d.mismatch(path, "an object")
		return nil, false
	}
	return m, true
}

// element decodes an array entry that must be an object; null is a mismatch.
func (d *decoder) element(path string, raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if isEmptyJSON(raw) {
		d.mismatch(path, "an object")
		return nil, false
	}
	return d.object(path, raw)
}

func (d *decoder) array(path string, raw json.RawMessage) ([]json.RawMessage, bool) {
	if isEmptyJSON(raw) {
		return nil, false
	}
	items := []json.RawMessage{}
	if err := json.Unmarshal(raw, &items); err != nil {
		d.mismatch(path, "an array")
		return nil, false
	}
	return items, true
}

// scalar decodes raw into dst. Absent or null leaves dst untouched and reports
// false; so does a mismatch, which is recorded under path.
func (d *decoder) scalar(path string, raw json.RawMessage, dst any, want string) bool {
	if isEmptyJSON(raw) {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		d.mismatch(path, want)
		return false
	}
	return true
}

func (d *decoder) integer(path string, raw json.RawMessage, dst *int) bool {
	return d.scalar(path, raw, dst, "an integer")
}

func (d *decoder) number(path string, raw json.RawMessage, dst *float64) bool {
	return d.scalar(path, raw, dst, "a number")
}

func (d *decoder) str(path string, raw json.RawMessage, dst *string) bool {
	return d.scalar(path, raw, dst, "a string")
}

func (d *decoder) boolean(path string, raw json.RawMessage, dst *bool) bool {
	return d.scalar(path, raw, dst, "a boolean")
}
