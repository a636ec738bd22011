package projectconfig

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Encode returns the stored text form of a. Nil lists are written as [].
func (a Auto) Encode() (string, error) {
	if a.Monthly.Schedules == nil {
		a.Monthly.Schedules = []Schedule{}
	}
	if a.ReportEmailList == nil {
		a.ReportEmailList = []string{}
	}
	b, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("encode auto: %w", err)
	}
	return string(b), nil
}

// DecodeAuto materializes stored text. Missing text (nil, empty or JSON null)
// yields DefaultAuto rather than an empty value.
func DecodeAuto(text []byte) (Auto, error) {
	if isEmptyJSON(text) {
		return DefaultAuto(), nil
	}
	return ParseAuto(json.RawMessage(text))
}

func (a Auto) Value() (driver.Value, error) {
	return a.Encode()
}

func (a *Auto) Scan(src any) error {
	data, err := scanBytes(src, "Auto")
	if err != nil {
		return err
	}
	decoded, err := DecodeAuto(data)
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}

// Encode returns the stored text form of c. Nil lists are written as [].
func (c Config) Encode() (string, error) {
	if c.SelectibleColumn == nil {
		c.SelectibleColumn = []Column{}
	}
	if c.UsualColumn == nil {
		c.UsualColumn = []Column{}
	}
	if c.CustomizeColumn == nil {
		c.CustomizeColumn = []Column{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(b), nil
}

// DecodeConfig materializes stored text. Missing text yields DefaultConfig.
func DecodeConfig(text []byte) (Config, error) {
	if isEmptyJSON(text) {
		return DefaultConfig(), nil
	}
	return ParseConfig(json.RawMessage(text))
}

func (c Config) Value() (driver.Value, error) {
	return c.Encode()
}

func (c *Config) Scan(src any) error {
	data, err := scanBytes(src, "Config")
	if err != nil {
		return err
	}
	decoded, err := DecodeConfig(data)
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}

func scanBytes(src any, into string) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("projectconfig: cannot scan %T into %s", src, into)
	}
}
