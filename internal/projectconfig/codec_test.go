package projectconfig

import (
	"database/sql/driver"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoRoundTrip(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"usingTarget":"monthly","monthly":{"schedules":[{"day":5,"hr":8,"min":30},{"day":20}]}}`,
		`{"weekly":{"selectedDay":0},"isFilter":true,"impressionThreshold":250.75,"reportEmailList":["ops@example.com","ads@example.com"]}`,
	}

	for _, input := range inputs {
		a, err := ParseAuto(json.RawMessage(input))
		require.NoError(t, err)

		text, err := a.Encode()
		require.NoError(t, err)

		decoded, err := DecodeAuto([]byte(text))
		require.NoError(t, err)
		assert.Equal(t, a, decoded, input)

		again, err := decoded.Encode()
		require.NoError(t, err)
		assert.Equal(t, text, again, "encoding is deterministic")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	c, err := ParseConfig(json.RawMessage(`{"customizeColumn":[{"name":"ROAS","value":"roas","isUsing":false}]}`))
	require.NoError(t, err)

	text, err := c.Encode()
	require.NoError(t, err)

	decoded, err := DecodeConfig([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, c, decoded)
}

func TestEncodeUsesStoredFieldNames(t *testing.T) {
	text, err := DefaultAuto().Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"usingTarget": "weekly",
		"weekly": {"selectedDay": 1},
		"monthly": {"schedules": []},
		"isFilter": false,
		"impressionThreshold": 0,
		"reportEmailList": []
	}`, text)

	text, err = Config{}.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"selectibleColumn":[],"usualColumn":[],"customizeColumn":[]}`, text)
}

func TestDecodeMissingTextYieldsDefaults(t *testing.T) {
	for _, text := range [][]byte{nil, []byte(""), []byte("   "), []byte("null")} {
		a, err := DecodeAuto(text)
		require.NoError(t, err)
		assert.Equal(t, DefaultAuto(), a)

		c, err := DecodeConfig(text)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), c)
	}
}

func TestDecodeStoredEmptyObjectMatchesMissing(t *testing.T) {
	a, err := DecodeAuto([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultAuto(), a)

	c, err := DecodeConfig([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestScanAndValue(t *testing.T) {
	var a Auto
	require.NoError(t, a.Scan(nil))
	assert.Equal(t, DefaultAuto(), a)

	require.NoError(t, a.Scan([]byte(`{"usingTarget":"monthly"}`)))
	assert.True(t, a.IsMonthly())

	require.NoError(t, a.Scan(`{"weekly":{"selectedDay":4}}`))
	assert.Equal(t, 4, a.Weekly.SelectedDay)

	assert.Error(t, a.Scan(42))
	assert.Error(t, a.Scan(`{"weekly":{"selectedDay":12}}`))

	var v driver.Valuer = DefaultConfig()
	val, err := v.Value()
	require.NoError(t, err)

	var c Config
	require.NoError(t, c.Scan(val))
	assert.Equal(t, DefaultConfig(), c)

	require.NoError(t, c.Scan(nil))
	assert.Equal(t, DefaultConfig(), c)
}
