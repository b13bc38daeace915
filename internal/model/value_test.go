package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsUnmarshalScalars(t *testing.T) {
	var p Params
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "Todo",
		"min_sdk": 24,
		"enabled": true,
		"note": null
	}`), &p))

	name, ok := p.GetString("name")
	assert.True(t, ok)
	assert.Equal(t, "Todo", name)

	sdk, ok := p.GetInt("min_sdk")
	assert.True(t, ok)
	assert.Equal(t, 24, sdk)

	assert.True(t, p["enabled"].Bool)
	assert.True(t, p["note"].IsNull())

	// Null values read as absent through GetString.
	_, ok = p.GetString("note")
	assert.False(t, ok)
}

func TestParamsRejectCompositeValues(t *testing.T) {
	var p Params
	assert.Error(t, json.Unmarshal([]byte(`{"opts": {"a": 1}}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"opts": [1, 2]}`), &p))
}

func TestGetIntCoercesNumericStrings(t *testing.T) {
	p := Params{
		"as_string": String("42"),
		"as_number": Number(7),
		"not_a_num": String("many"),
		"flag":      Bool(true),
	}

	n, ok := p.GetInt("as_string")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	n, ok = p.GetInt("as_number")
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = p.GetInt("not_a_num")
	assert.False(t, ok)
	_, ok = p.GetInt("flag")
	assert.False(t, ok)
	_, ok = p.GetInt("missing")
	assert.False(t, ok)
}

func TestValueAsString(t *testing.T) {
	assert.Equal(t, "hello", String("hello").AsString())
	assert.Equal(t, "2.5", Number(2.5).AsString())
	assert.Equal(t, "24", Number(24).AsString())
	assert.Equal(t, "true", Bool(true).AsString())
	assert.Equal(t, "", Null().AsString())
}

func TestValueMarshalRoundTrip(t *testing.T) {
	p := Params{
		"s": String("x"),
		"n": Number(3),
		"b": Bool(false),
		"z": Null(),
	}
	data, err := json.Marshal(p)
	require.NoError(t, err)

	var got Params
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, p, got)
}
