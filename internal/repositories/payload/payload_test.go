package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		raw  string
		want Type
	}{
		{"url", URL},
		{"wifi", WIFI},
		{"text", TEXT},
		{"email", EMAIL},
		{"sms", SMS},
		{"geo", GEO},
		{"", URL},
		{"bogus", URL},
		{"WIFI", URL},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseType(tt.raw))
		})
	}
}

func TestTypeString(t *testing.T) {
	for _, tag := range []string{TagURL, TagWIFI, TagTEXT, TagEMAIL, TagSMS, TagGEO} {
		assert.Equal(t, tag, ParseType(tag).String())
	}
	assert.Equal(t, TagURL, Type(42).String())
}

func TestFieldsFromForm(t *testing.T) {
	values := url.Values{
		FieldType:     []string{"wifi", "text"},
		FieldWifiSSID: []string{"home"},
		"empty":       []string{},
	}
	fields := FieldsFromForm(values)
	assert.Equal(t, "wifi", fields.Get(FieldType))
	assert.Equal(t, "home", fields.Get(FieldWifiSSID))
	assert.Equal(t, "", fields.Get("empty"))
	assert.Equal(t, "", fields.Get(FieldGeoLat))

	var nilFields Fields
	assert.Equal(t, "", nilFields.Get(FieldURL))
}

func TestMetaMarshalJSON(t *testing.T) {
	meta := Meta{
		{Key: "type", Value: "wifi"},
		{Key: "ssid", Value: "home \"net\""},
		{Key: "hidden", Value: true},
		{Key: "lat", Value: 48.137},
	}
	got, err := json.Marshal(meta)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"wifi","ssid":"home \"net\"","hidden":true,"lat":48.137}`, string(got))

	empty, err := json.Marshal(Meta{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(empty))

	v, ok := meta.Get("hidden")
	assert.Equal(t, true, ok)
	assert.Equal(t, true, v)
	_, ok = meta.Get("password")
	assert.Equal(t, false, ok)
	assert.Equal(t, []string{"type", "ssid", "hidden", "lat"}, meta.Keys())
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("build payload error, %w", NewValidationError("SSID required"))

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "SSID required", vErr.Message)
	assert.Equal(t, "SSID required", vErr.Error())
}
