package escape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWiFi(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"plain", "home", "home"},
		{"all special", `a;b,c:d\e`, `a\;b\,c\:d\\e`},
		{"backslash before semicolon", `\;`, `\\\;`},
		{"empty", "", ""},
		{"unicode", "Café;Wi-Fi", `Café\;Wi-Fi`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WiFi(tt.value))
		})
	}
}

func TestQuery(t *testing.T) {
	assert.Equal(t, "subject=Hello+World&body=a%26b%3Dc",
		Query(Pair{"subject", "Hello World"}, Pair{"body", "a&b=c"}))
	assert.Equal(t, "body=Hi", Query(Pair{"subject", ""}, Pair{"body", "Hi"}))
	assert.Equal(t, "subject=Hi", Query(Pair{"subject", "Hi"}, Pair{"body", ""}))
	assert.Equal(t, "", Query(Pair{"subject", ""}, Pair{"body", ""}))
	assert.Equal(t, "", Query())
}
