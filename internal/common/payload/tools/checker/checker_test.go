package checker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsURL(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://example.com", true},
		{"https://example.com/path?q=1#frag", true},
		{"http://www.example.org/a/b.html", true},
		{"myapp://open/item", true},
		{"http://localhost", true},
		{"http://localhost:8080/health", true},
		{"http://[::1]/", true},
		{"http://192.168.0.1/admin", true},
		{"https://münchen.de/", true},
		{"https://example.com/" + strings.Repeat("a", 2100), true},
		{"https://exa mple.com/", false},
		{"https://-bad-.com/", false},
		{"", false},
		{"example.com", false},
		{"http://", false},
		{"not a url", false},
		{"/relative/path", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, IsURL(tt.raw))
		})
	}
}

func TestIsEmail(t *testing.T) {
	assert.Equal(t, true, IsEmail("user@example.com"))
	assert.Equal(t, true, IsEmail("first.last+tag@example.co.uk"))
	// интернационализированная локальная часть допускается
	assert.Equal(t, true, IsEmail("ü@example.com"))
	assert.Equal(t, false, IsEmail(""))
	assert.Equal(t, false, IsEmail("not-an-email"))
	assert.Equal(t, false, IsEmail("user@"))
	assert.Equal(t, false, IsEmail("John <john@example.com>"))
}

func TestIsNumeric(t *testing.T) {
	for _, raw := range []string{"0", "48.1370", "-11.5", "+3", ".5", "5.", "1e3", "-2.5E-4"} {
		assert.Equal(t, true, IsNumeric(raw), raw)
	}
	for _, raw := range []string{"", "abc", "1,5", "0x1A", "Inf", "NaN", "1.2.3", "-", ".", "1e"} {
		assert.Equal(t, false, IsNumeric(raw), raw)
	}
}

func TestInRange(t *testing.T) {
	assert.Equal(t, true, InRange(90, -90, 90))
	assert.Equal(t, true, InRange(-180, -180, 180))
	assert.Equal(t, false, InRange(90.0001, -90, 90))
	assert.Equal(t, false, InRange(-181, -180, 180))
}
