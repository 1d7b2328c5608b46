package render

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"swift", "Swift"},
		{"OBJC", "Objc"},
		{"élan", "Élan"},
		{"ñ", "Ñ"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := capitalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
