package xmltokenizer_test

import (
	"testing"

	"github.com/muktihari/gpx/internal/xmltokenizer"
)

func TestIsMarkup(t *testing.T) {
	tt := []struct {
		name     string
		token    xmltokenizer.Token
		expected bool
	}{
		{
			name:     "procinst",
			token:    xmltokenizer.Token{Markup: []byte(`<?xml version="1.0"?>`), SelfClosing: true},
			expected: true,
		},
		{
			name:     "comment",
			token:    xmltokenizer.Token{Markup: []byte(`<!-- a > b -->`), Data: []byte("\n"), SelfClosing: true},
			expected: true,
		},
		{
			name:     "element",
			token:    xmltokenizer.Token{Name: xmltokenizer.Name{Local: []byte("gpx"), Full: []byte("gpx")}},
			expected: false,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if r := tc.token.IsMarkup(); r != tc.expected {
				t.Fatalf("expected: %t, got: %t", tc.expected, r)
			}
		})
	}
}
