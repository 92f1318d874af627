// pkg/expando/prefix_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test width-prefix application for string and numeric fields

package expando_test

import (
	"testing"

	"github.com/arthur-debert/expando/pkg/expando"
	"github.com/stretchr/testify/assert"
)

func TestFormatStringPrefix(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		s        string
		expected string
	}{
		{"empty prefix", "", "abc", "abc"},
		{"right justify", "5", "ab", "   ab"},
		{"left justify", "-5", "ab", "ab   "},
		{"center", "=5", "ab", "  ab "},
		{"center even cushion", "=6", "ab", "  ab  "},
		{"max width", ".2", "abcd", "ab"},
		{"min and max", "5.2", "abcd", "   ab"},
		{"left with max", "-5.2", "abcd", "ab   "},
		{"wider than min", "2", "abcdef", "abcdef"},
		{"exact fit", "3", "abc", "abc"},
		{"wide char padding", "4", "漢", "  漢"},
		{"wide char truncation", ".3", "漢字", "漢"},
		{"zero max width", ".0", "abc", ""},
		{"combining mark is zero wide", "3", "é", "  é"},
		{"tab becomes question mark", "", "a\tb", "a?b"},
		{"invalid byte becomes replacement", "", "a\xffb", "a�b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expando.FormatString(tt.prefix, tt.s))
		})
	}
}

func TestFormatNumberPrefix(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		n        int
		expected string
	}{
		{"empty prefix", "", 42, "42"},
		{"right justify", "3", 5, "  5"},
		{"left justify", "-3", 5, "5  "},
		{"zero pad", "03", 5, "005"},
		{"center marker dropped", "=3", 5, "  5"},
		{"negative value", "", -7, "-7"},
		{"wider value wins", "2", 12345, "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expando.FormatNumber(tt.prefix, tt.n))
		})
	}
}
