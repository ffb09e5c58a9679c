package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMpesa(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "canonical form untouched", raw: "254712345678", want: "254712345678"},
		{name: "leading zero", raw: "0712345678", want: "254712345678"},
		{name: "bare nine digits", raw: "712345678", want: "254712345678"},
		{name: "plus prefix", raw: "+254712345678", want: "254712345678"},
		{name: "spaces and dashes", raw: "0712 345-678", want: "254712345678"},
		{name: "parentheses", raw: "(0712)345678", want: "254712345678"},
		{name: "plus with spaces", raw: "+254 712 345 678", want: "254712345678"},
		{name: "surrounding whitespace", raw: "  0712345678  ", want: "254712345678"},
		{name: "foreign number passes through", raw: "15551234567", want: "15551234567"},
		{name: "too short passes through", raw: "12345", want: "12345"},
		{name: "empty string", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMpesa(tt.raw))
		})
	}
}
