package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "nil passes through", in: nil, want: nil},
		{name: "trims and drops empties", in: []string{" broker-1:9092 ", "", "   "}, want: []string{"broker-1:9092"}},
		{name: "drops duplicates keeping order", in: []string{"b", "a", "b", "a"}, want: []string{"b", "a"}},
		{name: "duplicate after trim", in: []string{"a", " a "}, want: []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeAndTrim(tt.in))
		})
	}
}
