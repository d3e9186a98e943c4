package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"7203", "7203"},
		{" 7203 ", "7203"},
		{"7", "0007"},
		{"42", "0042"},
		{"123", "0123"},
		{"12345", "12345"},
		{"AAPL", "AAPL"},
		{"7203.T", "7203.T"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeCode(tt.in))
		})
	}
}

func TestNormalizeCode_Idempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"1", "0001", " 99", "MSFT", "130A"} {
		once := NormalizeCode(in)
		assert.Equal(t, once, NormalizeCode(once), in)
	}
}
