package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCPFValid(t *testing.T) {
	cases := []struct {
		name string
		cpf  string
		want bool
	}{
		{"empty is optional", "", true},
		{"valid unmasked", "52998224725", true},
		{"valid masked", "529.982.247-25", true},
		{"wrong check digit", "52998224724", false},
		{"too short", "1234567890", false},
		{"too long", "123456789012", false},
		{"letters", "5299822472a", false},
		{"all equal digits", "11111111111", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsCPFValid(tc.cpf))
		})
	}
}
