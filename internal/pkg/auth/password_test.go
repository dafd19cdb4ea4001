package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivePassword(t *testing.T) {
	tests := []struct {
		name      string
		birthDate string
		want      string
	}{
		{name: "iso date", birthDate: "2019-05-13", want: "20190513"},
		{name: "slash date", birthDate: "13/05/2019", want: "13052019"},
		{name: "empty", birthDate: "", want: DefaultPasswordFallback},
		{name: "no digits", birthDate: "não informado", want: DefaultPasswordFallback},
		{name: "digits only", birthDate: "20190513", want: "20190513"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePassword(tt.birthDate))
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("20190513")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "20190513"))
	assert.False(t, CheckPassword(hash, "20190514"))
	assert.False(t, CheckPassword("not-a-hash", "20190513"))
}
