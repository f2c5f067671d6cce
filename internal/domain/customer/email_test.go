package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Email
		wantErr bool
	}{
		{"plain address", "joao@petrodist.com.br", "joao@petrodist.com.br", false},
		{"trims surrounding whitespace", "  ana@example.com ", "ana@example.com", false},
		{"lowercases for uniqueness", "Ana.Silva@Example.COM", "ana.silva@example.com", false},
		{"plus and dots in local part", "a.b+c@example.org", "a.b+c@example.org", false},
		{"empty", "", "", true},
		{"missing domain", "user@", "", true},
		{"missing local part", "@example.com", "", true},
		{"missing tld", "user@example", "", true},
		{"spaces inside", "us er@example.com", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEmail(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidEmail)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
