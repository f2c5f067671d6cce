package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaxID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    TaxID
		wantErr bool
	}{
		{"bare digits", "12345678901234", "12345678901234", false},
		{"formatted", "12.345.678/9012-34", "12345678901234", false},
		{"spaces stripped", " 12 345 678 9012 34 ", "12345678901234", false},
		{"empty", "", "", true},
		{"too few digits", "12.345.678/9012-3", "", true},
		{"too many digits", "123456789012345", "", true},
		{"letters only", "not-a-tax-id", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTaxID(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTaxID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaxIDFormatted(t *testing.T) {
	id, err := NewTaxID("12345678901234")
	require.NoError(t, err)
	assert.Equal(t, "12.345.678/9012-34", id.Formatted())
}
