package customer

import (
	"strings"

	"github.com/go-faster/errors"
)

// ErrInvalidTaxID is returned when a tax identifier fails validation.
var ErrInvalidTaxID = errors.New("invalid tax ID")

const taxIDDigits = 14

// TaxID is a normalized 14-digit company tax identifier (CNPJ). Formatting
// characters are stripped on construction; only the digits are stored.
type TaxID string

// NewTaxID strips non-digit characters from raw and validates that exactly
// 14 digits remain.
func NewTaxID(raw string) (TaxID, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errors.Wrap(ErrInvalidTaxID, "empty")
	}

	var b strings.Builder
	b.Grow(taxIDDigits)
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) != taxIDDigits {
		return "", errors.Wrapf(ErrInvalidTaxID, "%q: must contain %d digits", raw, taxIDDigits)
	}
	return TaxID(digits), nil
}

func (t TaxID) String() string { return string(t) }

// Formatted renders the tax ID in the conventional 12.345.678/9012-34 shape.
func (t TaxID) Formatted() string {
	v := string(t)
	if len(v) != taxIDDigits {
		return v
	}
	return v[:2] + "." + v[2:5] + "." + v[5:8] + "/" + v[8:12] + "-" + v[12:]
}
