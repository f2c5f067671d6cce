package customer

import (
	"regexp"
	"strings"

	"github.com/go-faster/errors"
)

// ErrInvalidEmail is returned when an email address fails validation.
var ErrInvalidEmail = errors.New("invalid email")

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is a validated, normalized email address. The zero value is invalid;
// construct via NewEmail.
type Email string

// NewEmail trims and lowercases raw, then validates its shape. Lowercasing
// the whole address keeps uniqueness checks case-insensitive.
func NewEmail(raw string) (Email, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.Wrap(ErrInvalidEmail, "empty")
	}
	if !emailPattern.MatchString(s) {
		return "", errors.Wrapf(ErrInvalidEmail, "malformed address %q", raw)
	}
	return Email(s), nil
}

func (e Email) String() string { return string(e) }
