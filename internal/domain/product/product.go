package product

import "fmt"

// Kind enumerates the fuel and lubricant categories the distributor sells.
// The string value is the canonical tag used on the wire and in storage.
type Kind string

const (
	Diesel    Kind = "diesel"
	Gasoline  Kind = "gasoline"
	Ethanol   Kind = "ethanol"
	Lubricant Kind = "lubricant"
)

// Kinds returns every recognized product kind in catalog order.
func Kinds() []Kind {
	return []Kind{Diesel, Gasoline, Ethanol, Lubricant}
}

// Valid reports whether k is one of the recognized product kinds.
func (k Kind) Valid() bool {
	switch k {
	case Diesel, Gasoline, Ethanol, Lubricant:
		return true
	}
	return false
}

// UnknownKindError indicates a product tag outside the closed enumeration.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown product kind %q", e.Kind)
}

// ParseKind converts a canonical string tag to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", &UnknownKindError{Kind: s}
	}
	return k, nil
}
