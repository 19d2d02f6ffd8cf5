package typesystem

import "fmt"

// NominalNotFoundError indicates a Nominal name has no binding in the
// typedef registry at construction time (§3.5: "a Nominal reference is
// only well-formed if its name is currently in the typedef registry").
type NominalNotFoundError struct {
	Name string
}

func (e *NominalNotFoundError) Error() string {
	return fmt.Sprintf("nominal type not found: %s", e.Name)
}

func NewNominalNotFoundError(name string) *NominalNotFoundError {
	return &NominalNotFoundError{Name: name}
}
