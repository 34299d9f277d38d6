package user

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email has already been taken")
	ErrNilHasher  = errors.New("user: nil password hasher")
)

// ValidationError lists the problems found per field.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Has reports whether field has at least one problem.
func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed:")
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		for _, msg := range e.Fields[field] {
			b.WriteString(" ")
			b.WriteString(field)
			b.WriteString(" ")
			b.WriteString(msg)
			b.WriteString(";")
		}
	}
	return strings.TrimSuffix(b.String(), ";")
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
