package where

import (
	"regexp"

	"github.com/kailas-cloud/leadscope/internal/domain"
	"github.com/kailas-cloud/leadscope/internal/domain/contact"
)

var identRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Ident validates a caller-supplied column name. Only well-formed names of
// known contact columns are ever interpolated into SQL text.
func Ident(name string) (contact.Column, error) {
	if !identRe.MatchString(name) {
		return contact.Column{}, domain.NewValidationError(domain.ErrInvalidColumn, name, "not a valid identifier")
	}
	col, ok := contact.Lookup(name)
	if !ok {
		return contact.Column{}, domain.NewValidationError(domain.ErrInvalidColumn, name, "unknown column")
	}
	return col, nil
}
