package kvtodo

import (
	"errors"
	"fmt"
	"regexp"
)

// TodoItem is a single entry of the todo list.
type TodoItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// TodoRequest is the body accepted by create and update.
// Title is a pointer so an absent field can be told apart from an empty one.
type TodoRequest struct {
	Title *string `json:"title" validate:"required"`
}

// DefaultNamespace is used when no namespace is configured.
const DefaultNamespace = "kvtodo"

var validNamespaceRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// IsValidNamespace checks if a namespace is valid (lowercase, alphanumeric with underscores, max 63 chars).
// The namespace doubles as a SQL table name and a NATS bucket name, so it is kept to the strictest of both.
func IsValidNamespace(name string) bool {
	return validNamespaceRegex.MatchString(name) && len(name) <= 63
}

// ValidateNamespace returns an error describing why name cannot be used.
func ValidateNamespace(name string) error {
	if name == "" {
		return errors.New("validate namespace: namespace cannot be empty")
	}

	if !IsValidNamespace(name) {
		return fmt.Errorf("validate namespace: invalid namespace: %s (must match ^[a-z_][a-z0-9_]*$ and be <= 63 chars)", name)
	}

	return nil
}
