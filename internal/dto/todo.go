package dto

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// NullableString distinguishes a JSON key that is absent from one that is
// explicitly null. UnmarshalJSON only runs when the key is present, so
// Set stays false for absent keys.
type NullableString struct {
	Value *string
	Set   bool
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	return json.Unmarshal(data, &n.Value)
}

// NullableBool is the boolean counterpart of NullableString.
type NullableBool struct {
	Value *bool
	Set   bool
}

func (n *NullableBool) UnmarshalJSON(data []byte) error {
	n.Set = true
	return json.Unmarshal(data, &n.Value)
}

// CreateTodoRequest is the JSON body for POST /todos.
type CreateTodoRequest struct {
	Title       string         `json:"title" binding:"required,min=1,max=200"`
	Description NullableString `json:"description"`
}

// Validate covers the constraints binding tags cannot express: description
// may be omitted but not supplied as null.
func (r CreateTodoRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Description.Set && r.Description.Value == nil {
		errs = append(errs, FieldError{Field: "description", Message: "must not be null"})
	}
	return errs
}

// UpdateTodoRequest is the JSON body for PATCH /todos/:id. Every field is
// optional; description is tri-state (absent = keep, null = clear, value = set).
// Title and completed may be omitted but not supplied as null.
type UpdateTodoRequest struct {
	Title       NullableString `json:"title"`
	Description NullableString `json:"description"`
	Completed   NullableBool   `json:"completed"`
}

// Validate checks the supplied fields. Presence-aware fields sit behind
// custom UnmarshalJSON types, so their constraints live here rather than in
// binding tags.
func (r UpdateTodoRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Title.Set {
		if r.Title.Value == nil {
			errs = append(errs, FieldError{Field: "title", Message: "must not be null"})
		} else if msg := titleBoundsError(*r.Title.Value); msg != "" {
			errs = append(errs, FieldError{Field: "title", Message: msg})
		}
	}
	if r.Completed.Set && r.Completed.Value == nil {
		errs = append(errs, FieldError{Field: "completed", Message: "must not be null"})
	}
	return errs
}

// ReplaceTodoRequest is the JSON body for PUT /todos/:id. Omitted description
// resets to null, omitted completed resets to false. Description may be
// explicitly null; completed may not.
type ReplaceTodoRequest struct {
	Title       string       `json:"title" binding:"required,min=1,max=200"`
	Description *string      `json:"description"`
	Completed   NullableBool `json:"completed"`
}

// Validate rejects an explicitly null completed.
func (r ReplaceTodoRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Completed.Set && r.Completed.Value == nil {
		errs = append(errs, FieldError{Field: "completed", Message: "must not be null"})
	}
	return errs
}

const (
	titleMinLen = 1
	titleMaxLen = 200
)

func titleBoundsError(title string) string {
	switch n := utf8.RuneCountInString(title); {
	case n < titleMinLen:
		return fmt.Sprintf("must be at least %d characters", titleMinLen)
	case n > titleMaxLen:
		return fmt.Sprintf("must be at most %d characters", titleMaxLen)
	default:
		return ""
	}
}

// TodoResponse is the wire representation of a todo.
type TodoResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FieldError describes a single violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}
