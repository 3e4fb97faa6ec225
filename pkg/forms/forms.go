// Package forms holds the input collectors behind the login, register,
// note editor and profile dialogs. Forms only gather and validate fields;
// submitting them is up to the caller.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aretw0/notely/pkg/core"
)

// ValidationError reports a field rejected before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Explain turns a validator failure into a *ValidationError for the first
// offending field. Other errors are returned unchanged.
func Explain(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", field)
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		msg = fmt.Sprintf("%s must be a valid email address", field)
	default:
		msg = fmt.Sprintf("%s is invalid", field)
	}
	return &ValidationError{Field: field, Message: msg}
}

// AuthMode selects between the login and register variants of the auth form.
type AuthMode int

const (
	ModeLogin AuthMode = iota
	ModeRegister
)

func (m AuthMode) String() string {
	if m == ModeRegister {
		return "Register"
	}
	return "Login"
}

// Auth collects credentials.
type Auth struct {
	Mode     AuthMode
	Username string
	Password string
}

// Title is both the dialog title and the submit label.
func (f Auth) Title() string {
	return f.Mode.String()
}

// Credentials returns the collected fields.
func (f Auth) Credentials() core.Credentials {
	return core.Credentials{Username: strings.TrimSpace(f.Username), Password: f.Password}
}

// Validate checks both fields are present.
func (f Auth) Validate() error {
	return Explain(core.ValidateStruct(f.Credentials()))
}

// NoteEditor collects a note's title and content. With a non-empty ID it
// edits that note, otherwise it creates a new one.
type NoteEditor struct {
	ID      core.ID
	Title   string
	Content string
}

// NewNoteEditor returns an editor prefilled from n, or an empty one when n is nil.
func NewNoteEditor(n *core.Note) NoteEditor {
	if n == nil {
		return NoteEditor{}
	}
	return NoteEditor{ID: n.ID, Title: n.Title, Content: n.Content}
}

// Editing reports whether the editor targets an existing note.
func (f NoteEditor) Editing() bool {
	return f.ID != ""
}

// Heading is the editor dialog title.
func (f NoteEditor) Heading() string {
	if f.Editing() {
		return "Edit Note"
	}
	return "New Note"
}

// SubmitLabel is the text of the editor's submit button.
func (f NoteEditor) SubmitLabel() string {
	if f.Editing() {
		return "Update Note"
	}
	return "Create Note"
}

// Input returns the request body for create or update.
func (f NoteEditor) Input() core.NoteInput {
	return core.NoteInput{Title: f.Title, Content: f.Content}
}

// Validate requires a title of at most 255 characters. Content may be empty.
func (f NoteEditor) Validate() error {
	return Explain(core.ValidateStruct(f.Input()))
}

// Profile collects the editable profile fields.
type Profile struct {
	Username string
	Email    string
}

// NewProfile returns a form prefilled from p, or an empty one when p is nil.
func NewProfile(p *core.Profile) Profile {
	if p == nil {
		return Profile{}
	}
	return Profile{Username: p.Username, Email: p.Email}
}

// Input returns the full form state as the update body.
func (f Profile) Input() core.ProfileInput {
	return core.ProfileInput{Username: f.Username, Email: strings.TrimSpace(f.Email)}
}

// Validate accepts an empty email; a non-empty one must be an address.
func (f Profile) Validate() error {
	return Explain(core.ValidateStruct(f.Input()))
}
