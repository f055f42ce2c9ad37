// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form should be re-rendered with:
// - The user's previously entered values (echoed back)
// - An error message explaining what went wrong
//
// This package provides a Base struct that can be embedded in form data structs
// to handle the common fields.
//
// Example usage:
//
//	type registerData struct {
//		formutil.Base
//		FullName string
//		Email    string
//	}
//
//	// In your handler:
//	data := registerData{
//		Base:     formutil.NewBase(r, "Create account", "/login"),
//		FullName: full,
//		Email:    email,
//	}
//	data.SetError("Email is required.")
//	templates.Render(w, r, "registration/registration", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/SadiqNaizam/fileworkbench/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in form
// data structs. It embeds viewdata.BaseVM for site settings and user
// context, and adds Error and Notice for form feedback.
type Base struct {
	viewdata.BaseVM
	Error  template.HTML
	Notice string

	// FieldErrors carries per-field messages for inline display.
	FieldErrors map[string]string
}

// NewBase creates a fully populated Base for a form page.
func NewBase(r *http.Request, title, backDefault string) Base {
	return Base{
		BaseVM: viewdata.NewPage(r, title, backDefault),
	}
}

// SetError sets the error message on a Base struct.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// HasFieldError reports whether the named field failed validation.
func (b *Base) HasFieldError(field string) bool {
	_, ok := b.FieldErrors[field]
	return ok
}
