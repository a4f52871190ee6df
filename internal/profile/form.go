// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package profile

import (
	"github.com/staranto/storectl/internal/validation"
)

// Form is the edit dialog's input. Both fields are always submitted.
type Form struct {
	Name        string  `json:"name" validate:"required,min=3"`
	Description *string `json:"description"`
}

// FormFrom prefills a Form with p.
func FormFrom(p Profile) Form {
	return Form{Name: p.Name, Description: p.Description}
}

// Patch converts the form into a patch with every field present.
func (f Form) Patch() Patch {
	return Patch{
		Name:        Some(f.Name),
		Description: Some(f.Description),
	}
}

// Validate returns a *validation.ValidationError when f can't be submitted.
func Validate(f Form) error {
	return validation.Struct(f)
}
