// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package profile

import (
	"encoding/json"
	"time"
)

// Profile is the managed restaurant as returned by the API. Only Name and
// Description are editable.
type Profile struct {
	ID          string     `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string     `json:"name" yaml:"name"`
	Description *string    `json:"description" yaml:"description"`
	ManagerID   string     `json:"managerId,omitempty" yaml:"managerId,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Optional carries an explicit presence bit. The zero value is omitted.
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Patch is a partial update of a Profile. Omitted fields keep their current
// value. A present empty Name overwrites with the empty string and a present
// nil Description overwrites with null.
type Patch struct {
	Name        Optional[string]
	Description Optional[*string]
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return !p.Name.Set && !p.Description.Set
}

// MarshalJSON emits only the present fields, so an omitted description is
// left out of the body while a present nil one is sent as null.
func (p Patch) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if p.Name.Set {
		body["name"] = p.Name.Value
	}
	if p.Description.Set {
		body["description"] = p.Description.Value
	}
	return json.Marshal(body)
}

// Merge overlays the present fields of patch on cur.
func Merge(cur Profile, patch Patch) Profile {
	if patch.Name.Set {
		cur.Name = patch.Name.Value
	}
	if patch.Description.Set {
		cur.Description = patch.Description.Value
	}
	return cur
}
