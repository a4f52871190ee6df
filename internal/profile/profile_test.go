// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMerge(t *testing.T) {
	diner := Profile{ID: "r1", Name: "Bob's Diner", Description: strPtr("Burgers")}

	tests := []struct {
		name  string
		patch Patch
		want  Profile
	}{
		{"empty patch", Patch{}, diner},
		{"name only", Patch{Name: Some("Bob's Grill")},
			Profile{ID: "r1", Name: "Bob's Grill", Description: strPtr("Burgers")}},
		{"present empty name", Patch{Name: Some("")},
			Profile{ID: "r1", Name: "", Description: strPtr("Burgers")}},
		{"null description", Patch{Description: Some[*string](nil)},
			Profile{ID: "r1", Name: "Bob's Diner"}},
		{"empty description", Patch{Description: Some(strPtr(""))},
			Profile{ID: "r1", Name: "Bob's Diner", Description: strPtr("")}},
		{"both", Patch{Name: Some("Grill"), Description: Some(strPtr("Steaks"))},
			Profile{ID: "r1", Name: "Grill", Description: strPtr("Steaks")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(diner, tt.patch))
		})
	}
}

func TestPatch_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		patch Patch
		want  string
	}{
		{"empty", Patch{}, `{}`},
		{"name", Patch{Name: Some("Bob's Grill")}, `{"name":"Bob's Grill"}`},
		{"null description", Patch{Description: Some[*string](nil)}, `{"description":null}`},
		{"form", Form{Name: "Bob's Grill", Description: strPtr("Burgers")}.Patch(),
			`{"description":"Burgers","name":"Bob's Grill"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.patch)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestPatch_Empty(t *testing.T) {
	assert.True(t, Patch{}.Empty())
	assert.False(t, Patch{Description: Some[*string](nil)}.Empty())
}

func TestProfile_JSON(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "r1", "name": "Bob's Diner", "description": null,
		"managerId": "m1", "createdAt": "2026-01-02T03:04:05Z"
	}`), &p))
	assert.Equal(t, "Bob's Diner", p.Name)
	assert.Nil(t, p.Description)
	assert.Equal(t, "m1", p.ManagerID)
	require.NotNil(t, p.CreatedAt)
	assert.Equal(t, 2026, p.CreatedAt.Year())
	assert.Nil(t, p.UpdatedAt)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Form{Name: "Bob"}))
	assert.NoError(t, Validate(Form{Name: "Bob's Grill", Description: strPtr("")}))
	assert.Error(t, Validate(Form{Name: "Bo"}))
	assert.Error(t, Validate(Form{}))
}

func TestFormFrom(t *testing.T) {
	f := FormFrom(Profile{ID: "r1", Name: "Bob's Diner", Description: strPtr("Burgers")})
	assert.Equal(t, Form{Name: "Bob's Diner", Description: strPtr("Burgers")}, f)
}

func TestDiff(t *testing.T) {
	before := Profile{Name: "Bob's Diner", Description: strPtr("Burgers")}

	out, err := Diff(before, before, false)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = Diff(before, Merge(before, Patch{Name: Some("Bob's Grill")}), false)
	require.NoError(t, err)
	assert.Contains(t, out, `-  "name": "Bob's Diner"`)
	assert.Contains(t, out, `+  "name": "Bob's Grill"`)
	assert.Contains(t, out, `   "description": "Burgers"`)
}
