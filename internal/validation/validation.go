// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package validation checks user input against struct tags before it is
// sent anywhere. Field names in problems are taken from the json tag.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return strings.ToLower(fld.Name)
			}
			return name
		})
	})
	return validate
}

// Problem is a single failed rule on a single field.
type Problem struct {
	Field string
	Rule  string
	Param string
}

func (p Problem) String() string {
	switch p.Rule {
	case "required":
		return fmt.Sprintf("%s is required", p.Field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", p.Field, p.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", p.Field, p.Param)
	case "email":
		return fmt.Sprintf("%s must be a valid e-mail address", p.Field)
	case "boolean":
		return fmt.Sprintf("%s must be true or false", p.Field)
	case "url", "http_url":
		return fmt.Sprintf("%s must be an absolute http(s) URL", p.Field)
	default:
		return fmt.Sprintf("%s failed %q", p.Field, p.Rule)
	}
}

// ValidationError lists every problem found in one value.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.String())
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

// Has reports whether field failed any rule.
func (e *ValidationError) Has(field string) bool {
	for _, p := range e.Problems {
		if p.Field == field {
			return true
		}
	}
	return false
}

// Struct validates v's tagged fields.
func Struct(v any) error {
	return convert(instance().Struct(v), "")
}

// Var validates a single value against tag, reporting problems under name.
func Var(name string, value any, tag string) error {
	return convert(instance().Var(value, tag), name)
}

func convert(err error, name string) error {
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range ves {
		field := fe.Field()
		if name != "" {
			field = name
		}
		out.Problems = append(out.Problems, Problem{Field: field, Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}
