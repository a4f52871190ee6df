// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/staranto/storectl/internal/output"
	"github.com/staranto/storectl/internal/validation"
)

// DateLayout is the format of --from and --to.
const DateLayout = "2006-01-02"

func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	if !slices.Contains(output.Formats, value.(string)) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

func EmailValidator(value any) error {
	return validation.Var("email", value, "required,email")
}

func URLValidator(value any) error {
	return validation.Var("link", value, "required,http_url")
}

func DateValidator(value any) error {
	if _, err := time.Parse(DateLayout, value.(string)); err != nil {
		return fmt.Errorf("must be a date like %s", DateLayout)
	}
	return nil
}

func WidgetValidator(value any) error {
	if !slices.Contains(widgets, value.(string)) {
		return fmt.Errorf("must be one of %v", widgets)
	}
	return nil
}
