// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package profile

import (
	"encoding/json"
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Diff renders the difference between two profiles as an annotated JSON
// document. It returns "" when nothing differs.
func Diff(before, after Profile, color bool) (string, error) {
	left, err := json.Marshal(before)
	if err != nil {
		return "", fmt.Errorf("failed to encode profile: %w", err)
	}
	right, err := json.Marshal(after)
	if err != nil {
		return "", fmt.Errorf("failed to encode profile: %w", err)
	}

	d, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return "", fmt.Errorf("failed to compare profiles: %w", err)
	}
	if !d.Modified() {
		return "", nil
	}

	var leftObj map[string]any
	if err := json.Unmarshal(left, &leftObj); err != nil {
		return "", fmt.Errorf("failed to decode profile: %w", err)
	}

	f := formatter.NewAsciiFormatter(leftObj, formatter.AsciiFormatterConfig{
		Coloring: color,
	})
	return f.Format(d)
}
