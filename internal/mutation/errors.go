// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package mutation

import (
	"fmt"

	"github.com/staranto/storectl/internal/querycache"
)

// MutationError is returned by Mutate after a failed remote write has been
// rolled back. Unwrap yields the remote error unchanged.
type MutationError struct {
	Key querycache.Key
	Err error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("mutation of %s rolled back: %v", e.Key, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}
