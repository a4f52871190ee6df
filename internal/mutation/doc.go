// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package mutation coordinates remote writes against a single query cache
// entry. The cache is updated optimistically before the remote call and
// restored to its exact previous state when the call fails.
package mutation
