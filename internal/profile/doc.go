// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package profile holds the store profile: its value type, the partial
// update payload applied to it, input validation and the Service that reads
// it through the query cache and edits it through the mutation coordinator.
package profile
