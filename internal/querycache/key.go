// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package querycache

import (
	"strconv"
	"strings"
)

// Key is an ordered token sequence identifying one cached value, for example
// Key{"managed-restaurant"} or Key{"metrics", "month-revenue"}. Two keys with
// equal tokens address the same slot.
type Key []string

// id returns the canonical form used to index the store. Tokens are length
// prefixed so Key{"a", "b"} and Key{"a.b"} can never collide.
func (k Key) id() string {
	var b strings.Builder
	for _, tok := range k {
		b.WriteString(strconv.Itoa(len(tok)))
		b.WriteByte(':')
		b.WriteString(tok)
	}
	return b.String()
}

// String renders the key for logs and error messages.
func (k Key) String() string {
	return "[" + strings.Join(k, " ") + "]"
}

// Equal reports whether k and other address the same slot.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}
