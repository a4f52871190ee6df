// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"github.com/dustin/go-humanize"
)

// FormatCents renders an amount in cents as currency, e.g. $1,234.56.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", float64(cents)/100) //nolint:mnd
}

// FormatCount renders a count with thousands separators.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// FormatDiff renders a percentage change with an explicit sign.
func FormatDiff(pct float64) string {
	if pct == 0 {
		return "0.0%"
	}
	return humanize.FormatFloat("+#,###.#", pct) + "%"
}
