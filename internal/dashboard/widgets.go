// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/staranto/storectl/internal/api"
)

// ErrMalformed is wrapped by every parse failure.
var ErrMalformed = errors.New("malformed metric document")

// Card is one headline metric.
type Card struct {
	Metric    string
	Title     string
	Value     int64
	Display   string
	Diff      float64
	DiffLabel string
}

// DailyReceipt is one point of the revenue chart.
type DailyReceipt struct {
	Date    string
	Receipt int64
}

// PopularProduct is one slice of the popular products chart.
type PopularProduct struct {
	Product string
	Amount  int64
}

type cardSpec struct {
	metric    string
	title     string
	valuePath string
	diffPath  string
	diffLabel string
	currency  bool
}

var cardSpecs = []cardSpec{
	{api.MonthRevenue, "Revenue (month)", "receipt", "diffFromLastMonth", "vs last month", true},
	{api.MonthOrdersAmount, "Orders (month)", "amount", "diffFromLastMonth", "vs last month", false},
	{api.DayOrdersAmount, "Orders (day)", "amount", "diffFromYesterday", "vs yesterday", false},
	{api.MonthCanceledOrdersAmount, "Cancellations (month)", "amount", "diffFromLastMonth", "vs last month", false},
}

func parseCard(spec cardSpec, doc []byte) (Card, error) {
	if !gjson.ValidBytes(doc) {
		return Card{}, fmt.Errorf("%s: %w", spec.metric, ErrMalformed)
	}
	v := gjson.GetBytes(doc, spec.valuePath)
	if !v.Exists() {
		return Card{}, fmt.Errorf("%s: missing %q: %w", spec.metric, spec.valuePath, ErrMalformed)
	}

	c := Card{
		Metric:    spec.metric,
		Title:     spec.title,
		Value:     v.Int(),
		Diff:      gjson.GetBytes(doc, spec.diffPath).Float(),
		DiffLabel: spec.diffLabel,
	}
	if spec.currency {
		c.Display = FormatCents(c.Value)
	} else {
		c.Display = FormatCount(c.Value)
	}
	return c, nil
}

func parseDailyReceipts(doc []byte) ([]DailyReceipt, error) {
	res := gjson.ParseBytes(doc)
	if !gjson.ValidBytes(doc) || !res.IsArray() {
		return nil, fmt.Errorf("%s: %w", api.DailyReceiptInPeriod, ErrMalformed)
	}
	out := make([]DailyReceipt, 0, len(res.Array()))
	res.ForEach(func(_, item gjson.Result) bool {
		out = append(out, DailyReceipt{
			Date:    item.Get("date").String(),
			Receipt: item.Get("receipt").Int(),
		})
		return true
	})
	return out, nil
}

func parsePopularProducts(doc []byte) ([]PopularProduct, error) {
	res := gjson.ParseBytes(doc)
	if !gjson.ValidBytes(doc) || !res.IsArray() {
		return nil, fmt.Errorf("%s: %w", api.PopularProducts, ErrMalformed)
	}
	out := make([]PopularProduct, 0, len(res.Array()))
	res.ForEach(func(_, item gjson.Result) bool {
		out = append(out, PopularProduct{
			Product: item.Get("product").String(),
			Amount:  item.Get("amount").Int(),
		})
		return true
	})
	return out, nil
}

// Period bounds the revenue chart.
type Period struct {
	From time.Time
	To   time.Time
}

// ErrInvalidPeriod is returned for a period that ends before it starts.
var ErrInvalidPeriod = errors.New("period must end after it starts")

// DefaultPeriod is the week ending at now.
func DefaultPeriod(now time.Time) Period {
	return Period{From: now.AddDate(0, 0, -7), To: now} //nolint:mnd
}

// Validate checks the bounds.
func (p Period) Validate() error {
	if p.To.Before(p.From) {
		return fmt.Errorf("%s..%s: %w", p.From.Format(time.DateOnly), p.To.Format(time.DateOnly), ErrInvalidPeriod)
	}
	return nil
}

func (p Period) params() map[string]string {
	params := map[string]string{}
	if !p.From.IsZero() {
		params["from"] = p.From.Format(time.RFC3339)
	}
	if !p.To.IsZero() {
		params["to"] = p.To.Format(time.RFC3339)
	}
	return params
}
