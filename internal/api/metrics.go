// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"strings"
)

// Metric names served under /metrics.
const (
	MonthRevenue              = "month-revenue"
	MonthOrdersAmount         = "month-orders-amount"
	DayOrdersAmount           = "day-orders-amount"
	MonthCanceledOrdersAmount = "month-canceled-orders-amount"
	PopularProducts           = "popular-products"
	DailyReceiptInPeriod      = "daily-receipt-in-period"
)

// Metric returns the raw JSON document for one metric. Empty params are not
// sent.
func (c *Client) Metric(ctx context.Context, name string, params map[string]string) ([]byte, error) {
	if name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("invalid metric name %q", name)
	}

	req := c.r.R().SetContext(ctx)
	for k, v := range params {
		if v != "" {
			req.SetQueryParam(k, v)
		}
	}

	resp, err := req.Get("/metrics/" + name)
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return resp.Bytes(), nil
}
