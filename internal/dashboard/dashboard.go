// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"

	"github.com/staranto/storectl/internal/api"
	"github.com/staranto/storectl/internal/querycache"
)

// Source returns the raw JSON document for a metric.
type Source interface {
	Metric(ctx context.Context, name string, params map[string]string) ([]byte, error)
}

// Summary is everything the dashboard shows.
type Summary struct {
	Cards   []Card
	Revenue []DailyReceipt
	Popular []PopularProduct
	// Raw maps each metric to the document it was built from.
	Raw map[string]json.RawMessage
}

// NewCache returns a metric cache. Metrics are refetched on every read unless
// opts say otherwise; concurrent reads of one key still share a request.
func NewCache(opts ...querycache.Option) *querycache.Cache[[]byte] {
	opts = append([]querycache.Option{
		querycache.WithDefaultPolicy(querycache.RefetchAlways()),
	}, opts...)
	return querycache.New[[]byte](opts...)
}

// Service loads dashboard widgets.
type Service struct {
	src   Source
	cache *querycache.Cache[[]byte]
}

// NewService reads metrics from src through cache.
func NewService(src Source, cache *querycache.Cache[[]byte]) *Service {
	return &Service{src: src, cache: cache}
}

// Key addresses a metric in the cache. Extra tokens distinguish parameters.
func Key(metric string, extra ...string) querycache.Key {
	return append(querycache.Key{"metrics", metric}, extra...)
}

func (s *Service) fetch(ctx context.Context, key querycache.Key, metric string, params map[string]string) ([]byte, error) {
	return s.cache.FetchOrGet(ctx, key, func(ctx context.Context) ([]byte, error) {
		log.Debugf("fetching metric %s", metric)
		return s.src.Metric(ctx, metric, params)
	})
}

// Load fetches every widget concurrently. The first failure cancels the rest.
func (s *Service) Load(ctx context.Context, p Period) (Summary, error) {
	if err := p.Validate(); err != nil {
		return Summary{}, err
	}

	var (
		sum   = Summary{Cards: make([]Card, len(cardSpecs))}
		raws  = make([][]byte, len(cardSpecs)+2) //nolint:mnd
		g, gc = errgroup.WithContext(ctx)
	)

	for i, spec := range cardSpecs {
		g.Go(func() error {
			doc, err := s.fetch(gc, Key(spec.metric), spec.metric, nil)
			if err != nil {
				return err
			}
			card, err := parseCard(spec, doc)
			if err != nil {
				return err
			}
			sum.Cards[i] = card
			raws[i] = doc
			return nil
		})
	}

	g.Go(func() error {
		doc, err := s.fetch(gc, periodKey(p), api.DailyReceiptInPeriod, p.params())
		if err != nil {
			return err
		}
		sum.Revenue, err = parseDailyReceipts(doc)
		raws[len(cardSpecs)] = doc
		return err
	})

	g.Go(func() error {
		doc, err := s.fetch(gc, Key(api.PopularProducts), api.PopularProducts, nil)
		if err != nil {
			return err
		}
		sum.Popular, err = parsePopularProducts(doc)
		raws[len(cardSpecs)+1] = doc
		return err
	})

	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("failed to load dashboard: %w", err)
	}

	sum.Raw = make(map[string]json.RawMessage, len(raws))
	for i, spec := range cardSpecs {
		sum.Raw[spec.metric] = raws[i]
	}
	sum.Raw[api.DailyReceiptInPeriod] = raws[len(cardSpecs)]
	sum.Raw[api.PopularProducts] = raws[len(cardSpecs)+1]

	return sum, nil
}

func periodKey(p Period) querycache.Key {
	params := p.params()
	return Key(api.DailyReceiptInPeriod, params["from"], params["to"])
}

// CardRows flattens cards for output.
func CardRows(cards []Card) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, map[string]interface{}{
			"metric": c.Title,
			"value":  c.Display,
			"diff":   FormatDiff(c.Diff) + " " + c.DiffLabel,
		})
	}
	return rows
}

// RevenueRows flattens the revenue chart for output.
func RevenueRows(points []DailyReceipt) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(points))
	for _, p := range points {
		rows = append(rows, map[string]interface{}{
			"date":    p.Date,
			"receipt": FormatCents(p.Receipt),
			"cents":   p.Receipt,
		})
	}
	return rows
}

// PopularRows flattens the popular products chart for output.
func PopularRows(products []PopularProduct) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		rows = append(rows, map[string]interface{}{
			"product": p.Product,
			"amount":  p.Amount,
		})
	}
	return rows
}
