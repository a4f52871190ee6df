// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/staranto/storectl/internal/api"
	"github.com/staranto/storectl/internal/dashboard"
	"github.com/staranto/storectl/internal/meta"
	"github.com/staranto/storectl/internal/output"
)

var widgets = []string{"all", "cards", "revenue", "popular"}

// period resolves --from/--to. Missing ends default to the last seven days.
func period(cmd *cli.Command, now time.Time) (dashboard.Period, error) {
	p := dashboard.DefaultPeriod(now)
	if s := cmd.String("from"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return p, err
		}
		p.From = t
	}
	if s := cmd.String("to"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return p, err
		}
		p.To = t
	}
	return p, p.Validate()
}

type section struct {
	title   string
	metrics []string
	ds      output.Dataset
}

func sections(sum dashboard.Summary) map[string]section {
	cardMetrics := make([]string, 0, len(sum.Cards))
	for _, c := range sum.Cards {
		cardMetrics = append(cardMetrics, c.Metric)
	}
	return map[string]section{
		"cards": {
			title:   "Overview",
			metrics: cardMetrics,
			ds: output.Dataset{
				Columns: []string{"metric", "value", "diff"},
				Rows:    dashboard.CardRows(sum.Cards),
			},
		},
		"revenue": {
			title:   "Revenue in period",
			metrics: []string{api.DailyReceiptInPeriod},
			ds: output.Dataset{
				Columns: []string{"date", "receipt"},
				Rows:    dashboard.RevenueRows(sum.Revenue),
			},
		},
		"popular": {
			title:   "Popular products",
			metrics: []string{api.PopularProducts},
			ds: output.Dataset{
				Columns: []string{"product", "amount"},
				Rows:    dashboard.PopularRows(sum.Popular),
			},
		},
	}
}

// rawDocument is what the API returned for metrics, one document when there
// is only one.
func rawDocument(sum dashboard.Summary, metrics []string) ([]byte, error) {
	if len(metrics) == 1 {
		return sum.Raw[metrics[0]], nil
	}
	docs := make(map[string]json.RawMessage, len(metrics))
	for _, m := range metrics {
		docs[m] = sum.Raw[m]
	}
	return json.Marshal(docs)
}

// DashboardCommandAction loads every widget and prints the requested ones.
func DashboardCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "dashboard") {
		return nil
	}

	p, err := period(cmd, time.Now())
	if err != nil {
		return err
	}

	client, err := NewClient()
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	sum, err := NewDashboardService(client).Load(ctx, p)
	if err != nil {
		return err
	}

	return emitSections(sum, cmd.String("widget"), output.OptionsFromCommand(cmd), stdout(cmd))
}

func emitSections(sum dashboard.Summary, widget string, opts output.Options, w io.Writer) error {
	all := sections(sum)
	order := []string{"cards", "revenue", "popular"}
	if widget != "" && widget != "all" {
		order = []string{widget}
	}

	if opts.Format == "raw" {
		var metrics []string
		for _, name := range order {
			metrics = append(metrics, all[name].metrics...)
		}
		raw, err := rawDocument(sum, metrics)
		if err != nil {
			return fmt.Errorf("failed to encode dashboard: %w", err)
		}
		return output.Emit(output.Dataset{Raw: raw}, opts, w)
	}

	heading := lipgloss.NewStyle().Bold(true)
	for i, name := range order {
		s := all[name]
		if len(order) > 1 {
			switch opts.Format {
			case "yaml":
				if i > 0 {
					fmt.Fprintln(w, "---")
				}
			case "", "text":
				if i > 0 {
					fmt.Fprintln(w)
				}
				title := s.title
				if opts.Color {
					title = heading.Render(title)
				}
				fmt.Fprintln(w, title)
			}
		}
		if err := output.Emit(s.ds, opts, w); err != nil {
			return err
		}
	}
	return nil
}

// DashboardCommandBuilder constructs the "dashboard" command.
func DashboardCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "dashboard",
		Usage:     "store metrics",
		UsageText: "storectl dashboard [--from YYYY-MM-DD] [--to YYYY-MM-DD] [--widget all|cards|revenue|popular] [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "from",
				Usage: "first day of the revenue chart, defaults to a week ago",
				Validator: func(value string) error {
					return FlagValidators(value, DateValidator)
				},
			},
			&cli.StringFlag{
				Name:  "to",
				Usage: "last day of the revenue chart, defaults to today",
				Validator: func(value string) error {
					return FlagValidators(value, DateValidator)
				},
			},
			NameSpacedValueChainFlagFromConfigFile("dashboard", meta.Config.Source, &cli.StringFlag{
				Name:    "widget",
				Aliases: []string{"w"},
				Usage:   "widget to show",
				Value:   "all",
				Validator: func(value string) error {
					return FlagValidators(value, WidgetValidator)
				},
			}),
		},
		Action:      DashboardCommandAction,
		Meta:        meta,
		OutputFlags: true,
	}).Build()
}
