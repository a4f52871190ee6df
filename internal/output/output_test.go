// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRows() []map[string]interface{} {
	return []map[string]interface{}{
		{"product": "Pepperoni", "amount": 30.0, "kind": "pizza"},
		{"product": "margherita", "amount": 12.0, "kind": "pizza"},
		{"product": "Calzone", "amount": 20.0, "kind": "Oven"},
	}
}

func TestSortDataset(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{
			name:      "ascending by product",
			spec:      "product",
			wantOrder: []string{"Calzone", "margherita", "Pepperoni"},
		},
		{
			name:      "descending by product",
			spec:      "-product",
			wantOrder: []string{"Pepperoni", "margherita", "Calzone"},
		},
		{
			name:      "ascending by amount",
			spec:      "amount",
			wantOrder: []string{"margherita", "Calzone", "Pepperoni"},
		},
		{
			name:      "descending by amount",
			spec:      "-amount",
			wantOrder: []string{"Pepperoni", "Calzone", "margherita"},
		},
		{
			name:      "case sensitive",
			spec:      "!product",
			wantOrder: []string{"Calzone", "Pepperoni", "margherita"},
		},
		{
			name:      "descending case sensitive",
			spec:      "-!product",
			wantOrder: []string{"margherita", "Pepperoni", "Calzone"},
		},
		{
			name:      "multiple fields",
			spec:      "kind, -amount",
			wantOrder: []string{"Calzone", "Pepperoni", "margherita"},
		},
		{
			name:      "empty spec",
			spec:      "",
			wantOrder: []string{"Pepperoni", "margherita", "Calzone"},
		},
		{
			name:      "missing key keeps order",
			spec:      "nope",
			wantOrder: []string{"Pepperoni", "margherita", "Calzone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := testRows()
			SortDataset(data, tt.spec)
			for i, expected := range tt.wantOrder {
				assert.Equal(t, expected, data[i]["product"], "at index %d", i)
			}
		})
	}
}

func TestBuildFilters(t *testing.T) {
	filters := BuildFilters("amount>15,product!^Pep,bad,kind~OVEN")
	require.Len(t, filters, 3)
	assert.Equal(t, Filter{Key: "amount", Operand: ">", Target: "15"}, filters[0])
	assert.Equal(t, Filter{Key: "product", Negate: true, Operand: "^", Target: "Pep"}, filters[1])
	assert.Equal(t, Filter{Key: "kind", Operand: "~", Target: "OVEN"}, filters[2])

	t.Setenv("STORECTL_FILTER_DELIM", ";")
	assert.Len(t, BuildFilters("product=a,b;amount<3"), 2)
}

func TestFilterRows(t *testing.T) {
	tests := []struct {
		spec string
		want []string
	}{
		{"", []string{"Pepperoni", "margherita", "Calzone"}},
		{"amount>15", []string{"Pepperoni", "Calzone"}},
		{"amount<15", []string{"margherita"}},
		{"amount=20", []string{"Calzone"}},
		{"kind=pizza,amount>15", []string{"Pepperoni"}},
		{"product!^Pep", []string{"margherita", "Calzone"}},
		{"kind~PIZZA", []string{"Pepperoni", "margherita"}},
		{"product/^[A-Z]", []string{"Pepperoni", "Calzone"}},
		{"product@rit", []string{"margherita"}},
		{"unknown=1", []string{"Pepperoni", "margherita", "Calzone"}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			var got []string
			for _, row := range FilterRows(testRows(), tt.spec) {
				got = append(got, row["product"].(string))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterRows_PointersAndLists(t *testing.T) {
	burgers := "Burgers"
	rows := []map[string]interface{}{
		{"name": "Bob's Diner", "description": &burgers, "tags": []any{"grill", "late"}},
		{"name": "Pizza Shack", "description": (*string)(nil), "tags": []any{"oven"}},
	}

	names := func(rs []map[string]interface{}) (out []string) {
		for _, r := range rs {
			out = append(out, r["name"].(string))
		}
		return
	}

	assert.Equal(t, []string{"Bob's Diner"}, names(FilterRows(rows, "description=Burgers")))
	assert.Empty(t, FilterRows(rows, "description!=Burgers"), "a missing value never matches")
	assert.Equal(t, []string{"Pizza Shack"}, names(FilterRows(rows, "tags@oven")))
	assert.Equal(t, []string{"Bob's Diner"}, names(FilterRows(rows, "tags!@oven")))
}

func TestInterfaceToString(t *testing.T) {
	desc := "Burgers"
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "string pointer", value: &desc, want: "Burgers"},
		{name: "int", value: 42, want: "42"},
		{name: "int64", value: int64(1234), want: "1234"},
		{name: "float64", value: 42.5, want: "42.5"},
		{name: "whole float64", value: 3.0, want: "3"},
		{name: "bool true", value: true, want: "true"},
		{name: "bool false is zero value", value: false, want: ""},
		{name: "nil default", value: nil, want: ""},
		{name: "nil custom", value: nil, emptyVal: "-", want: "-"},
		{name: "slice", value: []string{"a", "b"}, want: `["a","b"]`},
		{name: "map", value: map[string]int{"x": 1}, want: `{"x":1}`},
		{name: "zero value with custom empty", value: 0, emptyVal: "N/A", want: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmit(t *testing.T) {
	ds := Dataset{
		Columns: []string{"product", "amount"},
		Rows:    testRows(),
		Raw:     []byte(`[{"product":"Pepperoni","amount":30}]`),
	}

	t.Run("raw", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Emit(ds, Options{Format: "raw", Sort: "product"}, &buf))
		assert.Equal(t, string(ds.Raw)+"\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Emit(ds, Options{Format: "json", Sort: "-amount", Filter: "amount>15"}, &buf))
		assert.JSONEq(t,
			`[{"product":"Pepperoni","amount":30,"kind":"pizza"},{"product":"Calzone","amount":20,"kind":"Oven"}]`,
			buf.String())
	})

	t.Run("json empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Emit(Dataset{}, Options{Format: "json"}, &buf))
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Emit(ds, Options{Format: "yaml", Filter: "product=Calzone"}, &buf))
		assert.Contains(t, buf.String(), "product: Calzone")
		assert.Contains(t, buf.String(), "amount: 20")
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Emit(ds, Options{Format: "text", Titles: true, Sort: "amount"}, &buf))
		out := buf.String()
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.GreaterOrEqual(t, len(lines), 4)
		assert.Contains(t, out, "product")
		assert.Less(t, strings.Index(out, "margherita"), strings.Index(out, "Calzone"))
		assert.Less(t, strings.Index(out, "Calzone"), strings.Index(out, "Pepperoni"))
		assert.NotContains(t, out, "pizza", "only listed columns are rendered")
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, Emit(ds, Options{Format: "xml"}, &bytes.Buffer{}))
	})
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")
	assert.NotEmpty(t, header)
	assert.NotEmpty(t, even)
	assert.NotEmpty(t, odd)
}

func BenchmarkSortDataset(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SortDataset(testRows(), "kind,-amount")
	}
}
