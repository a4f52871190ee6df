// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
)

// filterRegex is the pattern used to parse filter expressions into key, operator, and target components.
// It matches: key + operator + target, where operator can be negated with !
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~><@/])(.*)$`)

// Filter represents a single parsed --filter expression including the key,
// operand, optional negation and target value.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid specs (unsupported operand or malformed expression) are skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	// If there are no filters specified, go home early.
	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override.
	delim := ","
	if d, ok := os.LookupEnv("STORECTL_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		parts := filterRegex.FindStringSubmatch(filterSpec)

		// If a supported operand was not found, log an error and throw it away.
		if parts == nil || parts[1] == "" {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		// parts[2] is the operand. It may have a leading negation. If so, chop it
		// off and just use the remainder as the working operand.
		negate := strings.HasPrefix(parts[2], "!")
		if negate {
			parts[2] = strings.TrimPrefix(parts[2], "!")
		}

		filters = append(filters, Filter{
			Key:     parts[1],
			Negate:  negate,
			Operand: parts[2],
			Target:  parts[3],
		})
	}

	return filters
}

// FilterRows returns the rows matching every filter in spec.
func FilterRows(rows []map[string]interface{}, spec string) []map[string]interface{} {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return rows
	}

	//nolint:prealloc // Don't prealloc because we don't know what len will be.
	var filtered []map[string]interface{}
	for _, row := range rows {
		if applyFilters(row, filters) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// applyFilters returns true if the row matches all of the provided filters.
// Unknown keys are reported and ignored.
func applyFilters(row map[string]interface{}, filters []Filter) bool {
	for _, filter := range filters {
		value, ok := row[filter.Key]
		if !ok {
			log.Warnf("filter key not found: %s", filter.Key)
			continue
		}
		if p, isPtr := value.(*string); isPtr {
			if p == nil {
				value = nil
			} else {
				value = *p
			}
		}
		if value == nil {
			return false
		}
		if match(value, filter) == filter.Negate {
			return false
		}
	}

	return true
}

// match evaluates filter against value ignoring negation.
func match(value interface{}, filter Filter) bool {
	switch v := value.(type) {
	case string:
		return matchString(v, filter)
	case bool:
		return matchString(strconv.FormatBool(v), filter)
	case []any:
		return matchMember(filter, func(yield func(string) bool) {
			for _, item := range v {
				if !yield(fmt.Sprint(item)) {
					return
				}
			}
		})
	case map[string]any:
		_, found := v[filter.Target]
		return filter.Operand == "@" && found
	}

	n, isNum := toFloat(value)
	if !isNum {
		return matchString(InterfaceToString(value), filter)
	}
	target, err := strconv.ParseFloat(filter.Target, 64)
	if err != nil {
		return matchString(strconv.FormatFloat(n, 'f', -1, 64), filter)
	}
	switch filter.Operand {
	case "=":
		return n == target
	case ">":
		return n > target
	case "<":
		return n < target
	default:
		return matchString(strconv.FormatFloat(n, 'f', -1, 64), filter)
	}
}

// matchMember implements '@' for collections.
func matchMember(filter Filter, items func(func(string) bool)) bool {
	if filter.Operand != "@" {
		log.Errorf("unsupported operand %q for a list", filter.Operand)
		return false
	}
	for item := range items {
		if item == filter.Target {
			return true
		}
	}
	return false
}

// matchString applies a string operand.
func matchString(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Target
	case "~":
		return strings.EqualFold(value, filter.Target)
	case "^":
		return strings.HasPrefix(value, filter.Target)
	case ">":
		return value > filter.Target
	case "<":
		return value < filter.Target
	case "@":
		return strings.Contains(value, filter.Target)
	case "/":
		matched, err := regexp.MatchString(filter.Target, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Target)
			return false
		}
		return matched
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}
