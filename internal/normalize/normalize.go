// Package normalize holds the pure helpers shared by the per-platform
// normalizers: salary formatting, list joining, HTML stripping and nil-safe
// traversal of loosely-typed vendor payloads. None of them perform I/O.
package normalize

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// SalaryNegotiable is the fallback shown when a vacancy carries no usable
// salary bounds.
const SalaryNegotiable = "negotiable"

// canonical spellings of the rouble; both map to the single code RUR so
// cached display text stays stable across platforms.
const currencyRouble = "RUR"

// Currency canonicalizes a currency code: rub/rur (any case) become RUR,
// everything else is passed through untouched.
func Currency(code string) string {
	if strings.EqualFold(code, "rub") || strings.EqualFold(code, "rur") {
		return currencyRouble
	}
	return code
}

// FormatSalary renders a vendor salary object ({from, to, currency}) as
// display text: "from L", "to U" and the canonical currency code, joined by
// spaces. Missing or non-numeric bounds are ignored; if neither bound is
// numeric the result is SalaryNegotiable.
func FormatSalary(salary any) string {
	data, ok := salary.(map[string]any)
	if !ok || len(data) == 0 {
		return SalaryNegotiable
	}

	from, hasFrom := toNumber(data["from"])
	to, hasTo := toNumber(data["to"])
	if !hasFrom && !hasTo {
		return SalaryNegotiable
	}

	var parts []string
	if hasFrom {
		parts = append(parts, "from "+formatNumber(from))
	}
	if hasTo {
		parts = append(parts, "to "+formatNumber(to))
	}
	if currency, _ := data["currency"].(string); currency != "" {
		parts = append(parts, Currency(currency))
	}

	return strings.Join(parts, " ")
}

// FormatList joins the named attribute of each tagged item with ", ",
// skipping items where the attribute is absent or empty.
func FormatList(items any, key string) string {
	list, ok := items.([]any)
	if !ok {
		return ""
	}

	var values []string
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if v, _ := m[key].(string); v != "" {
			values = append(values, v)
		}
	}
	return strings.Join(values, ", ")
}

// PlainText strips all markup from an HTML fragment and returns the
// concatenated visible text, trimming surrounding whitespace of every text
// node. Absent or plain-text input passes through unchanged.
func PlainText(content string) string {
	if content == "" {
		return ""
	}

	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(content))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.WriteString(strings.TrimSpace(tokenizer.Token().Data))
		}
	}
}

// Get traverses a chain of keys through possibly-absent nested maps and
// returns nil as soon as a link is missing or not a map itself.
func Get(data any, keys ...string) any {
	current := data
	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[key]
		if current == nil {
			return nil
		}
	}
	return current
}

// GetString is Get narrowed to string values; any other type yields "".
func GetString(data any, keys ...string) string {
	s, _ := Get(data, keys...).(string)
	return s
}

func toNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
