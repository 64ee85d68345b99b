package normalize

import "testing"

func TestFormatSalary_BothBounds(t *testing.T) {
	got := FormatSalary(map[string]any{"from": 1.0, "to": 2.0, "currency": "rur"})
	if got != "from 1 to 2 RUR" {
		t.Errorf("got %q, want %q", got, "from 1 to 2 RUR")
	}
}

func TestFormatSalary_Empty(t *testing.T) {
	if got := FormatSalary(map[string]any{}); got != SalaryNegotiable {
		t.Errorf("got %q, want %q", got, SalaryNegotiable)
	}
	if got := FormatSalary(nil); got != SalaryNegotiable {
		t.Errorf("nil salary: got %q, want %q", got, SalaryNegotiable)
	}
}

func TestFormatSalary_NonNumericBounds(t *testing.T) {
	got := FormatSalary(map[string]any{"from": "abc"})
	if got != SalaryNegotiable {
		t.Errorf("got %q, want %q", got, SalaryNegotiable)
	}
}

func TestFormatSalary_SingleBound(t *testing.T) {
	got := FormatSalary(map[string]any{"from": 100000.0, "currency": "RUB"})
	if got != "from 100000 RUR" {
		t.Errorf("got %q, want %q", got, "from 100000 RUR")
	}

	got = FormatSalary(map[string]any{"to": 250000.0})
	if got != "to 250000" {
		t.Errorf("got %q, want %q", got, "to 250000")
	}
}

func TestFormatSalary_ForeignCurrencyPassthrough(t *testing.T) {
	got := FormatSalary(map[string]any{"from": 5000.0, "currency": "EUR"})
	if got != "from 5000 EUR" {
		t.Errorf("got %q, want %q", got, "from 5000 EUR")
	}
}

func TestCurrency(t *testing.T) {
	cases := map[string]string{
		"rub": "RUR",
		"RUB": "RUR",
		"rur": "RUR",
		"RUR": "RUR",
		"USD": "USD",
		"eur": "eur",
	}
	for in, want := range cases {
		if got := Currency(in); got != want {
			t.Errorf("Currency(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatList(t *testing.T) {
	items := []any{
		map[string]any{"name": "Python"},
		map[string]any{"name": ""},
		map[string]any{"title": "ignored"},
		map[string]any{"name": "Django"},
	}
	if got := FormatList(items, "name"); got != "Python, Django" {
		t.Errorf("got %q, want %q", got, "Python, Django")
	}
}

func TestFormatList_Absent(t *testing.T) {
	if got := FormatList(nil, "name"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if got := FormatList("not a list", "name"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText("<p>Strong Python skills</p>")
	if got != "Strong Python skills" {
		t.Errorf("got %q, want %q", got, "Strong Python skills")
	}
}

func TestPlainText_Empty(t *testing.T) {
	if got := PlainText(""); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestPlainText_NestedMarkup(t *testing.T) {
	got := PlainText("<div><strong>Go</strong><em>developer</em></div>")
	if got != "Godeveloper" {
		t.Errorf("got %q, want %q", got, "Godeveloper")
	}
}

func TestGet_Nested(t *testing.T) {
	data := map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": 1.0},
		},
	}
	if got := Get(data, "a", "b", "c"); got != 1.0 {
		t.Errorf("got %v, want 1", got)
	}
}

func TestGet_NilData(t *testing.T) {
	if got := Get(nil, "a"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestGet_BrokenChain(t *testing.T) {
	data := map[string]any{"a": 1.0}
	if got := Get(data, "a", "b"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestGetString(t *testing.T) {
	data := map[string]any{"experience": map[string]any{"name": "1-3 years"}}
	if got := GetString(data, "experience", "name"); got != "1-3 years" {
		t.Errorf("got %q, want %q", got, "1-3 years")
	}
	if got := GetString(data, "experience", "id"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
