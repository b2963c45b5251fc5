package normalize

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.200,50", 1200.50, true},
		{"1,200.50", 1200.50, true},
		{"100,50", 100.50, true},
		{"1,200", 1200, true},
		{"1 829,17 €", 1829.17, true},
		{"1 829,17 €", 1829.17, true},
		{"1 234,56", 1234.56, true},
		{"99.99", 99.99, true},
		{"45.50 EUR", 45.50, true},
		{"$1,234.56", 1234.56, true},
		{"0,00", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Amount(tt.in)
			if ok != tt.ok {
				t.Fatalf("Amount(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && !almostEqual(got, tt.want) {
				t.Errorf("Amount(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"20,00%", 20, true},
		{"5.5%", 5.5, true},
		{"19 %", 19, true},
		{"20 %", 20, true},
		{"5 %", 5, true},
		{"7", 7, true},
		{"", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		got, ok := Percentage(tt.in)
		if ok != tt.ok {
			t.Fatalf("Percentage(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
		if ok && !almostEqual(got, tt.want) {
			t.Errorf("Percentage(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"15/01/2024", "2024-01-15"},
		{"5-3-99", "1999-03-05"},
		{"01/02/24", "2024-02-01"},
		{"7/12/1985", "1985-12-07"},
		{"31-12-2023", "2023-12-31"},
		// unparseable inputs pass through unchanged
		{"2024-01-15", "2024-01-15"},
		{"janvier 2024", "janvier 2024"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Date(tt.in); got != tt.want {
			t.Errorf("Date(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want CurrencyCode
	}{
		{"1 234,56 €", CurrencyEUR},
		{"EUR 100", CurrencyEUR},
		{"$99.99", CurrencyUSD},
		{"100 USD", CurrencyUSD},
		{"£45", CurrencyGBP},
		{"CHF 20.00", CurrencyCHF},
		{"100.00", CurrencyUnknown},
		{"", CurrencyUnknown},
		// euro outranks dollar when both appear
		{"$ conversion: 100 €", CurrencyEUR},
	}

	for _, tt := range tests {
		if got := Currency(tt.in); got != tt.want {
			t.Errorf("Currency(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Language
	}{
		{"french invoice", "FACTURE\nDésignation Montant TTC\nTVA 20%", LangFR},
		{"english invoice", "INVOICE\nDescription Amount\nVAT Total", LangEN},
		{"accents ignored", "FACTURE Qté Désignation", LangFR},
		{"no keywords", "lorem ipsum dolor", LangGeneric},
		{"tie prefers french", "facture invoice", LangFR},
		{"empty", "", LangGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.text); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		dict TermDictionary
		want string
	}{
		{"collapse whitespace", "a b   c", nil, "a b c"},
		{"trim", "  Total TTC  ", nil, "Total TTC"},
		{"narrow nbsp", "1 234", nil, "1 234"},
		{"french terms mapped", "Qte: 2 Montant: 30", DictionaryFor(LangFR), "quantity: 2 amount: 30"},
		{"english terms mapped", "Qty 3 Amount 45", DictionaryFor(LangEN), "quantity 3 amount 45"},
		{"terms respect word boundaries", "montants", DictionaryFor(LangFR), "montants"},
		{"empty", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.in, tt.dict); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDictionaryFor(t *testing.T) {
	if d := DictionaryFor(LangFR); len(d) == 0 {
		t.Error("DictionaryFor(LangFR) returned empty dictionary")
	}
	if d := DictionaryFor(LangEN); len(d) == 0 {
		t.Error("DictionaryFor(LangEN) returned empty dictionary")
	}
	if d := DictionaryFor(LangGeneric); len(d) != 0 {
		t.Errorf("DictionaryFor(LangGeneric) = %v, want empty", d)
	}
}
