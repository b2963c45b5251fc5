package extract

import "testing"

func TestFindTotalKeywordLine(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "total ttc on last line",
			text: "Facture 2024-001\nDesignation Montant\nAbonnement 29,99\nTOTAL TTC 1 234,56 €",
			want: "1234.56",
		},
		{
			name: "total a payer",
			text: "Item 10,00\nTotal à payer : 45,00 €",
			want: "45.00",
		},
		{
			name: "non breaking space thousands separator",
			text: "TOTAL 1 829,17 €",
			want: "1829.17",
		},
		{
			name: "bottom-most keyword line wins",
			text: "Total HT 100,00\nTotal TTC 120,00",
			want: "120.00",
		},
		{
			name: "dot decimal kept",
			text: "TOTAL 45.50 EUR",
			want: "45.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindTotal(tt.text)
			if !ok {
				t.Fatalf("FindTotal(%q) found nothing", tt.text)
			}
			if got != tt.want {
				t.Errorf("FindTotal(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestFindTotalFallbackLargestAmount(t *testing.T) {
	text := "Ref 12.00\nPort 45.50\nDivers 999.99"

	got, ok := FindTotal(text)
	if !ok {
		t.Fatal("FindTotal found nothing")
	}
	if got != "999.99" {
		t.Errorf("FindTotal = %q, want %q", got, "999.99")
	}
}

func TestFindTotalKeywordLineWithoutAmountFallsBack(t *testing.T) {
	// The first keyword hit ends the keyword scan even when that line
	// carries no amount; the global maximum is used instead of the
	// amount on the keyword line further up.
	text := "Total TTC 120,00\nSous-total 300,00\nTOTAL"

	got, ok := FindTotal(text)
	if !ok {
		t.Fatal("FindTotal found nothing")
	}
	if got != "300" {
		t.Errorf("FindTotal = %q, want %q (global max, not the upper keyword line)", got, "300")
	}
}

func TestFindTotalNoAmounts(t *testing.T) {
	tests := []string{
		"",
		"Facture sans montant",
		"TOTAL TTC",
		"Reference 123456", // no 2-digit decimal group
	}

	for _, text := range tests {
		if got, ok := FindTotal(text); ok {
			t.Errorf("FindTotal(%q) = %q, want no match", text, got)
		}
	}
}

func TestFindTotalIgnoresPlainIntegers(t *testing.T) {
	// Invoice numbers and dates must not be captured as amounts.
	text := "Facture N 20240115\nTOTAL TTC 99,90"

	got, ok := FindTotal(text)
	if !ok {
		t.Fatal("FindTotal found nothing")
	}
	if got != "99.90" {
		t.Errorf("FindTotal = %q, want %q", got, "99.90")
	}
}
