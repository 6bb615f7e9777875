package creditmut

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"25,50", "25.5"},
		{"1 234,56", "1234.56"},
		{"1'234,56", "1234.56"},
		{"-150,00", "-150"},
		{"0,00", "0"},
		{"", "0"},
		{" 25,50 ", "25.5"},
		{"n/a", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseAmount(tt.input)
			want := decimal.RequireFromString(tt.expected)
			if !got.Equal(want) {
				t.Errorf("ParseAmount(%q): got %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestSplitAccountCell(t *testing.T) {
	tests := []struct {
		input     string
		accountNo string
		name      string
		ok        bool
	}{
		{"123456789 01 Compte Courant", "123456789 01", "Compte Courant", true},
		{"123456789.01 Livret Bleu", "123456789 01", "Livret Bleu", true},
		{"987654321 Compte Chèques", "987654321", "Compte Chèques", true},
		{"Compte sans numéro", "", "Compte sans numéro", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			accountNo, name, ok := splitAccountCell(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok: got %v, want %v", ok, tt.ok)
			}
			if accountNo != tt.accountNo {
				t.Errorf("accountNo: got %q, want %q", accountNo, tt.accountNo)
			}
			if name != tt.name {
				t.Errorf("name: got %q, want %q", name, tt.name)
			}
		})
	}
}

func TestSplitBalanceCell(t *testing.T) {
	tests := []struct {
		input    string
		amount   string
		currency string
	}{
		{"1 234,56EUR", "1 234,56", "EUR"},
		{"150,00EUR", "150,00", "EUR"},
		{"42,00 CHF", "42,00", "CHF"},
		{"99,99", "99,99", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			amount, currency := splitBalanceCell(tt.input)
			if amount != tt.amount {
				t.Errorf("amount: got %q, want %q", amount, tt.amount)
			}
			if currency != tt.currency {
				t.Errorf("currency: got %q, want %q", currency, tt.currency)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"31/12/2003", "31/12/03"},
		{"02/01/2004", "02/01/04"},
		{"31/12/03", "31/12/03"},
		{" 15/06/1999 ", "15/06/99"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := normalizeDate(tt.input)
			if got != tt.expected {
				t.Errorf("normalizeDate(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCollapse(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Compte \n Courant  ", "Compte Courant"},
		{"already clean", "already clean"},
		{"", ""},
	}

	for _, tt := range tests {
		got := collapse(tt.input)
		if got != tt.expected {
			t.Errorf("collapse(%q): got %q, want %q", tt.input, got, tt.expected)
		}
	}
}
