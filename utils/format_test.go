package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatearMonedaCOP(t *testing.T) {
	casos := []struct {
		valor    int64
		esperado string
	}{
		{0, "$0"},
		{950, "$950"},
		{1250000, "$1.250.000"},
		{28500, "$28.500"},
	}
	for _, c := range casos {
		if got := FormatearMoneda(decimal.NewFromInt(c.valor), "COP"); got != c.esperado {
			t.Errorf("FormatearMoneda(%d, COP) = %q, esperaba %q", c.valor, got, c.esperado)
		}
	}

	// COP drops decimals after rounding.
	if got := FormatearMoneda(decimal.NewFromFloat(1250000.49), "COP"); got != "$1.250.000" {
		t.Errorf("FormatearMoneda(1250000.49, COP) = %q", got)
	}
}

func TestFormatearMonedaOtras(t *testing.T) {
	if got := FormatearMoneda(decimal.NewFromFloat(1250000.5), "USD"); got != "$1,250,000.50" {
		t.Errorf("USD = %q", got)
	}
	if got := FormatearMoneda(decimal.NewFromFloat(-42.1), "USD"); got != "-$42.10" {
		t.Errorf("USD negativo = %q", got)
	}
}

func TestFormatearFechas(t *testing.T) {
	fecha := time.Date(2025, time.January, 5, 10, 30, 0, 0, time.UTC)
	if got := FormatearFechaLarga(fecha); got != "05 de Enero, 2025" {
		t.Errorf("FormatearFechaLarga = %q", got)
	}
	if got := FormatearFechaCorta(fecha); got != "5 Ene 2025" {
		t.Errorf("FormatearFechaCorta = %q", got)
	}

	diciembre := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	if got := FormatearFechaLarga(diciembre); got != "31 de Diciembre, 2024" {
		t.Errorf("FormatearFechaLarga diciembre = %q", got)
	}
}
