package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var meses = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var mesesCortos = [...]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// FormatearFechaLarga renders a date as "05 de Enero, 2025".
func FormatearFechaLarga(t time.Time) string {
	return fmt.Sprintf("%02d de %s, %d", t.Day(), meses[t.Month()-1], t.Year())
}

// FormatearFechaCorta renders a date as "5 Ene 2025".
func FormatearFechaCorta(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), mesesCortos[t.Month()-1], t.Year())
}

// FormatearMoneda renders a monetary value. COP uses the local convention:
// no decimals, dot as thousands separator ("$1.250.000"). Everything else
// gets two decimals with comma grouping ("$1,250,000.50").
func FormatearMoneda(valor decimal.Decimal, moneda string) string {
	if moneda == "" || moneda == "COP" {
		entero := valor.Round(0).IntPart()
		return "$" + agrupar(fmt.Sprintf("%d", entero), ".")
	}

	s := valor.StringFixed(2)
	signo := ""
	if strings.HasPrefix(s, "-") {
		signo = "-"
		s = s[1:]
	}
	partes := strings.SplitN(s, ".", 2)
	return signo + "$" + agrupar(partes[0], ",") + "." + partes[1]
}

func agrupar(digitos string, sep string) string {
	neg := strings.HasPrefix(digitos, "-")
	if neg {
		digitos = digitos[1:]
	}
	var b strings.Builder
	n := len(digitos)
	for i, c := range digitos {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
