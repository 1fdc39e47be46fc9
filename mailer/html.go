package mailer

import (
	"fmt"
	"html"
	"strings"

	"github.com/Juandaamez/inventario-backend/ia"
)

// CuerpoBasico is the minimal report mail body: company name and totals.
func CuerpoBasico(nombreEmpresa string, totalProductos, totalUnidades int) string {
	var b strings.Builder
	b.WriteString("<html><body style=\"font-family: Arial, sans-serif; color: #1f2937;\">")
	fmt.Fprintf(&b, "<h2>Reporte de Inventario - %s</h2>", html.EscapeString(nombreEmpresa))
	b.WriteString("<p>Adjunto encontrara el reporte de inventario certificado en formato PDF.</p>")
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li>Total de productos: <strong>%d</strong></li>", totalProductos)
	fmt.Fprintf(&b, "<li>Total de unidades: <strong>%d</strong></li>", totalUnidades)
	b.WriteString("</ul>")
	b.WriteString("</body></html>")
	return b.String()
}

// CuerpoAvanzado extends the basic body with the top alerts and the
// document hash block. Empty alerts or an empty hash simply omit their
// section.
func CuerpoAvanzado(nombreEmpresa string, totalProductos, totalUnidades int, alertas []ia.Alerta, documentoHash string) string {
	var b strings.Builder
	b.WriteString("<html><body style=\"font-family: Arial, sans-serif; color: #1f2937;\">")
	fmt.Fprintf(&b, "<h2>Reporte de Inventario - %s</h2>", html.EscapeString(nombreEmpresa))
	b.WriteString("<p>Adjunto encontrara el reporte de inventario certificado en formato PDF.</p>")
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li>Total de productos: <strong>%d</strong></li>", totalProductos)
	fmt.Fprintf(&b, "<li>Total de unidades: <strong>%d</strong></li>", totalUnidades)
	b.WriteString("</ul>")

	if len(alertas) > 0 {
		b.WriteString("<h3>Alertas del inventario</h3><ul>")
		for _, alerta := range alertas {
			fmt.Fprintf(&b, "<li><strong>%s:</strong> %s</li>",
				html.EscapeString(alerta.Titulo), html.EscapeString(alerta.Mensaje))
		}
		b.WriteString("</ul>")
	}

	if documentoHash != "" {
		b.WriteString("<div style=\"background: #f3f4f6; padding: 12px; border-radius: 6px; margin-top: 16px;\">")
		b.WriteString("<p style=\"margin: 0;\"><strong>Certificacion del documento</strong></p>")
		fmt.Fprintf(&b, "<p style=\"margin: 4px 0 0; font-family: monospace; font-size: 12px;\">SHA-256: %s</p>",
			html.EscapeString(documentoHash))
		b.WriteString("</div>")
	}

	b.WriteString("</body></html>")
	return b.String()
}
