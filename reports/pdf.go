// Package reports renders inventory snapshots as paginated PDF documents
// and Excel workbooks. Rendering is pure: it reads a snapshot and returns
// bytes, it never touches the database.
package reports

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/Juandaamez/inventario-backend/ia"
	"github.com/Juandaamez/inventario-backend/models"
	"github.com/Juandaamez/inventario-backend/utils"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Palette shared by header, stat cards and the stock column.
var (
	colorFondo    = rgb{15, 23, 42}    // slate
	colorAcento   = rgb{99, 102, 241}  // indigo
	colorOK       = rgb{16, 185, 129}  // emerald
	colorAlerta   = rgb{245, 158, 11}  // amber
	colorCritico  = rgb{239, 68, 68}   // red
	colorTexto    = rgb{31, 41, 55}    // gray-800
	colorTextoSec = rgb{107, 114, 128} // gray-500
	colorZebra    = rgb{243, 244, 246} // gray-100
)

type rgb struct{ r, g, b int }

const (
	margenIzq    = 15.0
	anchoUtil    = 180.0 // A4 width 210mm minus both margins
	altoFila     = 8.0
	limitePagina = 265.0
)

// EstadoStockLabel is the status text shown for a quantity in the PDF and
// Excel reports.
func EstadoStockLabel(cantidad int) string {
	switch ia.NivelDeCantidad(cantidad) {
	case ia.NivelSinStock:
		return "SIN STOCK"
	case ia.NivelBajo:
		return "STOCK BAJO"
	default:
		return "DISPONIBLE"
	}
}

func colorDeEstado(cantidad int) rgb {
	switch ia.NivelDeCantidad(cantidad) {
	case ia.NivelSinStock:
		return colorCritico
	case ia.NivelBajo:
		return colorAlerta
	default:
		return colorOK
	}
}

// GenerarPDFInventario renders the certified inventory report for a
// company. It always returns a complete document, even for an empty
// inventory.
func GenerarPDFInventario(empresa *models.Empresa, filas []models.FilaInventario) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(margenIzq, 45, margenIzq)
	pdf.AliasNbPages("")

	fecha := time.Now()

	pdf.SetHeaderFunc(func() {
		setFill(pdf, colorFondo)
		pdf.Rect(0, 0, 210, 34, "F")
		setFill(pdf, colorAcento)
		pdf.Rect(0, 34, 210, 1.6, "F")

		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetXY(margenIzq, 8)
		pdf.CellFormat(anchoUtil, 8, "REPORTE DE INVENTARIO", "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetX(margenIzq)
		pdf.CellFormat(anchoUtil, 6, tr(strings.ToUpper(empresa.Nombre)), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		setText(pdf, rgb{199, 210, 254})
		pdf.SetX(margenIzq)
		pdf.CellFormat(anchoUtil, 5, tr(utils.FormatearFechaLarga(fecha)), "", 1, "L", false, 0, "")
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-18)
		setDraw(pdf, colorTextoSec)
		pdf.Line(margenIzq, pdf.GetY(), margenIzq+anchoUtil, pdf.GetY())
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 8)
		setText(pdf, colorTextoSec)
		pdf.CellFormat(anchoUtil/2, 5,
			fmt.Sprintf("Pagina %d de {nb}", pdf.PageNo()), "", 0, "L", false, 0, "")
		pdf.CellFormat(anchoUtil/2, 5,
			"Documento confidencial", "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	escribirDatosEmpresa(pdf, tr, empresa)

	analisis, err := ia.NuevoAnalisis(empresa, filas)
	if err != nil {
		return nil, err
	}
	escribirTarjetas(pdf, analisis)
	escribirDistribucion(pdf, analisis)
	escribirTabla(pdf, tr, filas, analisis.ValorTotal)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generando PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func escribirDatosEmpresa(pdf *gofpdf.Fpdf, tr func(string) string, empresa *models.Empresa) {
	pdf.SetFont("Helvetica", "B", 10)
	setText(pdf, colorTexto)
	pdf.CellFormat(anchoUtil, 6, "INFORMACION DE LA EMPRESA", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	setText(pdf, colorTextoSec)
	pdf.CellFormat(anchoUtil, 5, tr("NIT: "+empresa.Nit), "", 1, "L", false, 0, "")
	if empresa.Direccion != "" {
		pdf.CellFormat(anchoUtil, 5, tr("Direccion: "+empresa.Direccion), "", 1, "L", false, 0, "")
	}
	if empresa.Telefono != "" {
		pdf.CellFormat(anchoUtil, 5, tr("Telefono: "+empresa.Telefono), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func escribirTarjetas(pdf *gofpdf.Fpdf, a *ia.Analisis) {
	tarjetas := []struct {
		titulo string
		valor  string
		color  rgb
	}{
		{"PRODUCTOS", fmt.Sprintf("%d", a.TotalProductos), colorAcento},
		{"UNIDADES", fmt.Sprintf("%d", a.TotalUnidades), colorAcento},
		{"VALOR TOTAL", utils.FormatearMoneda(a.ValorTotal, "COP"), colorOK},
		{"SIN STOCK", fmt.Sprintf("%d", len(a.SinStock)), colorCritico},
	}

	const ancho, alto, sep = 42.75, 18.0, 3.0
	y := pdf.GetY()
	for i, tarjeta := range tarjetas {
		x := margenIzq + float64(i)*(ancho+sep)
		setFill(pdf, colorZebra)
		pdf.Rect(x, y, ancho, alto, "F")
		setFill(pdf, tarjeta.color)
		pdf.Rect(x, y, ancho, 1.2, "F")

		pdf.SetXY(x, y+3.5)
		pdf.SetFont("Helvetica", "", 7)
		setText(pdf, colorTextoSec)
		pdf.CellFormat(ancho, 4, tarjeta.titulo, "", 0, "C", false, 0, "")

		pdf.SetXY(x, y+8.5)
		pdf.SetFont("Helvetica", "B", 12)
		setText(pdf, colorTexto)
		pdf.CellFormat(ancho, 6, tarjeta.valor, "", 0, "C", false, 0, "")
	}
	pdf.SetY(y + alto + 6)
}

// escribirDistribucion draws the stacked stock-health bar. Each segment
// keeps a 5mm minimum so tiny buckets stay visible; labels only appear on
// segments above 5%.
func escribirDistribucion(pdf *gofpdf.Fpdf, a *ia.Analisis) {
	if a.TotalProductos == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 10)
	setText(pdf, colorTexto)
	pdf.CellFormat(anchoUtil, 6, "DISTRIBUCION DE STOCK", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	segmentos := []struct {
		etiqueta string
		pct      float64
		color    rgb
	}{
		{"Saludable", a.PctSaludable, colorOK},
		{"Bajo", a.PctStockBajo, colorAlerta},
		{"Sin stock", a.PctSinStock, colorCritico},
	}

	y := pdf.GetY()
	x := margenIzq
	for _, s := range segmentos {
		if s.pct <= 0 {
			continue
		}
		ancho := s.pct * anchoUtil / 100
		if ancho < 5 {
			ancho = 5
		}
		if x+ancho > margenIzq+anchoUtil {
			ancho = margenIzq + anchoUtil - x
		}
		setFill(pdf, s.color)
		pdf.Rect(x, y, ancho, 7, "F")

		if s.pct > 5 {
			pdf.SetXY(x, y+1.5)
			pdf.SetFont("Helvetica", "B", 7)
			pdf.SetTextColor(255, 255, 255)
			pdf.CellFormat(ancho, 4, fmt.Sprintf("%s %.0f%%", s.etiqueta, s.pct), "", 0, "C", false, 0, "")
		}
		x += ancho
	}
	pdf.SetY(y + 12)
}

var columnas = []struct {
	titulo string
	ancho  float64
	align  string
}{
	{"Codigo", 28, "L"},
	{"Producto", 62, "L"},
	{"Cantidad", 22, "R"},
	{"Precio", 30, "R"},
	{"Estado", 38, "C"},
}

func escribirTabla(pdf *gofpdf.Fpdf, tr func(string) string, filas []models.FilaInventario, valorTotal decimal.Decimal) {
	pdf.SetFont("Helvetica", "B", 10)
	setText(pdf, colorTexto)
	pdf.CellFormat(anchoUtil, 6, "DETALLE DEL INVENTARIO", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	if len(filas) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		setText(pdf, colorTextoSec)
		pdf.CellFormat(anchoUtil, 10, "No hay productos registrados en el inventario", "1", 1, "C", false, 0, "")
		return
	}

	escribirCabeceraTabla(pdf)

	totalUnidades := 0
	for i, fila := range filas {
		if pdf.GetY() > limitePagina {
			pdf.AddPage()
			escribirCabeceraTabla(pdf)
		}

		if i%2 == 1 {
			setFill(pdf, colorZebra)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		pdf.SetFont("Helvetica", "", 9)
		setText(pdf, colorTexto)
		pdf.CellFormat(columnas[0].ancho, altoFila, tr(fila.ProductoCodigo), "B", 0, columnas[0].align, true, 0, "")
		pdf.CellFormat(columnas[1].ancho, altoFila, tr(recortar(fila.ProductoNombre, 38)), "B", 0, columnas[1].align, true, 0, "")
		pdf.CellFormat(columnas[2].ancho, altoFila, fmt.Sprintf("%d", fila.Cantidad), "B", 0, columnas[2].align, true, 0, "")
		pdf.CellFormat(columnas[3].ancho, altoFila, utils.FormatearMoneda(fila.ProductoPrecio, "COP"), "B", 0, columnas[3].align, true, 0, "")

		setText(pdf, colorDeEstado(fila.Cantidad))
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(columnas[4].ancho, altoFila, EstadoStockLabel(fila.Cantidad), "B", 1, columnas[4].align, true, 0, "")

		totalUnidades += fila.Cantidad
	}

	setFill(pdf, colorFondo)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(columnas[0].ancho+columnas[1].ancho, altoFila, "TOTAL", "", 0, "L", true, 0, "")
	pdf.CellFormat(columnas[2].ancho, altoFila, fmt.Sprintf("%d", totalUnidades), "", 0, "R", true, 0, "")
	pdf.CellFormat(columnas[3].ancho+columnas[4].ancho, altoFila,
		utils.FormatearMoneda(valorTotal, "COP"), "", 1, "R", true, 0, "")
}

func escribirCabeceraTabla(pdf *gofpdf.Fpdf) {
	setFill(pdf, colorAcento)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	for i, col := range columnas {
		fin := 0
		if i == len(columnas)-1 {
			fin = 1
		}
		pdf.CellFormat(col.ancho, altoFila, col.titulo, "", fin, col.align, true, 0, "")
	}
}

func recortar(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func setFill(pdf *gofpdf.Fpdf, c rgb)  { pdf.SetFillColor(c.r, c.g, c.b) }
func setText(pdf *gofpdf.Fpdf, c rgb)  { pdf.SetTextColor(c.r, c.g, c.b) }
func setDraw(pdf *gofpdf.Fpdf, c rgb)  { pdf.SetDrawColor(c.r, c.g, c.b) }
