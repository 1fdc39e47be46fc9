package reports

import (
	"bytes"
	"testing"

	"github.com/Juandaamez/inventario-backend/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var empresaPrueba = &models.Empresa{
	Nit:       "900123456-7",
	Nombre:    "Ferreteria El Tornillo",
	Direccion: "Calle 10 # 4-25, Bogota",
	Telefono:  "6015551234",
}

func filasPrueba() []models.FilaInventario {
	return []models.FilaInventario{
		{ProductoCodigo: "A-1", ProductoNombre: "Arena fina", Cantidad: 0, ProductoPrecio: decimal.NewFromInt(15_000)},
		{ProductoCodigo: "B-2", ProductoNombre: "Bloque #4", Cantidad: 8, ProductoPrecio: decimal.NewFromInt(2_300)},
		{ProductoCodigo: "C-3", ProductoNombre: "Cemento gris 50kg", Cantidad: 120, ProductoPrecio: decimal.NewFromInt(28_500)},
	}
}

func TestEstadoStockLabel(t *testing.T) {
	casos := []struct {
		cantidad int
		estado   string
	}{
		{0, "SIN STOCK"},
		{1, "STOCK BAJO"},
		{10, "STOCK BAJO"},
		{11, "DISPONIBLE"},
		{500, "DISPONIBLE"},
	}
	for _, c := range casos {
		if got := EstadoStockLabel(c.cantidad); got != c.estado {
			t.Errorf("EstadoStockLabel(%d) = %q, esperaba %q", c.cantidad, got, c.estado)
		}
	}
}

func TestGenerarPDFInventario(t *testing.T) {
	contenido, err := GenerarPDFInventario(empresaPrueba, filasPrueba())
	if err != nil {
		t.Fatalf("GenerarPDFInventario: %v", err)
	}
	if !bytes.HasPrefix(contenido, []byte("%PDF")) {
		t.Fatalf("la salida no comienza con %%PDF: %q", contenido[:8])
	}
	if len(contenido) < 1000 {
		t.Fatalf("PDF sospechosamente pequeno: %d bytes", len(contenido))
	}
}

func TestGenerarPDFInventarioVacio(t *testing.T) {
	contenido, err := GenerarPDFInventario(empresaPrueba, nil)
	if err != nil {
		t.Fatalf("GenerarPDFInventario con inventario vacio: %v", err)
	}
	if !bytes.HasPrefix(contenido, []byte("%PDF")) {
		t.Fatal("la salida de inventario vacio no es un PDF")
	}
}

func TestGenerarPDFInventarioMuchasFilas(t *testing.T) {
	var filas []models.FilaInventario
	for i := 0; i < 120; i++ {
		filas = append(filas, models.FilaInventario{
			ProductoCodigo: "P-" + string(rune('A'+i%26)),
			ProductoNombre: "Producto de prueba",
			Cantidad:       i,
			ProductoPrecio: decimal.NewFromInt(1000),
		})
	}
	contenido, err := GenerarPDFInventario(empresaPrueba, filas)
	if err != nil {
		t.Fatalf("GenerarPDFInventario con 120 filas: %v", err)
	}
	if !bytes.HasPrefix(contenido, []byte("%PDF")) {
		t.Fatal("la salida no es un PDF")
	}
}

func TestExportarExcelInventario(t *testing.T) {
	contenido, err := ExportarExcelInventario(empresaPrueba, filasPrueba())
	if err != nil {
		t.Fatalf("ExportarExcelInventario: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(contenido))
	if err != nil {
		t.Fatalf("abriendo el xlsx generado: %v", err)
	}
	defer f.Close()

	leer := func(celda string) string {
		v, err := f.GetCellValue("Inventario", celda)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", celda, err)
		}
		return v
	}

	if got := leer("B1"); got != empresaPrueba.Nombre {
		t.Fatalf("B1 = %q", got)
	}
	if got := leer("A5"); got != "A-1" {
		t.Fatalf("A5 = %q", got)
	}
	if got := leer("F5"); got != "SIN STOCK" {
		t.Fatalf("F5 = %q", got)
	}
	if got := leer("C8"); got != "128" {
		t.Fatalf("total de unidades C8 = %q", got)
	}
}
