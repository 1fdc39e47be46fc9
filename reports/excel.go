package reports

import (
	"bytes"
	"fmt"

	"github.com/Juandaamez/inventario-backend/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportarExcelInventario writes the snapshot as a single-sheet workbook.
// Values stay numeric so spreadsheets can aggregate them.
func ExportarExcelInventario(empresa *models.Empresa, filas []models.FilaInventario) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const hoja = "Inventario"
	if err := f.SetSheetName("Sheet1", hoja); err != nil {
		return nil, err
	}

	f.SetCellValue(hoja, "A1", "Empresa")
	f.SetCellValue(hoja, "B1", empresa.Nombre)
	f.SetCellValue(hoja, "A2", "NIT")
	f.SetCellValue(hoja, "B2", empresa.Nit)

	f.SetCellValue(hoja, "A4", "Codigo")
	f.SetCellValue(hoja, "B4", "Producto")
	f.SetCellValue(hoja, "C4", "Cantidad")
	f.SetCellValue(hoja, "D4", "Precio")
	f.SetCellValue(hoja, "E4", "Valor")
	f.SetCellValue(hoja, "F4", "Estado")

	totalUnidades := 0
	for i, fila := range filas {
		row := fmt.Sprint(i + 5)
		precio, _ := fila.ProductoPrecio.Float64()
		valor, _ := fila.ProductoPrecio.Mul(decimal.NewFromInt(int64(fila.Cantidad))).Float64()

		f.SetCellValue(hoja, "A"+row, fila.ProductoCodigo)
		f.SetCellValue(hoja, "B"+row, fila.ProductoNombre)
		f.SetCellValue(hoja, "C"+row, fila.Cantidad)
		f.SetCellValue(hoja, "D"+row, precio)
		f.SetCellValue(hoja, "E"+row, valor)
		f.SetCellValue(hoja, "F"+row, EstadoStockLabel(fila.Cantidad))

		totalUnidades += fila.Cantidad
	}

	totalRow := fmt.Sprint(len(filas) + 5)
	f.SetCellValue(hoja, "A"+totalRow, "TOTAL")
	f.SetCellValue(hoja, "C"+totalRow, totalUnidades)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
