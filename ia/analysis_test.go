package ia

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Juandaamez/inventario-backend/models"
	"github.com/Juandaamez/inventario-backend/utils"
	"github.com/shopspring/decimal"
)

var empresaPrueba = &models.Empresa{
	Nit:    "900123456-7",
	Nombre: "Ferreteria El Tornillo",
}

func fila(codigo, nombre string, cantidad int, precio int64) models.FilaInventario {
	return models.FilaInventario{
		ProductoCodigo: codigo,
		ProductoNombre: nombre,
		Cantidad:       cantidad,
		ProductoPrecio: decimal.NewFromInt(precio),
	}
}

func TestNivelDeCantidad(t *testing.T) {
	casos := []struct {
		cantidad int
		nivel    NivelStock
	}{
		{0, NivelSinStock},
		{1, NivelBajo},
		{10, NivelBajo},
		{11, NivelMedio},
		{50, NivelMedio},
		{51, NivelAlto},
		{1000, NivelAlto},
	}
	for _, c := range casos {
		if got := NivelDeCantidad(c.cantidad); got != c.nivel {
			t.Errorf("NivelDeCantidad(%d) = %q, esperaba %q", c.cantidad, got, c.nivel)
		}
	}
}

func TestNuevoAnalisisRechazaCantidadNegativa(t *testing.T) {
	filas := []models.FilaInventario{fila("A-1", "Arena", -3, 100)}
	if _, err := NuevoAnalisis(empresaPrueba, filas); !errors.Is(err, utils.ErrorInvalidInput) {
		t.Fatalf("esperaba ErrorInvalidInput, obtuve %v", err)
	}
}

func TestAnalisisInventarioVacio(t *testing.T) {
	a, err := NuevoAnalisis(empresaPrueba, nil)
	if err != nil {
		t.Fatalf("NuevoAnalisis: %v", err)
	}

	if a.PctSinStock != 0 || a.PctStockBajo != 0 || a.PctSaludable != 100 {
		t.Fatalf("porcentajes vacios = %.1f/%.1f/%.1f, esperaba 0/0/100",
			a.PctSinStock, a.PctStockBajo, a.PctSaludable)
	}
	if !a.ValorTotal.IsZero() {
		t.Fatalf("valor total de inventario vacio = %s", a.ValorTotal)
	}

	estado, _ := a.EstadoGeneral()
	if estado != "SALUDABLE" {
		t.Fatalf("estado de inventario vacio = %q", estado)
	}

	for _, alerta := range a.GenerarAlertas() {
		if alerta.Prioridad == PrioridadCritica {
			t.Fatalf("inventario vacio genero alerta critica: %+v", alerta)
		}
	}
}

func TestAnalisisTodoAgotado(t *testing.T) {
	filas := []models.FilaInventario{
		fila("A-1", "Arena", 0, 100),
		fila("B-2", "Bloque", 0, 200),
		fila("C-3", "Cemento", 0, 300),
	}
	a, err := NuevoAnalisis(empresaPrueba, filas)
	if err != nil {
		t.Fatalf("NuevoAnalisis: %v", err)
	}

	if a.PctSinStock != 100 {
		t.Fatalf("PctSinStock = %.1f, esperaba 100", a.PctSinStock)
	}
	estado, _ := a.EstadoGeneral()
	if estado != "CRITICO" {
		t.Fatalf("estado = %q, esperaba CRITICO", estado)
	}

	alertas := a.GenerarAlertas()
	criticas := 0
	for _, alerta := range alertas {
		if alerta.Prioridad == PrioridadCritica {
			criticas++
			if len(alerta.Productos) != 3 {
				t.Fatalf("alerta critica lista %d productos, esperaba 3", len(alerta.Productos))
			}
		}
	}
	if criticas != 1 {
		t.Fatalf("alertas criticas = %d, esperaba exactamente 1", criticas)
	}
}

func TestAlertaCriticaLimitaProductosACinco(t *testing.T) {
	var filas []models.FilaInventario
	for i := 0; i < 8; i++ {
		filas = append(filas, fila(fmt.Sprintf("P-%d", i), fmt.Sprintf("Producto %d", i), 0, 10))
	}
	a, err := NuevoAnalisis(empresaPrueba, filas)
	if err != nil {
		t.Fatalf("NuevoAnalisis: %v", err)
	}

	for _, alerta := range a.GenerarAlertas() {
		if alerta.Prioridad == PrioridadCritica && len(alerta.Productos) != 5 {
			t.Fatalf("alerta critica lista %d productos, esperaba 5", len(alerta.Productos))
		}
	}
}

func TestAlertasOrdenadasPorPrioridad(t *testing.T) {
	filas := []models.FilaInventario{
		fila("A-1", "Arena", 0, 100),
		fila("B-2", "Bloque", 5, 50),
		fila("C-3", "Cemento", 100, 30000),
	}
	a, err := NuevoAnalisis(empresaPrueba, filas)
	if err != nil {
		t.Fatalf("NuevoAnalisis: %v", err)
	}

	alertas := a.GenerarAlertas()
	if len(alertas) < 2 {
		t.Fatalf("esperaba varias alertas, obtuve %d", len(alertas))
	}
	for i := 1; i < len(alertas); i++ {
		if alertas[i-1].Prioridad.rango() > alertas[i].Prioridad.rango() {
			t.Fatalf("alertas fuera de orden: %q despues de %q",
				alertas[i].Prioridad, alertas[i-1].Prioridad)
		}
	}
}

func TestAlertaValorAlto(t *testing.T) {
	filas := []models.FilaInventario{fila("ORO-1", "Lingote", 100, 50_000)}
	a, err := NuevoAnalisis(empresaPrueba, filas)
	if err != nil {
		t.Fatalf("NuevoAnalisis: %v", err)
	}

	encontrada := false
	for _, alerta := range a.GenerarAlertas() {
		if alerta.Tipo == "valor_alto" {
			encontrada = true
			if alerta.Prioridad != PrioridadInfo {
				t.Fatalf("alerta valor_alto con prioridad %q", alerta.Prioridad)
			}
		}
	}
	if !encontrada {
		t.Fatalf("valor %s no disparo la alerta de valor alto", a.ValorTotal)
	}

	// Raising the threshold above the total silences it.
	a.UmbralValorAlto = decimal.NewFromInt(10_000_000)
	for _, alerta := range a.GenerarAlertas() {
		if alerta.Tipo == "valor_alto" {
			t.Fatal("alerta valor_alto con umbral elevado")
		}
	}
}

func TestResumenEjecutivoEstados(t *testing.T) {
	casos := []struct {
		nombre string
		filas  []models.FilaInventario
		estado string
	}{
		{
			nombre: "critico",
			filas: []models.FilaInventario{
				fila("A-1", "Arena", 0, 100),
				fila("B-2", "Bloque", 100, 100),
			},
			estado: "CRITICO",
		},
		{
			nombre: "requiere atencion",
			filas: []models.FilaInventario{
				fila("A-1", "Arena", 5, 100),
				fila("B-2", "Bloque", 5, 100),
				fila("C-3", "Cemento", 100, 100),
			},
			estado: "REQUIERE ATENCION",
		},
		{
			nombre: "saludable",
			filas: []models.FilaInventario{
				fila("A-1", "Arena", 40, 100),
				fila("B-2", "Bloque", 100, 100),
			},
			estado: "SALUDABLE",
		},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			a, err := NuevoAnalisis(empresaPrueba, c.filas)
			if err != nil {
				t.Fatalf("NuevoAnalisis: %v", err)
			}
			resumen := a.GenerarResumenEjecutivo()
			if !strings.Contains(resumen, "ESTADO GENERAL: "+c.estado) {
				t.Fatalf("resumen sin estado %q:\n%s", c.estado, resumen)
			}
			if !strings.Contains(resumen, empresaPrueba.Nombre) {
				t.Fatal("resumen sin nombre de empresa")
			}
			if !strings.Contains(resumen, empresaPrueba.Nit) {
				t.Fatal("resumen sin NIT")
			}
		})
	}
}

func TestGenerarRecomendaciones(t *testing.T) {
	filas := []models.FilaInventario{
		fila("A-1", "Arena", 0, 100),
		fila("B-2", "Bloque", 3, 100),
		fila("C-3", "Cemento", 200, 100),
		fila("D-4", "Ladrillo", 300, 100),
		fila("E-5", "Teja", 400, 100),
	}
	a, err := NuevoAnalisis(empresaPrueba, filas)
	if err != nil {
		t.Fatalf("NuevoAnalisis: %v", err)
	}

	recomendaciones := a.GenerarRecomendaciones()
	if len(recomendaciones) != 3 {
		t.Fatalf("recomendaciones = %d, esperaba 3", len(recomendaciones))
	}
	for i, prioridad := range []int{1, 2, 3} {
		if recomendaciones[i].Prioridad != prioridad {
			t.Fatalf("recomendacion %d con prioridad %d, esperaba %d",
				i, recomendaciones[i].Prioridad, prioridad)
		}
	}
	if recomendaciones[0].Items[0] != "Arena" {
		t.Fatalf("recomendacion urgente lista %v", recomendaciones[0].Items)
	}
	if !strings.Contains(recomendaciones[1].Items[0], "3 uds") {
		t.Fatalf("recomendacion planificada sin cantidad: %v", recomendaciones[1].Items)
	}
}

func TestGenerarAnalisisCompleto(t *testing.T) {
	filas := []models.FilaInventario{
		fila("A-1", "Arena", 0, 1000),
		fila("B-2", "Bloque", 25, 500),
	}
	a, err := NuevoAnalisis(empresaPrueba, filas)
	if err != nil {
		t.Fatalf("NuevoAnalisis: %v", err)
	}

	completo := a.GenerarAnalisisCompleto()
	if completo.Metricas.TotalProductos != 2 || completo.Metricas.TotalUnidades != 25 {
		t.Fatalf("metricas = %+v", completo.Metricas)
	}
	if !completo.Metricas.ValorTotal.Equal(decimal.NewFromInt(12_500)) {
		t.Fatalf("valor total = %s, esperaba 12500", completo.Metricas.ValorTotal)
	}
	if len(completo.Detalles.SinStock) != 1 || completo.Detalles.SinStock[0].Codigo != "A-1" {
		t.Fatalf("detalles sin stock = %+v", completo.Detalles.SinStock)
	}
	if completo.Resumen == "" || len(completo.Alertas) == 0 {
		t.Fatal("analisis completo sin resumen o sin alertas")
	}
}
