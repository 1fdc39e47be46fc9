// Package ia is the rule-based inventory analysis engine: stock-health
// buckets, prioritized alerts, an executive summary and restock
// recommendations. It is deterministic; the optional generative enrichment
// lives in openai.go and is never required for correctness.
package ia

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Juandaamez/inventario-backend/models"
	"github.com/Juandaamez/inventario-backend/utils"
	"github.com/shopspring/decimal"
)

// Stock thresholds. A quantity of exactly UmbralStockCritico is out of
// stock; (0, UmbralStockBajo] is low; (UmbralStockBajo, UmbralStockMedio]
// is medium; above that is high.
const (
	UmbralStockCritico = 0
	UmbralStockBajo    = 10
	UmbralStockMedio   = 50
)

// UmbralValorAltoDefecto is the inventory value (base currency) above which
// the high-value info alert fires.
var UmbralValorAltoDefecto = decimal.NewFromInt(1_000_000)

type NivelStock string

const (
	NivelSinStock NivelStock = "sin_stock"
	NivelBajo     NivelStock = "bajo"
	NivelMedio    NivelStock = "medio"
	NivelAlto     NivelStock = "alto"
)

// NivelDeCantidad buckets a quantity. Pure function, recomputed on every
// analysis, never cached.
func NivelDeCantidad(cantidad int) NivelStock {
	switch {
	case cantidad == UmbralStockCritico:
		return NivelSinStock
	case cantidad <= UmbralStockBajo:
		return NivelBajo
	case cantidad <= UmbralStockMedio:
		return NivelMedio
	default:
		return NivelAlto
	}
}

type PrioridadAlerta string

const (
	PrioridadCritica PrioridadAlerta = "critica"
	PrioridadAlta    PrioridadAlerta = "alta"
	PrioridadMedia   PrioridadAlerta = "media"
	PrioridadInfo    PrioridadAlerta = "info"
)

func (p PrioridadAlerta) rango() int {
	switch p {
	case PrioridadCritica:
		return 0
	case PrioridadAlta:
		return 1
	case PrioridadMedia:
		return 2
	case PrioridadInfo:
		return 3
	default:
		return 4
	}
}

type Alerta struct {
	Prioridad      PrioridadAlerta `json:"prioridad"`
	Tipo           string          `json:"tipo"`
	Titulo         string          `json:"titulo"`
	Mensaje        string          `json:"mensaje"`
	Productos      []string        `json:"productos,omitempty"`
	AccionSugerida string          `json:"accion_sugerida"`
}

type Recomendacion struct {
	Tipo        string   `json:"tipo"`
	Prioridad   int      `json:"prioridad"`
	Titulo      string   `json:"titulo"`
	Descripcion string   `json:"descripcion"`
	Items       []string `json:"items"`
	Impacto     string   `json:"impacto"`
}

type ItemAnalisis struct {
	Codigo   string          `json:"codigo"`
	Nombre   string          `json:"nombre"`
	Cantidad int             `json:"cantidad"`
	Precio   decimal.Decimal `json:"precio"`
	Valor    decimal.Decimal `json:"valor"`
}

// Analisis holds the metrics computed once at construction. All generator
// methods are pure given a validly constructed instance.
type Analisis struct {
	Empresa       *models.Empresa
	FechaAnalisis time.Time

	TotalProductos int
	TotalUnidades  int
	ValorTotal     decimal.Decimal

	SinStock   []ItemAnalisis
	StockBajo  []ItemAnalisis
	StockMedio []ItemAnalisis
	StockAlto  []ItemAnalisis

	PctSinStock  float64
	PctStockBajo float64
	PctSaludable float64

	// UmbralValorAlto can be raised per company before calling the
	// generators; zero means the default.
	UmbralValorAlto decimal.Decimal
}

// NuevoAnalisis computes metrics and buckets for a snapshot. Rows with
// negative quantities are the caller's bug and reject the whole analysis.
func NuevoAnalisis(empresa *models.Empresa, filas []models.FilaInventario) (*Analisis, error) {
	a := &Analisis{
		Empresa:         empresa,
		FechaAnalisis:   time.Now(),
		TotalProductos:  len(filas),
		ValorTotal:      decimal.Zero,
		UmbralValorAlto: UmbralValorAltoDefecto,
	}

	for _, fila := range filas {
		if fila.Cantidad < 0 {
			return nil, fmt.Errorf("producto %s con cantidad negativa %d: %w",
				fila.ProductoCodigo, fila.Cantidad, utils.ErrorInvalidInput)
		}

		valor := fila.ProductoPrecio.Mul(decimal.NewFromInt(int64(fila.Cantidad)))
		a.TotalUnidades += fila.Cantidad
		a.ValorTotal = a.ValorTotal.Add(valor)

		item := ItemAnalisis{
			Codigo:   fila.ProductoCodigo,
			Nombre:   fila.ProductoNombre,
			Cantidad: fila.Cantidad,
			Precio:   fila.ProductoPrecio,
			Valor:    valor,
		}

		switch NivelDeCantidad(fila.Cantidad) {
		case NivelSinStock:
			a.SinStock = append(a.SinStock, item)
		case NivelBajo:
			a.StockBajo = append(a.StockBajo, item)
		case NivelMedio:
			a.StockMedio = append(a.StockMedio, item)
		default:
			a.StockAlto = append(a.StockAlto, item)
		}
	}

	if a.TotalProductos > 0 {
		total := float64(a.TotalProductos)
		a.PctSinStock = float64(len(a.SinStock)) / total * 100
		a.PctStockBajo = float64(len(a.StockBajo)) / total * 100
		a.PctSaludable = float64(len(a.StockMedio)+len(a.StockAlto)) / total * 100
	} else {
		// An empty inventory is vacuously healthy.
		a.PctSinStock = 0
		a.PctStockBajo = 0
		a.PctSaludable = 100
	}

	return a, nil
}

const maxProductosEnAlerta = 5

// GenerarAlertas evaluates the five rules in fixed order and returns the
// results sorted by priority; ties keep generation order.
func (a *Analisis) GenerarAlertas() []Alerta {
	var alertas []Alerta

	if len(a.SinStock) > 0 {
		alertas = append(alertas, Alerta{
			Prioridad:      PrioridadCritica,
			Tipo:           "stock_agotado",
			Titulo:         "Productos Agotados",
			Mensaje:        fmt.Sprintf("%d producto(s) sin stock disponible", len(a.SinStock)),
			Productos:      nombres(a.SinStock, maxProductosEnAlerta),
			AccionSugerida: "Reabastecer inmediatamente para evitar perdida de ventas",
		})
	}

	if len(a.StockBajo) > 0 {
		alertas = append(alertas, Alerta{
			Prioridad:      PrioridadAlta,
			Tipo:           "stock_bajo",
			Titulo:         "Stock Bajo",
			Mensaje:        fmt.Sprintf("%d producto(s) con menos de %d unidades", len(a.StockBajo), UmbralStockBajo),
			Productos:      nombresConCantidad(a.StockBajo, maxProductosEnAlerta),
			AccionSugerida: "Planificar reabastecimiento en los proximos dias",
		})
	}

	if a.PctStockBajo > 30 {
		alertas = append(alertas, Alerta{
			Prioridad:      PrioridadMedia,
			Tipo:           "tendencia_negativa",
			Titulo:         "Tendencia de Stock Bajo",
			Mensaje:        fmt.Sprintf("%.1f%% del inventario tiene stock bajo", a.PctStockBajo),
			AccionSugerida: "Revisar estrategia de reabastecimiento general",
		})
	}

	if a.PctSaludable > 80 {
		alertas = append(alertas, Alerta{
			Prioridad:      PrioridadInfo,
			Tipo:           "inventario_saludable",
			Titulo:         "Inventario Saludable",
			Mensaje:        fmt.Sprintf("%.1f%% del inventario tiene niveles adecuados", a.PctSaludable),
			AccionSugerida: "Mantener monitoreo regular",
		})
	}

	if a.ValorTotal.GreaterThan(a.umbralValorAlto()) {
		alertas = append(alertas, Alerta{
			Prioridad:      PrioridadInfo,
			Tipo:           "valor_alto",
			Titulo:         "Inventario de Alto Valor",
			Mensaje:        fmt.Sprintf("Valor total del inventario: %s COP", utils.FormatearMoneda(a.ValorTotal, "COP")),
			AccionSugerida: "Considerar medidas de seguridad adicionales",
		})
	}

	sort.SliceStable(alertas, func(i, j int) bool {
		return alertas[i].Prioridad.rango() < alertas[j].Prioridad.rango()
	})
	return alertas
}

// EstadoGeneral returns the overall label: CRITICO when more than 20% of
// products are out of stock, REQUIERE ATENCION when more than 30% are low,
// SALUDABLE otherwise, evaluated in that order.
func (a *Analisis) EstadoGeneral() (estado string, recomendacion string) {
	switch {
	case a.PctSinStock > 20:
		return "CRITICO", "Se requiere accion inmediata de reabastecimiento."
	case a.PctStockBajo > 30:
		return "REQUIERE ATENCION", "Se recomienda revisar niveles de stock proximamente."
	default:
		return "SALUDABLE", "El inventario se encuentra en niveles adecuados."
	}
}

// GenerarResumenEjecutivo renders the deterministic plain-text summary that
// goes into the mail body and the audit record.
func (a *Analisis) GenerarResumenEjecutivo() string {
	estado, recomendacion := a.EstadoGeneral()
	saludables := len(a.StockMedio) + len(a.StockAlto)

	var b strings.Builder
	b.WriteString("RESUMEN EJECUTIVO DE INVENTARIO\n")
	b.WriteString("===============================\n")
	fmt.Fprintf(&b, "Empresa: %s\n", a.Empresa.Nombre)
	fmt.Fprintf(&b, "NIT: %s\n", a.Empresa.Nit)
	fmt.Fprintf(&b, "Fecha de analisis: %s a las %s\n\n",
		utils.FormatearFechaLarga(a.FechaAnalisis), a.FechaAnalisis.Format("15:04"))

	b.WriteString("METRICAS PRINCIPALES\n")
	fmt.Fprintf(&b, "- Total de productos: %d\n", a.TotalProductos)
	fmt.Fprintf(&b, "- Total de unidades: %d\n", a.TotalUnidades)
	fmt.Fprintf(&b, "- Valor del inventario: %s COP\n\n", utils.FormatearMoneda(a.ValorTotal, "COP"))

	b.WriteString("DISTRIBUCION DE STOCK\n")
	fmt.Fprintf(&b, "- Sin stock: %d (%.1f%%)\n", len(a.SinStock), a.PctSinStock)
	fmt.Fprintf(&b, "- Stock bajo (<=%d): %d (%.1f%%)\n", UmbralStockBajo, len(a.StockBajo), a.PctStockBajo)
	fmt.Fprintf(&b, "- Stock saludable: %d (%.1f%%)\n\n", saludables, a.PctSaludable)

	fmt.Fprintf(&b, "ESTADO GENERAL: %s\n%s", estado, recomendacion)
	return b.String()
}

// GenerarRecomendaciones returns restock and optimization suggestions
// ordered by priority (1 urgent, 2 planned, 3 optimization).
func (a *Analisis) GenerarRecomendaciones() []Recomendacion {
	var recomendaciones []Recomendacion

	if len(a.SinStock) > 0 {
		recomendaciones = append(recomendaciones, Recomendacion{
			Tipo:      "reabastecimiento_urgente",
			Prioridad: 1,
			Titulo:    "Reabastecimiento Urgente",
			Descripcion: fmt.Sprintf(
				"Los siguientes %d productos estan agotados y requieren reabastecimiento inmediato:",
				len(a.SinStock)),
			Items:   nombres(a.SinStock, len(a.SinStock)),
			Impacto: "Alto - Perdida potencial de ventas",
		})
	}

	if len(a.StockBajo) > 0 {
		recomendaciones = append(recomendaciones, Recomendacion{
			Tipo:        "reabastecimiento_planificado",
			Prioridad:   2,
			Titulo:      "Planificar Reabastecimiento",
			Descripcion: fmt.Sprintf("%d productos tienen stock bajo:", len(a.StockBajo)),
			Items:       nombresConCantidad(a.StockBajo, len(a.StockBajo)),
			Impacto:     "Medio - Riesgo de agotamiento proximo",
		})
	}

	if len(a.StockAlto)*2 > a.TotalProductos {
		recomendaciones = append(recomendaciones, Recomendacion{
			Tipo:        "optimizacion",
			Prioridad:   3,
			Titulo:      "Optimizacion de Inventario",
			Descripcion: fmt.Sprintf("%d productos tienen stock alto. Considerar:", len(a.StockAlto)),
			Items: []string{
				"Revisar rotacion de productos",
				"Analizar costos de almacenamiento",
				"Evaluar posibles promociones",
			},
			Impacto: "Bajo - Oportunidad de mejora",
		})
	}

	return recomendaciones
}

// AnalisisCompleto is the JSON payload served by the analysis endpoint.
type AnalisisCompleto struct {
	FechaAnalisis   time.Time       `json:"fecha_analisis"`
	Empresa         *models.Empresa `json:"empresa"`
	Metricas        Metricas        `json:"metricas"`
	Alertas         []Alerta        `json:"alertas"`
	Resumen         string          `json:"resumen"`
	Recomendaciones []Recomendacion `json:"recomendaciones"`
	Detalles        Detalles        `json:"detalles"`
}

type Metricas struct {
	TotalProductos int             `json:"total_productos"`
	TotalUnidades  int             `json:"total_unidades"`
	ValorTotal     decimal.Decimal `json:"valor_total"`
	PctSinStock    float64         `json:"pct_sin_stock"`
	PctStockBajo   float64         `json:"pct_stock_bajo"`
	PctSaludable   float64         `json:"pct_stock_saludable"`
}

type Detalles struct {
	SinStock  []ItemAnalisis `json:"sin_stock"`
	StockBajo []ItemAnalisis `json:"stock_bajo"`
}

func (a *Analisis) GenerarAnalisisCompleto() *AnalisisCompleto {
	return &AnalisisCompleto{
		FechaAnalisis: a.FechaAnalisis,
		Empresa:       a.Empresa,
		Metricas: Metricas{
			TotalProductos: a.TotalProductos,
			TotalUnidades:  a.TotalUnidades,
			ValorTotal:     a.ValorTotal,
			PctSinStock:    redondear1(a.PctSinStock),
			PctStockBajo:   redondear1(a.PctStockBajo),
			PctSaludable:   redondear1(a.PctSaludable),
		},
		Alertas:         a.GenerarAlertas(),
		Resumen:         a.GenerarResumenEjecutivo(),
		Recomendaciones: a.GenerarRecomendaciones(),
		Detalles: Detalles{
			SinStock:  a.SinStock,
			StockBajo: a.StockBajo,
		},
	}
}

func (a *Analisis) umbralValorAlto() decimal.Decimal {
	if a.UmbralValorAlto.IsZero() {
		return UmbralValorAltoDefecto
	}
	return a.UmbralValorAlto
}

func nombres(items []ItemAnalisis, limite int) []string {
	if limite > len(items) {
		limite = len(items)
	}
	out := make([]string, 0, limite)
	for _, item := range items[:limite] {
		out = append(out, item.Nombre)
	}
	return out
}

func nombresConCantidad(items []ItemAnalisis, limite int) []string {
	if limite > len(items) {
		limite = len(items)
	}
	out := make([]string, 0, limite)
	for _, item := range items[:limite] {
		out = append(out, fmt.Sprintf("%s (%d uds)", item.Nombre, item.Cantidad))
	}
	return out
}

func redondear1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
