package models_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Juandaamez/inventario-backend/config"
	"github.com/Juandaamez/inventario-backend/models"
	"github.com/shopspring/decimal"
)

func requireIntegration(t *testing.T) {
	t.Helper()
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires MySQL via DB_* env)")
	}
	config.ConnectDatabaseWithRetry()
	models.MigrateTable()
}

func nitUnico() string {
	return fmt.Sprintf("9%09d", time.Now().UnixNano()%1_000_000_000)
}

func crearEmpresaPrueba(t *testing.T, ctx context.Context) *models.Empresa {
	t.Helper()
	empresa, err := models.CreateEmpresa(ctx, &models.NewEmpresa{
		Nit:       nitUnico(),
		Nombre:    "Empresa de Prueba",
		Direccion: "Calle 10 # 4-25, Bogota",
		Telefono:  "6015551234",
	})
	if err != nil {
		t.Fatalf("CreateEmpresa: %v", err)
	}
	return empresa
}

func TestSnapshotInventarioTotales(t *testing.T) {
	requireIntegration(t)
	ctx := context.Background()

	empresa := crearEmpresaPrueba(t, ctx)

	codigoBase := fmt.Sprintf("SNAP-%d", time.Now().UnixNano())
	productos := []struct {
		codigo   string
		precio   int
		cantidad int
	}{
		{codigoBase + "-A", 100, 0},
		{codigoBase + "-B", 50, 5},
	}
	for _, p := range productos {
		producto, err := models.CreateProducto(ctx, &models.NewProducto{
			Codigo:     p.codigo,
			Nombre:     "Producto " + p.codigo,
			Precios:    map[string]interface{}{"COP": p.precio},
			EmpresaNit: empresa.Nit,
		})
		if err != nil {
			t.Fatalf("CreateProducto(%s): %v", p.codigo, err)
		}
		if _, err := models.CreateInventario(ctx, &models.NewInventario{
			ProductoID: producto.ID,
			Cantidad:   p.cantidad,
		}); err != nil {
			t.Fatalf("CreateInventario(%s): %v", p.codigo, err)
		}
	}

	filas, err := models.SnapshotInventario(ctx, empresa.Nit)
	if err != nil {
		t.Fatalf("SnapshotInventario: %v", err)
	}
	if len(filas) != 2 {
		t.Fatalf("filas = %d, esperaba 2", len(filas))
	}

	unidades := 0
	valor := decimal.Zero
	for _, fila := range filas {
		unidades += fila.Cantidad
		valor = valor.Add(fila.ProductoPrecio.Mul(decimal.NewFromInt(int64(fila.Cantidad))))
	}
	if unidades != 5 {
		t.Fatalf("unidades = %d, esperaba 5", unidades)
	}
	if !valor.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("valor = %s, esperaba 250", valor)
	}
}

func TestHistorialEnvioTransiciones(t *testing.T) {
	requireIntegration(t)
	ctx := context.Background()

	empresa := crearEmpresaPrueba(t, ctx)
	hash := strings.Repeat("ab", 32)

	historial, err := models.CrearHistorialPendiente(ctx, &models.NuevoHistorialEnvio{
		EmpresaNit:      empresa.Nit,
		EmailDestino:    "gerencia@example.com",
		Asunto:          "Reporte de Inventario",
		DocumentoHash:   hash,
		TotalProductos:  2,
		TotalUnidades:   5,
		ValorInventario: decimal.NewFromInt(250),
	})
	if err != nil {
		t.Fatalf("CrearHistorialPendiente: %v", err)
	}
	if historial.Estado != models.EstadoEnvioPendiente {
		t.Fatalf("estado inicial = %q", historial.Estado)
	}
	if historial.PublicId == "" {
		t.Fatal("historial sin public_id")
	}

	if err := historial.MarcarEnviado(ctx, models.ProveedorEmailResend, []byte(`{"id":"x"}`)); err != nil {
		t.Fatalf("MarcarEnviado: %v", err)
	}
	if historial.Estado != models.EstadoEnvioEnviado || historial.FechaEnvio == nil {
		t.Fatalf("tras MarcarEnviado: estado=%q fechaEnvio=%v", historial.Estado, historial.FechaEnvio)
	}

	// A second transition must fail loudly, never silently overwrite.
	if err := historial.MarcarFallido(ctx, models.ProveedorEmailSMTP, "tarde"); err == nil {
		t.Fatal("MarcarFallido sobre un registro terminal debe fallar")
	}

	recargado, err := models.GetHistorialEnvio(ctx, historial.ID)
	if err != nil {
		t.Fatalf("GetHistorialEnvio: %v", err)
	}
	if recargado.Estado != models.EstadoEnvioEnviado {
		t.Fatalf("estado tras doble transicion = %q", recargado.Estado)
	}
}

func TestGetHistorialPorHashPrefijo(t *testing.T) {
	requireIntegration(t)
	ctx := context.Background()

	empresa := crearEmpresaPrueba(t, ctx)
	hash := fmt.Sprintf("%064x", time.Now().UnixNano())

	historial, err := models.CrearHistorialPendiente(ctx, &models.NuevoHistorialEnvio{
		EmpresaNit:    empresa.Nit,
		EmailDestino:  "gerencia@example.com",
		Asunto:        "Reporte de Inventario",
		DocumentoHash: hash,
	})
	if err != nil {
		t.Fatalf("CrearHistorialPendiente: %v", err)
	}

	porPrefijo, err := models.GetHistorialPorHash(ctx, hash[:16])
	if err != nil {
		t.Fatalf("GetHistorialPorHash(prefijo): %v", err)
	}
	if porPrefijo.ID != historial.ID {
		t.Fatalf("por prefijo devolvio id %d, esperaba %d", porPrefijo.ID, historial.ID)
	}

	if _, err := models.GetHistorialPorHash(ctx, "abc"); err == nil {
		t.Fatal("un hash demasiado corto debe rechazarse")
	}
}
