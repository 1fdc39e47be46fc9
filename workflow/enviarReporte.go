// Package workflow orchestrates the report pipeline: snapshot, analysis,
// PDF rendering, hashing, audit record and delivery.
package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/Juandaamez/inventario-backend/blockchain"
	"github.com/Juandaamez/inventario-backend/config"
	"github.com/Juandaamez/inventario-backend/ia"
	"github.com/Juandaamez/inventario-backend/mailer"
	"github.com/Juandaamez/inventario-backend/models"
	"github.com/Juandaamez/inventario-backend/reports"
	"github.com/Juandaamez/inventario-backend/utils"
)

type SolicitudEnvio struct {
	EmpresaNit   string `json:"empresa_nit" binding:"required"`
	EmailDestino string `json:"email_destino" binding:"required"`
	Asunto       string `json:"asunto"`
	UsuarioId    *int   `json:"-"`
}

// EnviarReporteInventario runs the full certified-delivery pipeline for one
// company. Failures before the audit record exists abort with an error;
// once the pending record is created every outcome, including a panic,
// lands in a terminal estado. Delivery failure is not an error for the
// caller: it is recorded in the returned historial.
func EnviarReporteInventario(ctx context.Context, dispatcher *mailer.Dispatcher, enriquecedor ia.Enriquecedor, sol SolicitudEnvio) (historial *models.HistorialEnvio, err error) {
	logger := config.GetLogger()

	empresa, err := models.GetEmpresa(ctx, sol.EmpresaNit)
	if err != nil {
		return nil, err
	}

	filas, err := models.SnapshotInventario(ctx, sol.EmpresaNit)
	if err != nil {
		return nil, err
	}

	analisis, err := ia.NuevoAnalisis(empresa, filas)
	if err != nil {
		return nil, err
	}

	contenidoPDF, err := reports.GenerarPDFInventario(empresa, filas)
	if err != nil {
		return nil, err
	}

	documentoHash, err := blockchain.HashDocumento(contenidoPDF)
	if err != nil {
		return nil, err
	}

	// An empty inventory still produces a valid (empty) report; there is
	// just no content to certify row by row.
	contenidoHash := ""
	if len(filas) > 0 {
		items := make([]blockchain.ItemInventario, 0, len(filas))
		for _, fila := range filas {
			items = append(items, blockchain.ItemInventario{
				Cantidad: fila.Cantidad,
				Codigo:   fila.ProductoCodigo,
				Nombre:   fila.ProductoNombre,
			})
		}
		if contenidoHash, err = blockchain.HashInventario(items); err != nil {
			return nil, err
		}
	}

	resumen := analisis.GenerarResumenEjecutivo()
	if enriquecedor != nil {
		enriquecido, errIA := enriquecedor.EnriquecerResumen(ctx, analisis)
		if errIA != nil {
			config.LogWarn(logger, "workflow", "EnviarReporteInventario",
				"enriquecimiento IA fallido, se conserva el resumen deterministico", errIA)
		} else {
			resumen = enriquecido
		}
	}

	alertas := analisis.GenerarAlertas()
	alertasJSON, err := utils.MarshalToJSON(alertas)
	if err != nil {
		return nil, err
	}

	asunto := strings.TrimSpace(sol.Asunto)
	if asunto == "" {
		asunto = "Reporte de Inventario - " + empresa.Nombre
	}

	historial, err = models.CrearHistorialPendiente(ctx, &models.NuevoHistorialEnvio{
		EmpresaNit:      empresa.Nit,
		UsuarioId:       sol.UsuarioId,
		EmailDestino:    sol.EmailDestino,
		Asunto:          asunto,
		DocumentoHash:   documentoHash,
		ContenidoHash:   contenidoHash,
		TotalProductos:  analisis.TotalProductos,
		TotalUnidades:   analisis.TotalUnidades,
		ValorInventario: analisis.ValorTotal,
		ResumenIA:       resumen,
		AlertasIA:       []byte(alertasJSON),
	})
	if err != nil {
		return nil, err
	}

	// From here on the record must never stay pendiente.
	defer func() {
		if r := recover(); r != nil {
			detalle := fmt.Sprintf("panico durante el envio: %v", r)
			config.LogError(logger, "workflow", "EnviarReporteInventario", "panico recuperado",
				map[string]interface{}{"historial_id": historial.ID}, fmt.Errorf("%v", r))
			if errMarca := historial.MarcarFallido(context.WithoutCancel(ctx), models.ProveedorEmailManual, detalle); errMarca != nil {
				config.LogError(logger, "workflow", "EnviarReporteInventario",
					"no se pudo marcar el historial como fallido", nil, errMarca)
			}
			err = fmt.Errorf("envio interrumpido: %s", detalle)
		}
	}()

	mensaje := mailer.Mensaje{
		Para:   sol.EmailDestino,
		Asunto: asunto,
		HTML:   mailer.CuerpoAvanzado(empresa.Nombre, analisis.TotalProductos, analisis.TotalUnidades, alertas, documentoHash),
		Adjuntos: []mailer.Adjunto{{
			Nombre:    "reporte_inventario_" + empresa.Nit + ".pdf",
			TipoMIME:  "application/pdf",
			Contenido: contenidoPDF,
		}},
	}

	resultado := dispatcher.Enviar(ctx, mensaje)
	if resultado.Exitoso {
		if err := historial.MarcarEnviado(ctx, resultado.Proveedor, resultado.Respuesta); err != nil {
			return nil, err
		}
		config.LogInfo(logger, "workflow", "EnviarReporteInventario", "reporte enviado", map[string]interface{}{
			"historial_id": historial.ID,
			"empresa_nit":  empresa.Nit,
			"proveedor":    resultado.Proveedor,
		})
		return historial, nil
	}

	if err := historial.MarcarFallido(ctx, resultado.Proveedor, resultado.Mensaje); err != nil {
		return nil, err
	}
	config.LogError(logger, "workflow", "EnviarReporteInventario", "entrega fallida",
		map[string]interface{}{
			"historial_id": historial.ID,
			"empresa_nit":  empresa.Nit,
			"proveedor":    resultado.Proveedor,
		}, fmt.Errorf("%s", resultado.Mensaje))
	return historial, nil
}
