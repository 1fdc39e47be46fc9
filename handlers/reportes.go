package handlers

import (
	"fmt"
	"net/http"

	"github.com/Juandaamez/inventario-backend/config"
	"github.com/Juandaamez/inventario-backend/ia"
	"github.com/Juandaamez/inventario-backend/models"
	"github.com/Juandaamez/inventario-backend/reports"
	"github.com/Juandaamez/inventario-backend/utils"
	"github.com/Juandaamez/inventario-backend/workflow"
	"github.com/gin-gonic/gin"
)

func snapshotDeEmpresa(c *gin.Context) (*models.Empresa, []models.FilaInventario, bool) {
	ctx := c.Request.Context()
	empresa, err := models.GetEmpresa(ctx, c.Param("nit"))
	if err != nil {
		responderError(c, err)
		return nil, nil, false
	}
	filas, err := models.SnapshotInventario(ctx, empresa.Nit)
	if err != nil {
		responderError(c, err)
		return nil, nil, false
	}
	return empresa, filas, true
}

func pdfHandler(c *gin.Context) {
	empresa, filas, ok := snapshotDeEmpresa(c)
	if !ok {
		return
	}

	contenido, err := reports.GenerarPDFInventario(empresa, filas)
	if err != nil {
		responderError(c, err)
		return
	}

	nombre := fmt.Sprintf("reporte_inventario_%s.pdf", empresa.Nit)
	c.Header("Content-Disposition", "attachment; filename="+nombre)
	c.Data(http.StatusOK, "application/pdf", contenido)
}

func excelHandler(c *gin.Context) {
	empresa, filas, ok := snapshotDeEmpresa(c)
	if !ok {
		return
	}

	contenido, err := reports.ExportarExcelInventario(empresa, filas)
	if err != nil {
		responderError(c, err)
		return
	}

	nombre := fmt.Sprintf("inventario_%s.xlsx", empresa.Nit)
	c.Header("Content-Disposition", "attachment; filename="+nombre)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contenido)
}

func analisisHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		empresa, filas, ok := snapshotDeEmpresa(c)
		if !ok {
			return
		}

		analisis, err := ia.NuevoAnalisis(empresa, filas)
		if err != nil {
			responderError(c, err)
			return
		}

		completo := analisis.GenerarAnalisisCompleto()
		if deps.Enriquecedor != nil {
			if enriquecido, errIA := deps.Enriquecedor.EnriquecerResumen(c.Request.Context(), analisis); errIA == nil {
				completo.Resumen = enriquecido
			} else {
				config.LogWarn(config.GetLogger(), "handlers", "analisisHandler",
					"enriquecimiento IA fallido, se entrega el resumen deterministico", errIA)
			}
		}

		c.JSON(http.StatusOK, completo)
	}
}

func enviarCorreoHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sol workflow.SolicitudEnvio
		if err := c.ShouldBindJSON(&sol); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if userId, ok := utils.GetUserIdFromContext(c.Request.Context()); ok {
			sol.UsuarioId = &userId
		}

		historial, err := workflow.EnviarReporteInventario(c.Request.Context(), deps.Dispatcher, deps.Enriquecedor, sol)
		if err != nil {
			responderError(c, err)
			return
		}

		status := http.StatusOK
		if !historial.EsExitoso() {
			// The report was generated and audited but no transport
			// delivered it.
			status = http.StatusBadGateway
		}
		c.JSON(status, historial)
	}
}

func verificarHandler(c *gin.Context) {
	historial, err := models.GetHistorialPorHash(c.Request.Context(), c.Param("hash"))
	if err != nil {
		responderError(c, err)
		return
	}

	respuesta := gin.H{
		"valido":          true,
		"documento_hash":  historial.DocumentoHash,
		"contenido_hash":  historial.ContenidoHash,
		"estado":          historial.Estado,
		"total_productos": historial.TotalProductos,
		"total_unidades":  historial.TotalUnidades,
		"fecha_creacion":  historial.FechaCreacion,
		"fecha_envio":     historial.FechaEnvio,
	}
	if historial.Empresa != nil {
		respuesta["empresa"] = gin.H{
			"nit":    historial.Empresa.Nit,
			"nombre": historial.Empresa.Nombre,
		}
	}
	c.JSON(http.StatusOK, respuesta)
}
