// Package handlers exposes the REST API. Handlers only bind input, call
// into models/workflow and translate errors; business rules live below.
package handlers

import (
	"errors"
	"net/http"

	"github.com/Juandaamez/inventario-backend/ia"
	"github.com/Juandaamez/inventario-backend/mailer"
	"github.com/Juandaamez/inventario-backend/middlewares"
	"github.com/Juandaamez/inventario-backend/models"
	"github.com/Juandaamez/inventario-backend/utils"
	"github.com/gin-gonic/gin"
)

// Deps carries the pipeline collaborators handlers cannot build themselves.
type Deps struct {
	Dispatcher   *mailer.Dispatcher
	Enriquecedor ia.Enriquecedor
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	api := r.Group("/api")

	api.POST("/auth/login", loginHandler)

	// Company data is public to read, admin to mutate.
	api.GET("/empresas", listEmpresasHandler)
	api.GET("/empresas/:nit", getEmpresaHandler)
	api.POST("/empresas", middlewares.RequireAdmin(), createEmpresaHandler)
	api.PUT("/empresas/:nit", middlewares.RequireAdmin(), updateEmpresaHandler)
	api.DELETE("/empresas/:nit", middlewares.RequireAdmin(), deleteEmpresaHandler)

	api.GET("/productos", middlewares.RequireAuth(), listProductosHandler)
	api.GET("/productos/:id", middlewares.RequireAuth(), getProductoHandler)
	api.POST("/productos", middlewares.RequireAdmin(), createProductoHandler)
	api.PUT("/productos/:id", middlewares.RequireAdmin(), updateProductoHandler)
	api.DELETE("/productos/:id", middlewares.RequireAdmin(), deleteProductoHandler)

	api.GET("/inventarios", middlewares.RequireAuth(), listInventariosHandler)
	api.GET("/inventarios/:id", middlewares.RequireAuth(), getInventarioHandler)
	api.POST("/inventarios", middlewares.RequireAdmin(), createInventarioHandler)
	api.PUT("/inventarios/:id", middlewares.RequireAdmin(), updateInventarioHandler)
	api.DELETE("/inventarios/:id", middlewares.RequireAdmin(), deleteInventarioHandler)

	api.GET("/historial-envios", middlewares.RequireAuth(), listHistorialHandler)
	api.GET("/historial-envios/:id", middlewares.RequireAuth(), getHistorialHandler)

	// Report pipeline.
	api.GET("/empresas/:nit/pdf", middlewares.RequireAuth(), pdfHandler)
	api.GET("/empresas/:nit/excel", middlewares.RequireAuth(), excelHandler)
	api.GET("/empresas/:nit/analisis", middlewares.RequireAuth(), analisisHandler(deps))
	api.POST("/enviar-correo", middlewares.RequireAuth(), enviarCorreoHandler(deps))

	// Document verification is public: the hash itself is the capability.
	api.GET("/verificar/:hash", verificarHandler)
}

// responderError maps domain errors onto HTTP statuses with a uniform
// {"error": ...} payload.
func responderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrorInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrorCredencialesInvalidas):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
