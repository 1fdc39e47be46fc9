package handlers

import (
	"net/http"

	"github.com/Juandaamez/inventario-backend/models"
	"github.com/gin-gonic/gin"
)

func listHistorialHandler(c *gin.Context) {
	historial, err := models.ListHistorialEnvios(c.Request.Context(), c.Query("empresa_nit"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, historial)
}

func getHistorialHandler(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	historial, err := models.GetHistorialEnvio(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, historial)
}
