package handlers

import (
	"net/http"

	"github.com/Juandaamez/inventario-backend/models"
	"github.com/gin-gonic/gin"
)

func listInventariosHandler(c *gin.Context) {
	inventarios, err := models.ListInventarios(c.Request.Context(),
		c.Query("empresa_nit"), c.Query("producto_codigo"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventarios)
}

func getInventarioHandler(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	inventario, err := models.GetInventario(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventario)
}

func createInventarioHandler(c *gin.Context) {
	var input models.NewInventario
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inventario, err := models.CreateInventario(c.Request.Context(), &input)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inventario)
}

func updateInventarioHandler(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	var input models.NewInventario
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inventario, err := models.UpdateInventario(c.Request.Context(), id, &input)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventario)
}

func deleteInventarioHandler(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	inventario, err := models.DeleteInventario(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventario)
}
