package handlers

import (
	"net/http"
	"strconv"

	"github.com/Juandaamez/inventario-backend/models"
	"github.com/gin-gonic/gin"
)

func idDeRuta(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return 0, false
	}
	return id, true
}

func listProductosHandler(c *gin.Context) {
	productos, err := models.ListProductos(c.Request.Context(), c.Query("empresa_nit"), c.Query("search"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, productos)
}

func getProductoHandler(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	producto, err := models.GetProducto(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, producto)
}

func createProductoHandler(c *gin.Context) {
	var input models.NewProducto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	producto, err := models.CreateProducto(c.Request.Context(), &input)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, producto)
}

func updateProductoHandler(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	var input models.NewProducto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	producto, err := models.UpdateProducto(c.Request.Context(), id, &input)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, producto)
}

func deleteProductoHandler(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}
	producto, err := models.DeleteProducto(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, producto)
}
