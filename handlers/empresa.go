package handlers

import (
	"net/http"

	"github.com/Juandaamez/inventario-backend/models"
	"github.com/gin-gonic/gin"
)

func listEmpresasHandler(c *gin.Context) {
	empresas, err := models.ListEmpresas(c.Request.Context(), c.Query("search"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, empresas)
}

func getEmpresaHandler(c *gin.Context) {
	empresa, err := models.GetEmpresa(c.Request.Context(), c.Param("nit"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, empresa)
}

func createEmpresaHandler(c *gin.Context) {
	var input models.NewEmpresa
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	empresa, err := models.CreateEmpresa(c.Request.Context(), &input)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, empresa)
}

func updateEmpresaHandler(c *gin.Context) {
	var input models.NewEmpresa
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	empresa, err := models.UpdateEmpresa(c.Request.Context(), c.Param("nit"), &input)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, empresa)
}

func deleteEmpresaHandler(c *gin.Context) {
	empresa, err := models.DeleteEmpresa(c.Request.Context(), c.Param("nit"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, empresa)
}
