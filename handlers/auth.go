package handlers

import (
	"net/http"

	"github.com/Juandaamez/inventario-backend/models"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username y password son requeridos"})
		return
	}

	user, token, err := models.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		responderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}
