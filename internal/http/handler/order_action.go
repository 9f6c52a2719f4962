package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/The0mikkel/byceps/internal/model"
)

// ListActionSchemas returns the JSON schema of every order action procedure's
// parameters.
func ListActionSchemas(c *gin.Context) {
	c.JSON(http.StatusOK, model.ActionParametersSchemas())
}
