package api

import (
	"net/http"
	
	"github.com/gin-gonic/gin"
	"github.com/jplus/jstore-api/internal/pricing"
)

func (server *Server) getPricing(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, pricing.List())
}
