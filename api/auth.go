package api

import (
	"errors"
	"net/http"
	
	"github.com/gin-gonic/gin"
	"github.com/jplus/jstore-api/internal/session"
	"github.com/rs/zerolog/log"
)

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type gateStatusResponse struct {
	GateEnabled bool `json:"gate_enabled"`
}

func (server *Server) getSiteGateStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gateStatusResponse{
		GateEnabled: server.sessionManager.Enabled(session.ScopeSite),
	})
}

func (server *Server) loginSite(ctx *gin.Context) {
	if !server.sessionManager.Enabled(session.ScopeSite) {
		ctx.JSON(http.StatusOK, gateStatusResponse{GateEnabled: false})
		return
	}
	
	server.login(ctx, session.ScopeSite)
}

func (server *Server) loginAdmin(ctx *gin.Context) {
	server.login(ctx, session.ScopeAdmin)
}

func (server *Server) login(ctx *gin.Context, scope session.Scope) {
	req := new(loginRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	accessToken, err := server.sessionManager.Login(ctx.Request.Context(), scope, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrWrongPassword), errors.Is(err, session.ErrGateDisabled):
			ctx.JSON(http.StatusUnauthorized, errorResponse(session.ErrWrongPassword))
		default:
			log.Err(err).Str("scope", string(scope)).Msg("failed to log in")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		}
		return
	}
	
	log.Info().Str("scope", string(scope)).Msg("session opened")
	ctx.JSON(http.StatusOK, loginResponse{AccessToken: accessToken})
}

func (server *Server) logout(ctx *gin.Context) {
	accessToken, err := bearerToken(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, errorResponse(err))
		return
	}
	
	if err = server.sessionManager.Logout(ctx.Request.Context(), accessToken); err != nil {
		if errors.Is(err, session.ErrInvalidSession) {
			ctx.JSON(http.StatusUnauthorized, errorResponse(err))
			return
		}
		
		log.Err(err).Msg("failed to log out")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	ctx.Status(http.StatusNoContent)
}

func (server *Server) healthCheck(ctx *gin.Context) {
	if err := server.dbStore.Ping(ctx.Request.Context()); err != nil {
		log.Err(err).Msg("database ping failed")
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
