package api

import (
	"errors"
	"net/http"
	"strings"
	
	"github.com/gin-gonic/gin"
	"github.com/jplus/jstore-api/internal/session"
	"github.com/rs/zerolog/log"
)

const (
	authorizationHeaderKey  = "Authorization"
	authorizationTypeBearer = "Bearer"
	authorizationPayloadKey = "authPayload"
)

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(ctx *gin.Context) (string, error) {
	authorizationHeader := ctx.GetHeader(authorizationHeaderKey)
	if authorizationHeader == "" {
		return "", ErrMissingToken
	}
	
	fields := strings.Fields(authorizationHeader)
	if len(fields) != 2 {
		return "", errors.New("invalid authorization header format")
	}
	
	if fields[0] != authorizationTypeBearer {
		return "", errors.New("unsupported authorization header type")
	}
	
	return fields[1], nil
}

func gateMiddleware(sessionManager session.Manager, scope session.Scope) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		accessToken, err := bearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(err))
			return
		}
		
		payload, err := sessionManager.Verify(ctx.Request.Context(), accessToken, scope)
		if err != nil {
			if errors.Is(err, session.ErrInvalidSession) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(err))
				return
			}
			
			log.Err(err).Str("scope", string(scope)).Msg("failed to verify session")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
			return
		}
		
		ctx.Set(authorizationPayloadKey, payload)
		ctx.Next()
	}
}

// siteGateMiddleware lets every request through while no site password is configured.
func siteGateMiddleware(sessionManager session.Manager) gin.HandlerFunc {
	gate := gateMiddleware(sessionManager, session.ScopeSite)
	
	return func(ctx *gin.Context) {
		if !sessionManager.Enabled(session.ScopeSite) {
			ctx.Next()
			return
		}
		
		gate(ctx)
	}
}

func adminGateMiddleware(sessionManager session.Manager) gin.HandlerFunc {
	return gateMiddleware(sessionManager, session.ScopeAdmin)
}
