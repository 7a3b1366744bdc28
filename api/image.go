package api

import (
	"errors"
	"net/http"
	
	"github.com/gin-gonic/gin"
	"github.com/jplus/jstore-api/internal/imageproxy"
	"github.com/rs/zerolog/log"
)

const imageCacheControl = "public, max-age=86400, immutable"

func (server *Server) proxyImage(ctx *gin.Context) {
	rawURL := ctx.Query("url")
	if rawURL == "" {
		ctx.String(http.StatusBadRequest, "Missing url")
		return
	}
	
	img, err := server.imageFetcher.Fetch(ctx.Request.Context(), rawURL)
	if err != nil {
		var upstreamErr *imageproxy.UpstreamError
		switch {
		case errors.Is(err, imageproxy.ErrInvalidURL):
			ctx.String(http.StatusBadRequest, "Invalid url")
		case errors.As(err, &upstreamErr):
			ctx.String(http.StatusBadGateway, upstreamErr.Error())
		default:
			log.Err(err).Str("url", rawURL).Msg("image proxy failed")
			ctx.String(http.StatusInternalServerError, "Proxy error")
		}
		return
	}
	
	ctx.Header("Cache-Control", imageCacheControl)
	ctx.Data(http.StatusOK, img.ContentType, img.Data)
}
