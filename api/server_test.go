package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	
	"github.com/stretchr/testify/require"
)

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t, newFakeStore(), "")
	
	request := httptest.NewRequest(http.MethodOptions, "/v1/orders", nil)
	request.Header.Set("Origin", "http://localhost:3000")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()
	env.server.router.ServeHTTP(recorder, request)
	
	require.Equal(t, http.StatusNoContent, recorder.Code)
	require.Equal(t, "http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))
	
	request = httptest.NewRequest(http.MethodOptions, "/v1/orders", nil)
	request.Header.Set("Origin", "https://evil.example")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder = httptest.NewRecorder()
	env.server.router.ServeHTTP(recorder, request)
	
	require.Equal(t, http.StatusForbidden, recorder.Code)
	require.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}
