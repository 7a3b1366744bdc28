package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	
	"github.com/gin-gonic/gin"
	"github.com/jplus/jstore-api/internal/event"
	"github.com/stretchr/testify/require"
)

func TestOrderCreatedIsBroadcast(t *testing.T) {
	env := newTestEnv(t, newFakeStore("Benfica Home Jersey"), "")
	client := env.events.Register(event.TopicOrders)
	defer env.events.Unregister(event.TopicOrders, client)
	
	orders := placeTestOrders(t, env, 1)
	
	got := <-client
	require.Equal(t, event.EventTypeOrderCreated, got.Type)
	created := got.Data.(event.OrderCreated)
	require.Equal(t, orders[0].OrderCode, created.OrderCode)
	require.Equal(t, "Benfica Home Jersey (M) x1", created.Summary)
}

func TestStreamOrderEvents(t *testing.T) {
	env := newTestEnv(t, newFakeStore("Benfica Home Jersey"), "")
	accessToken := env.login(t, "/v1/admin/login", testAdminPassword)
	
	httpServer := httptest.NewServer(env.server.router)
	defer httpServer.Close()
	
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, httpServer.URL+"/v1/admin/orders/stream", nil)
	require.NoError(t, err)
	request.Header.Set(authorizationHeaderKey, authorizationTypeBearer+" "+accessToken)
	
	response, err := httpServer.Client().Do(request)
	require.NoError(t, err)
	defer response.Body.Close()
	require.Equal(t, http.StatusOK, response.StatusCode)
	require.Equal(t, "text/event-stream", response.Header.Get("Content-Type"))
	
	body := validCustomer()
	body["items"] = []gin.H{{"product_id": "1", "product_name": "Benfica Home Jersey", "size": "L", "quantity": 2}}
	recorder := env.do(t, http.MethodPost, "/v1/orders", body, "")
	require.Equal(t, http.StatusCreated, recorder.Code)
	
	reader := bufio.NewReader(response.Body)
	eventLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "event: order_created\n", eventLine)
	
	dataLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(dataLine, "data: "))
	
	var created event.OrderCreated
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(dataLine, "data: ")), &created))
	require.Equal(t, 2, created.TotalItems)
	require.Equal(t, "catalog", created.Type)
}
