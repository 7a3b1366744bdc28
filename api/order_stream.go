package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	
	"github.com/gin-gonic/gin"
	db "github.com/jplus/jstore-api/internal/db/sqlc"
	"github.com/jplus/jstore-api/internal/event"
	"github.com/rs/zerolog/log"
)

// streamOrderEvents keeps an SSE connection open and pushes every new order
// to the admin panel.
func (server *Server) streamOrderEvents(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Status(http.StatusOK)
	
	clientChan := server.eventSender.Register(event.TopicOrders)
	defer server.eventSender.Unregister(event.TopicOrders, clientChan)
	c.Writer.Flush()
	
	for {
		select {
		case e, ok := <-clientChan:
			if !ok {
				return
			}
			
			data, err := json.Marshal(e.Data)
			if err != nil {
				log.Err(err).Str("type", e.Type).Msg("failed to encode event")
				continue
			}
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", e.Type, data)
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (server *Server) broadcastOrderCreated(order db.Order) {
	server.eventSender.Broadcast(event.Event{
		Topic: event.TopicOrders,
		Type:  event.EventTypeOrderCreated,
		Data: event.OrderCreated{
			OrderCode:    order.OrderCode,
			Type:         string(order.Type),
			CustomerName: order.CustomerName,
			TotalItems:   order.TotalQuantity(),
			Summary:      order.Summary(),
			CreatedAt:    order.CreatedAt,
		},
	})
}
