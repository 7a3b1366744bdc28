package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"
	
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	db "github.com/jplus/jstore-api/internal/db/sqlc"
	"github.com/jplus/jstore-api/internal/digest"
	"github.com/jplus/jstore-api/internal/util"
	"github.com/jplus/jstore-api/internal/whatsapp"
	"github.com/jplus/jstore-api/internal/worker"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type adminDashboardResponse struct {
	TotalOrders   int64 `json:"total_orders"`
	CatalogOrders int64 `json:"catalog_orders"`
	CustomOrders  int64 `json:"custom_orders"`
	OrdersToday   int64 `json:"orders_today"`
	TotalProducts int64 `json:"total_products"`
}

func (server *Server) getAdminDashboard(c *gin.Context) {
	var resp adminDashboardResponse
	
	g, ctx := errgroup.WithContext(c.Request.Context())
	
	g.Go(func() error {
		total, err := server.dbStore.CountOrders(ctx)
		if err != nil {
			return fmt.Errorf("failed to count orders: %w", err)
		}
		resp.TotalOrders = total
		return nil
	})
	
	g.Go(func() error {
		catalog, err := server.dbStore.CountOrdersByType(ctx, db.OrderTypeCatalog)
		if err != nil {
			return fmt.Errorf("failed to count catalog orders: %w", err)
		}
		resp.CatalogOrders = catalog
		return nil
	})
	
	g.Go(func() error {
		custom, err := server.dbStore.CountOrdersByType(ctx, db.OrderTypeCustom)
		if err != nil {
			return fmt.Errorf("failed to count custom orders: %w", err)
		}
		resp.CustomOrders = custom
		return nil
	})
	
	g.Go(func() error {
		today, err := server.dbStore.CountOrdersCreatedSince(ctx, digest.StartOfDay(server.now()))
		if err != nil {
			return fmt.Errorf("failed to count today's orders: %w", err)
		}
		resp.OrdersToday = today
		return nil
	})
	
	g.Go(func() error {
		products, err := server.dbStore.CountProducts(ctx, "")
		if err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		resp.TotalProducts = products
		return nil
	})
	
	if err := g.Wait(); err != nil {
		log.Err(err).Msg("failed to load admin dashboard")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	c.JSON(http.StatusOK, resp)
}

type listAdminOrdersResponse struct {
	Items      []db.Order `json:"items"`
	TotalCount int64      `json:"total_count"`
	TotalPages int64      `json:"total_pages"`
	Page       int64      `json:"page"`
}

// listAdminOrders returns the full order records, newest first.
func (server *Server) listAdminOrders(c *gin.Context) {
	req := new(paginationQuery)
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	limit, offset := req.limitOffset()
	
	var resp listAdminOrdersResponse
	g, ctx := errgroup.WithContext(c.Request.Context())
	
	g.Go(func() error {
		orders, err := server.dbStore.ListOrders(ctx, db.ListOrdersParams{
			PageLimit:  limit,
			PageOffset: offset,
		})
		if err != nil {
			return fmt.Errorf("failed to list orders: %w", err)
		}
		resp.Items = orders
		return nil
	})
	
	g.Go(func() error {
		total, err := server.dbStore.CountOrders(ctx)
		if err != nil {
			return fmt.Errorf("failed to count orders: %w", err)
		}
		resp.TotalCount = total
		return nil
	})
	
	if err := g.Wait(); err != nil {
		log.Err(err).Msg("failed to list admin orders")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	if resp.Items == nil {
		resp.Items = []db.Order{}
	}
	resp.TotalPages = totalPages(resp.TotalCount, limit)
	resp.Page = req.Page
	
	c.JSON(http.StatusOK, resp)
}

type whatsAppLinkRequest struct {
	Phone string     `form:"phone"`
	Since *time.Time `form:"since" time_format:"2006-01-02T15:04:05Z07:00"`
}

type whatsAppLinkResponse struct {
	Message    string `json:"message"`
	Link       string `json:"link"`
	OrderCount int    `json:"order_count"`
}

// getWhatsAppLink builds a wa.me link carrying the orders placed since the
// given instant, defaulting to the start of today.
func (server *Server) getWhatsAppLink(c *gin.Context) {
	req := new(whatsAppLinkRequest)
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	phone := req.Phone
	if phone == "" {
		phone = server.config.SellerWhatsAppPhone
	}
	if !util.HasMinDigits(phone, 4) {
		c.JSON(http.StatusUnprocessableEntity, failedValidationError([]*FieldViolation{
			fieldViolation("phone", errors.New("must contain at least 4 digits")),
		}))
		return
	}
	
	since := digest.StartOfDay(server.now())
	if req.Since != nil {
		since = *req.Since
	}
	
	orders, err := server.dbStore.ListOrdersCreatedSince(c.Request.Context(), since)
	if err != nil {
		log.Err(err).Time("since", since).Msg("failed to list orders for whatsapp")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	message := whatsapp.OrdersMessage(orders)
	c.JSON(http.StatusOK, whatsAppLinkResponse{
		Message:    message,
		Link:       whatsapp.Link(phone, message),
		OrderCount: len(orders),
	})
}

type orderEmailStatusResponse struct {
	OrderCode     string     `json:"order_code"`
	State         string     `json:"state"`
	Retried       int        `json:"retried"`
	MaxRetry      int        `json:"max_retry"`
	LastError     string     `json:"last_error,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	NextProcessAt *time.Time `json:"next_process_at,omitempty"`
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func emailTaskNotFound(orderCode string) error {
	return fmt.Errorf("no confirmation email task for order %s", orderCode)
}

// getOrderEmailStatus reports the delivery state of the confirmation email.
// Completed tasks stay visible only while asynq retains them.
func (server *Server) getOrderEmailStatus(c *gin.Context) {
	orderCode := util.NormalizeOrderCode(c.Param("code"))
	
	info, err := server.taskInspector.GetTaskInfo(c.Request.Context(), worker.QueueCritical, worker.OrderConfirmationTaskID(orderCode))
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(emailTaskNotFound(orderCode)))
			return
		}
		
		log.Err(err).Str("order_code", orderCode).Msg("failed to inspect confirmation email task")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	c.JSON(http.StatusOK, orderEmailStatusResponse{
		OrderCode:     orderCode,
		State:         info.State.String(),
		Retried:       info.Retried,
		MaxRetry:      info.MaxRetry,
		LastError:     info.LastErr,
		CompletedAt:   timeOrNil(info.CompletedAt),
		NextProcessAt: timeOrNil(info.NextProcessAt),
	})
}

// cancelOrderEmail drops a confirmation email that has not been sent yet,
// for instance when the customer typed a wrong address.
func (server *Server) cancelOrderEmail(c *gin.Context) {
	orderCode := util.NormalizeOrderCode(c.Param("code"))
	taskID := worker.OrderConfirmationTaskID(orderCode)
	
	info, err := server.taskInspector.GetTaskInfo(c.Request.Context(), worker.QueueCritical, taskID)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(emailTaskNotFound(orderCode)))
			return
		}
		
		log.Err(err).Str("order_code", orderCode).Msg("failed to inspect confirmation email task")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	if info.State == asynq.TaskStateActive || info.State == asynq.TaskStateCompleted {
		c.JSON(http.StatusConflict, errorResponse(fmt.Errorf("confirmation email for order %s is already %s", orderCode, info.State)))
		return
	}
	
	if err = server.taskInspector.DeleteTask(c.Request.Context(), worker.QueueCritical, taskID); err != nil {
		log.Err(err).Str("order_code", orderCode).Msg("failed to delete confirmation email task")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	log.Info().Str("order_code", orderCode).Str("state", info.State.String()).Msg("confirmation email cancelled")
	c.Status(http.StatusNoContent)
}
