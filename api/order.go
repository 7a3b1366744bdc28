package api

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
	
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jplus/jstore-api/internal/cart"
	db "github.com/jplus/jstore-api/internal/db/sqlc"
	"github.com/jplus/jstore-api/internal/mailer"
	"github.com/jplus/jstore-api/internal/notification"
	"github.com/jplus/jstore-api/internal/storage"
	"github.com/jplus/jstore-api/internal/util"
	"github.com/jplus/jstore-api/internal/validator"
	"github.com/jplus/jstore-api/internal/worker"
	"github.com/rs/zerolog/log"
)

const (
	maxCustomOrderImages = 5
	maxLineQuantity      = 99
	orderStatusReceived  = "received"
	
	confirmationRetention = 7 * 24 * time.Hour
)

type customerFields struct {
	CustomerName  string `json:"customer_name" form:"customer_name"`
	CustomerEmail string `json:"customer_email" form:"customer_email"`
	CustomerPhone string `json:"customer_phone" form:"customer_phone"`
}

func (f *customerFields) trim() {
	f.CustomerName = strings.TrimSpace(f.CustomerName)
	f.CustomerEmail = strings.TrimSpace(f.CustomerEmail)
	f.CustomerPhone = strings.TrimSpace(f.CustomerPhone)
}

func (f *customerFields) validate() (violations []*FieldViolation) {
	if err := validator.ValidateCustomerName(f.CustomerName); err != nil {
		violations = append(violations, fieldViolation("customer_name", err))
	}
	
	if err := validator.ValidateEmail(f.CustomerEmail); err != nil {
		violations = append(violations, fieldViolation("customer_email", err))
	}
	
	if err := validator.ValidatePhone(f.CustomerPhone); err != nil {
		violations = append(violations, fieldViolation("customer_phone", err))
	}
	
	return violations
}

type orderItemRequest struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity"`
	Print       bool   `json:"print"`
	PrintName   string `json:"print_name"`
	PrintNumber string `json:"print_number"`
}

type createOrderRequest struct {
	customerFields
	CartID string             `json:"cart_id"`
	Items  []orderItemRequest `json:"items"`
}

type createOrderResponse struct {
	Order     db.Order `json:"order"`
	OrderCode string   `json:"order_code"`
}

// orderItems normalises lines through a cart so duplicates merge and stale
// sizes are corrected exactly as they are when the cart is displayed.
func orderItems(lines []cart.Line) []db.OrderItem {
	c := cart.New("")
	for _, line := range lines {
		c.Add(line)
	}
	c.CorrectSizes()
	
	items := make([]db.OrderItem, len(c.Items))
	for i, line := range c.Items {
		items[i] = db.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Size:        line.Size,
			Quantity:    line.Quantity,
			Print:       line.Print,
			PrintName:   line.PrintName,
			PrintNumber: line.PrintNumber,
		}
	}
	
	return items
}

// validateOrderLine applies the checks addCartItem applies to a new cart line.
func validateOrderLine(field string, line cart.Line) (violations []*FieldViolation) {
	if _, err := strconv.ParseInt(line.ProductID, 10, 64); err != nil {
		violations = append(violations, fieldViolation(field+".product_id", errors.New("must be a catalog product id")))
	}
	
	if line.Quantity < 0 || line.Quantity > maxLineQuantity {
		violations = append(violations, fieldViolation(field+".quantity", fmt.Errorf("must be between 1 and %d", maxLineQuantity)))
	}
	
	for _, violation := range validatePrint(line.PrintName, line.PrintNumber) {
		violation.Field = field + "." + violation.Field
		violations = append(violations, violation)
	}
	
	return violations
}

// resolveCatalogNames replaces every line's product name with its catalog
// title. Lines naming a product outside the catalog yield ErrUnknownProduct.
func (server *Server) resolveCatalogNames(ctx context.Context, lines []cart.Line) error {
	ids := make([]int64, 0, len(lines))
	for i := range lines {
		id, err := strconv.ParseInt(lines[i].ProductID, 10, 64)
		if err != nil {
			return db.ErrUnknownProduct
		}
		lines[i].ProductID = strconv.FormatInt(id, 10)
		ids = append(ids, id)
	}
	
	products, err := server.dbStore.ListProductsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	
	names := make(map[string]string, len(products))
	for _, product := range products {
		names[strconv.FormatInt(product.ID, 10)] = product.Name
	}
	
	for i := range lines {
		name, ok := names[lines[i].ProductID]
		if !ok {
			return db.ErrUnknownProduct
		}
		lines[i].ProductName = name
	}
	
	return nil
}

func (server *Server) createOrder(ctx *gin.Context) {
	req := new(createOrderRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	req.trim()
	
	var lines []cart.Line
	if req.CartID != "" {
		c, err := server.cartStore.Get(ctx.Request.Context(), req.CartID)
		if err != nil {
			if errors.Is(err, cart.ErrCartNotFound) {
				ctx.JSON(http.StatusNotFound, errorResponse(ErrCartNotFound))
				return
			}
			
			log.Err(err).Str("cart_id", req.CartID).Msg("failed to get cart")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
			return
		}
		lines = c.Items
	} else {
		for _, item := range req.Items {
			lines = append(lines, cart.Line(item))
		}
	}
	
	violations := req.validate()
	if len(lines) == 0 {
		violations = append(violations, fieldViolation("items", errors.New("must contain at least one item")))
	}
	for i, line := range lines {
		violations = append(violations, validateOrderLine(fmt.Sprintf("items[%d]", i), line)...)
	}
	if violations != nil {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}
	
	if err := server.resolveCatalogNames(ctx.Request.Context(), lines); err != nil {
		if errors.Is(err, db.ErrUnknownProduct) {
			ctx.JSON(http.StatusUnprocessableEntity, failedValidationError([]*FieldViolation{fieldViolation("items", err)}))
			return
		}
		
		log.Err(err).Msg("failed to resolve order products")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	items := orderItems(lines)
	productIDs := make([]string, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}
	
	orderCode := util.GenerateOrderCode(util.OrderTypeCatalog, req.CustomerPhone, productIDs, server.now().UnixMilli())
	
	order, err := server.dbStore.CreateCatalogOrderTx(ctx.Request.Context(), db.CreateCatalogOrderTxParams{
		OrderCode:     orderCode,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Items:         items,
	})
	if err != nil {
		server.respondCreateOrderError(ctx, orderCode, err)
		return
	}
	
	log.Info().Str("order_code", order.OrderCode).Int("items", order.TotalQuantity()).Msg("catalog order created")
	
	if req.CartID != "" {
		if err = server.cartStore.Delete(ctx.Request.Context(), req.CartID); err != nil {
			log.Err(err).Str("cart_id", req.CartID).Msg("failed to clear cart after checkout")
		}
	}
	
	server.distributeOrderTasks(ctx.Request.Context(), order, mailer.OrderConfirmation{
		Email:        order.CustomerEmail,
		CustomerName: order.CustomerName,
		OrderCode:    order.OrderCode,
		Items:        order.Items,
	})
	
	ctx.JSON(http.StatusCreated, createOrderResponse{Order: order, OrderCode: order.OrderCode})
}

func (server *Server) respondCreateOrderError(ctx *gin.Context, orderCode string, err error) {
	if errors.Is(err, db.ErrUnknownProduct) {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError([]*FieldViolation{fieldViolation("items", err)}))
		return
	}
	
	if errCode, constraint := db.ErrorDescription(err); errCode == db.UniqueViolationCode && constraint == db.UniqueOrderCodeConstraint {
		log.Warn().Str("order_code", orderCode).Msg("order code collision")
		ctx.JSON(http.StatusConflict, errorResponse(ErrOrderCodeTaken))
		return
	}
	
	log.Err(err).Str("order_code", orderCode).Msg("failed to create order")
	ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
}

// distributeOrderTasks queues the customer email and the staff notification
// and announces the order on the admin feed. The order is already stored, so
// failures here are only logged.
func (server *Server) distributeOrderTasks(ctx context.Context, order db.Order, confirmation mailer.OrderConfirmation) {
	server.broadcastOrderCreated(order)
	
	err := server.taskDistributor.DistributeTaskSendOrderConfirmation(ctx,
		&worker.PayloadSendOrderConfirmation{Confirmation: confirmation},
		asynq.MaxRetry(3),
		asynq.Queue(worker.QueueCritical),
		asynq.TaskID(worker.OrderConfirmationTaskID(order.OrderCode)),
		asynq.Retention(confirmationRetention),
	)
	if err != nil {
		log.Err(err).Str("order_code", order.OrderCode).Msg("failed to distribute order confirmation task")
	}
	
	err = server.taskDistributor.DistributeTaskNotifyStaff(ctx,
		&worker.PayloadNotifyStaff{
			OrderCode: order.OrderCode,
			Message:   notification.NewOrderMessage(order),
		},
		asynq.MaxRetry(5),
		asynq.Queue(worker.QueueDefault),
	)
	if err != nil {
		log.Err(err).Str("order_code", order.OrderCode).Msg("failed to distribute staff notification task")
	}
}

type createCustomOrderRequest struct {
	customerFields
	Request string                  `form:"request"`
	Images  []*multipart.FileHeader `form:"images"`
}

func (req *createCustomOrderRequest) validate() (violations []*FieldViolation) {
	violations = req.customerFields.validate()
	
	if err := validator.ValidateCustomRequest(req.Request); err != nil {
		violations = append(violations, fieldViolation("request", err))
	}
	
	if len(req.Images) > maxCustomOrderImages {
		violations = append(violations, fieldViolation("images", fmt.Errorf("at most %d images are allowed", maxCustomOrderImages)))
	}
	
	return violations
}

func (server *Server) createCustomOrder(ctx *gin.Context) {
	req := new(createCustomOrderRequest)
	if err := ctx.ShouldBindWith(req, binding.FormMultipart); err != nil {
		log.Error().Err(err).Msg("failed to bind request")
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	req.trim()
	req.Request = strings.TrimSpace(req.Request)
	
	if violations := req.validate(); violations != nil {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}
	
	orderCode := util.GenerateOrderCode(util.OrderTypeCustom, req.CustomerPhone, nil, server.now().UnixMilli())
	
	orderID, err := uuid.NewV7()
	if err != nil {
		log.Err(err).Msg("failed to generate order id")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	imageURLs := make([]string, 0, len(req.Images))
	for i, image := range req.Images {
		uploadedURL, err := server.uploadImage(image, fmt.Sprintf("%s_%d", orderCode, i+1), storage.CustomOrdersFolder)
		if err != nil {
			log.Err(err).Str("order_code", orderCode).Str("file", image.Filename).Msg("custom order image skipped")
			continue
		}
		imageURLs = append(imageURLs, uploadedURL)
	}
	
	order, err := server.dbStore.CreateOrder(ctx.Request.Context(), db.CreateOrderParams{
		ID:            orderID,
		OrderCode:     orderCode,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Type:          db.OrderTypeCustom,
		Items:         []db.OrderItem{},
		Notes:         util.StringPointer(util.CustomOrderNotes(req.Request, imageURLs)),
		ImageURLs:     imageURLs,
	})
	if err != nil {
		server.respondCreateOrderError(ctx, orderCode, err)
		return
	}
	
	log.Info().Str("order_code", order.OrderCode).Int("images", len(imageURLs)).Msg("custom order created")
	
	server.distributeOrderTasks(ctx.Request.Context(), order, mailer.OrderConfirmation{
		Email:        order.CustomerEmail,
		CustomerName: order.CustomerName,
		OrderCode:    order.OrderCode,
		Request:      req.Request,
	})
	
	ctx.JSON(http.StatusCreated, createOrderResponse{Order: order, OrderCode: order.OrderCode})
}

type trackOrderResponse struct {
	OrderCode    string         `json:"order_code"`
	CustomerName string         `json:"customer_name"`
	Type         db.OrderType   `json:"type"`
	Items        []db.OrderItem `json:"items"`
	Notes        *string        `json:"notes"`
	ImageURLs    []string       `json:"image_urls"`
	Status       string         `json:"status"`
	TotalItems   int            `json:"total_items"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (server *Server) trackOrder(ctx *gin.Context) {
	orderCode := util.NormalizeOrderCode(ctx.Param("code"))
	
	order, err := server.dbStore.GetOrderByCode(ctx.Request.Context(), orderCode)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(ErrOrderNotFound))
			return
		}
		
		log.Err(err).Str("order_code", orderCode).Msg("failed to get order")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	ctx.JSON(http.StatusOK, trackOrderResponse{
		OrderCode:    order.OrderCode,
		CustomerName: order.CustomerName,
		Type:         order.Type,
		Items:        order.Items,
		Notes:        order.Notes,
		ImageURLs:    order.ImageURLs,
		Status:       orderStatusReceived,
		TotalItems:   order.TotalQuantity(),
		CreatedAt:    order.CreatedAt,
	})
}
