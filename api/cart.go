package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	
	"github.com/gin-gonic/gin"
	"github.com/jplus/jstore-api/internal/cart"
	"github.com/jplus/jstore-api/internal/pricing"
	"github.com/jplus/jstore-api/internal/sizing"
	"github.com/jplus/jstore-api/internal/util"
	"github.com/jplus/jstore-api/internal/validator"
	"github.com/rs/zerolog/log"
)

type cartLineResponse struct {
	cart.Line
	Sizes          []string `json:"sizes"`
	EstimatedPrice string   `json:"estimated_price"`
}

type cartResponse struct {
	ID             string             `json:"id"`
	Items          []cartLineResponse `json:"items"`
	TotalItems     int                `json:"total_items"`
	EstimatedTotal string             `json:"estimated_total"`
}

func newCartResponse(c *cart.Cart) cartResponse {
	resp := cartResponse{
		ID:         c.ID,
		Items:      make([]cartLineResponse, len(c.Items)),
		TotalItems: c.TotalItems(),
	}
	
	var total int64
	for i, line := range c.Items {
		price := pricing.LinePriceCents(line.ProductName, line.Print, line.Quantity)
		total += price
		
		resp.Items[i] = cartLineResponse{
			Line:           line,
			Sizes:          sizing.AvailableSizes(line.ProductName),
			EstimatedPrice: util.FormatEUR(price),
		}
	}
	resp.EstimatedTotal = util.FormatEUR(total)
	
	return resp
}

// loadCart fetches the cart named in the path and fixes stale sizes. It
// writes the error response itself and reports whether the handler may go on.
func (server *Server) loadCart(ctx *gin.Context) (*cart.Cart, bool) {
	cartID := ctx.Param("cartID")
	
	c, err := server.cartStore.Get(ctx.Request.Context(), cartID)
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(ErrCartNotFound))
			return nil, false
		}
		
		log.Err(err).Str("cart_id", cartID).Msg("failed to get cart")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return nil, false
	}
	
	if c.CorrectSizes() {
		if err = server.cartStore.Save(ctx.Request.Context(), c); err != nil {
			log.Err(err).Str("cart_id", cartID).Msg("failed to save corrected cart sizes")
		}
	}
	
	return c, true
}

func (server *Server) saveCart(ctx *gin.Context, c *cart.Cart) {
	if err := server.cartStore.Save(ctx.Request.Context(), c); err != nil {
		log.Err(err).Str("cart_id", c.ID).Msg("failed to save cart")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	ctx.JSON(http.StatusOK, newCartResponse(c))
}

func (server *Server) createCart(ctx *gin.Context) {
	c, err := server.cartStore.Create(ctx.Request.Context())
	if err != nil {
		log.Err(err).Msg("failed to create cart")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	ctx.JSON(http.StatusCreated, newCartResponse(c))
}

func (server *Server) getCart(ctx *gin.Context) {
	c, ok := server.loadCart(ctx)
	if !ok {
		return
	}
	
	ctx.JSON(http.StatusOK, newCartResponse(c))
}

func (server *Server) clearCart(ctx *gin.Context) {
	cartID := ctx.Param("cartID")
	
	if err := server.cartStore.Delete(ctx.Request.Context(), cartID); err != nil {
		log.Err(err).Str("cart_id", cartID).Msg("failed to delete cart")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	ctx.Status(http.StatusNoContent)
}

type addCartItemRequest struct {
	ProductID   int64  `json:"product_id" binding:"required,min=1"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity" binding:"omitempty,min=1,max=99"`
	Print       bool   `json:"print"`
	PrintName   string `json:"print_name"`
	PrintNumber string `json:"print_number"`
}

func validatePrint(printName, printNumber string) (violations []*FieldViolation) {
	if err := validator.ValidatePrintName(printName); err != nil {
		violations = append(violations, fieldViolation("print_name", err))
	}
	
	if err := validator.ValidatePrintNumber(printNumber); err != nil {
		violations = append(violations, fieldViolation("print_number", err))
	}
	
	return violations
}

func validateSize(title, size string) *FieldViolation {
	if size == "" {
		return nil
	}
	
	if sizes := sizing.AvailableSizes(title); !sizing.Contains(sizes, size) {
		return fieldViolation("size", fmt.Errorf("must be one of %v", sizes))
	}
	
	return nil
}

func (server *Server) addCartItem(ctx *gin.Context) {
	req := new(addCartItemRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	c, ok := server.loadCart(ctx)
	if !ok {
		return
	}
	
	product, err := server.dbStore.GetProductByID(ctx.Request.Context(), req.ProductID)
	if err != nil {
		server.respondProductLookupError(ctx, err)
		return
	}
	
	violations := validatePrint(req.PrintName, req.PrintNumber)
	if violation := validateSize(product.Name, req.Size); violation != nil {
		violations = append(violations, violation)
	}
	if violations != nil {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}
	
	c.Add(cart.Line{
		ProductID:   strconv.FormatInt(product.ID, 10),
		ProductName: product.Name,
		Size:        req.Size,
		Quantity:    req.Quantity,
		Print:       req.Print,
		PrintName:   req.PrintName,
		PrintNumber: req.PrintNumber,
	})
	
	server.saveCart(ctx, c)
}

// lineIndex parses the :index path parameter.
func lineIndex(ctx *gin.Context) (int, bool) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid line index %q", ctx.Param("index"))))
		return 0, false
	}
	
	return index, true
}

func (server *Server) updateCartItem(ctx *gin.Context) {
	index, ok := lineIndex(ctx)
	if !ok {
		return
	}
	
	changes := new(cart.LineChanges)
	if err := ctx.ShouldBindJSON(changes); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	c, ok := server.loadCart(ctx)
	if !ok {
		return
	}
	
	if index < 0 || index >= len(c.Items) {
		ctx.JSON(http.StatusNotFound, errorResponse(ErrCartLineNotFound))
		return
	}
	
	var violations []*FieldViolation
	if changes.Size != nil {
		if violation := validateSize(c.Items[index].ProductName, *changes.Size); violation != nil {
			violations = append(violations, violation)
		}
	}
	if changes.Quantity != nil && (*changes.Quantity < 1 || *changes.Quantity > 99) {
		violations = append(violations, fieldViolation("quantity", errors.New("must be between 1 and 99")))
	}
	violations = append(violations, validatePrint(util.DerefString(changes.PrintName), util.DerefString(changes.PrintNumber))...)
	if len(violations) > 0 {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}
	
	if err := c.Update(index, *changes); err != nil {
		ctx.JSON(http.StatusNotFound, errorResponse(ErrCartLineNotFound))
		return
	}
	
	server.saveCart(ctx, c)
}

func (server *Server) removeCartItem(ctx *gin.Context) {
	index, ok := lineIndex(ctx)
	if !ok {
		return
	}
	
	c, ok := server.loadCart(ctx)
	if !ok {
		return
	}
	
	if err := c.Remove(index); err != nil {
		ctx.JSON(http.StatusNotFound, errorResponse(ErrCartLineNotFound))
		return
	}
	
	server.saveCart(ctx, c)
}
