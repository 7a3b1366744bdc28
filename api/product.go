package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	db "github.com/jplus/jstore-api/internal/db/sqlc"
	"github.com/jplus/jstore-api/internal/imageproxy"
	"github.com/jplus/jstore-api/internal/sizing"
	"github.com/jplus/jstore-api/internal/storage"
	"github.com/jplus/jstore-api/internal/util"
	"github.com/jplus/jstore-api/internal/validator"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const searchModeFullText = "fulltext"

type productResponse struct {
	db.Product
	Sizes           []string `json:"sizes"`
	CleanedTitle    string   `json:"cleaned_title"`
	DefaultSize     string   `json:"default_size"`
	ProxiedImageURL *string  `json:"proxied_image_url"`
}

func newProductResponse(product db.Product) productResponse {
	result := sizing.ExtractSizes(product.Name)
	
	return productResponse{
		Product:         product,
		Sizes:           result.Sizes,
		CleanedTitle:    result.CleanedTitle,
		DefaultSize:     result.Sizes[0],
		ProxiedImageURL: proxiedImageURL(product.ImageURL),
	}
}

type listProductsRequest struct {
	paginationQuery
	Query string `form:"q"`
	Mode  string `form:"mode" binding:"omitempty,oneof=substring fulltext"`
}

type listProductsResponse struct {
	Items      []productResponse `json:"items"`
	TotalCount int64             `json:"total_count"`
	TotalPages int64             `json:"total_pages"`
	Page       int64             `json:"page"`
}

func (server *Server) listProducts(c *gin.Context) {
	req := new(listProductsRequest)
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	limit, offset := req.limitOffset()
	query := strings.TrimSpace(req.Query)
	fullText := req.Mode == searchModeFullText && query != ""
	
	var products []db.Product
	var totalCount int64
	
	g, ctx := errgroup.WithContext(c.Request.Context())
	
	g.Go(func() error {
		var err error
		if fullText {
			products, err = server.dbStore.SearchProducts(ctx, db.SearchProductsParams{
				SearchQuery: query,
				PageLimit:   limit,
				PageOffset:  offset,
			})
		} else {
			products, err = server.dbStore.ListProducts(ctx, db.ListProductsParams{
				NameQuery:  db.EscapeLike(query),
				PageLimit:  limit,
				PageOffset: offset,
			})
		}
		if err != nil {
			return fmt.Errorf("failed to list products: %w", err)
		}
		return nil
	})
	
	g.Go(func() error {
		var err error
		if fullText {
			totalCount, err = server.dbStore.CountSearchProducts(ctx, query)
		} else {
			totalCount, err = server.dbStore.CountProducts(ctx, db.EscapeLike(query))
		}
		if err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		return nil
	})
	
	if err := g.Wait(); err != nil {
		log.Err(err).Str("query", query).Msg("failed to load catalog page")
		c.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	items := make([]productResponse, len(products))
	for i, product := range products {
		items[i] = newProductResponse(product)
	}
	
	c.JSON(http.StatusOK, listProductsResponse{
		Items:      items,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, limit),
		Page:       req.Page,
	})
}

func parseProductID(ctx *gin.Context) (int64, bool) {
	productID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid product ID %q", ctx.Param("id"))))
		return 0, false
	}
	
	return productID, true
}

func (server *Server) getProduct(ctx *gin.Context) {
	productID, ok := parseProductID(ctx)
	if !ok {
		return
	}
	
	product, err := server.dbStore.GetProductByID(ctx.Request.Context(), productID)
	if err != nil {
		server.respondProductLookupError(ctx, err)
		return
	}
	
	ctx.JSON(http.StatusOK, newProductResponse(product))
}

func (server *Server) getProductBySlug(ctx *gin.Context) {
	product, err := server.dbStore.GetProductBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		server.respondProductLookupError(ctx, err)
		return
	}
	
	ctx.JSON(http.StatusOK, newProductResponse(product))
}

func (server *Server) respondProductLookupError(ctx *gin.Context, err error) {
	if errors.Is(err, db.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, errorResponse(ErrProductNotFound))
		return
	}
	
	log.Err(err).Msg("failed to get product")
	ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
}

type createProductRequest struct {
	Name     string                `form:"name" binding:"required"`
	ImageURL string                `form:"image_url"`
	Image    *multipart.FileHeader `form:"image"`
}

func validateCreateProductRequest(req *createProductRequest) (violations []*FieldViolation) {
	if err := validator.ValidateString(strings.TrimSpace(req.Name), 2, 200); err != nil {
		violations = append(violations, fieldViolation("name", err))
	}
	
	if req.Image == nil && req.ImageURL != "" {
		if err := imageproxy.ValidateURL(req.ImageURL); err != nil {
			violations = append(violations, fieldViolation("image_url", err))
		}
	}
	
	return violations
}

func (server *Server) createProduct(ctx *gin.Context) {
	req := new(createProductRequest)
	if err := ctx.ShouldBindWith(req, binding.FormMultipart); err != nil {
		log.Error().Err(err).Msg("failed to bind request")
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	if violations := validateCreateProductRequest(req); violations != nil {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}
	
	name := strings.TrimSpace(req.Name)
	slug := util.GenerateRandomSlug(sizing.CleanTitle(name))
	
	var imageURL *string
	switch {
	case req.Image != nil:
		uploadedURL, err := server.uploadImage(req.Image, slug, storage.ProductFolder)
		if err != nil {
			log.Err(err).Str("slug", slug).Msg("failed to upload product image")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
			return
		}
		imageURL = &uploadedURL
	case req.ImageURL != "":
		imageURL = util.StringPointer(req.ImageURL)
	}
	
	product, err := server.dbStore.CreateProduct(ctx.Request.Context(), db.CreateProductParams{
		Name:     name,
		Slug:     slug,
		ImageURL: imageURL,
	})
	if err != nil {
		if errCode, constraint := db.ErrorDescription(err); errCode == db.UniqueViolationCode && constraint == db.UniqueProductSlugConstraint {
			ctx.JSON(http.StatusConflict, errorResponse(fmt.Errorf("product slug %s already exists", slug)))
			return
		}
		
		log.Err(err).Msg("failed to create product")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	log.Info().Int64("product_id", product.ID).Str("slug", product.Slug).Msg("product created")
	ctx.JSON(http.StatusCreated, newProductResponse(product))
}

func (server *Server) deleteProduct(ctx *gin.Context) {
	productID, ok := parseProductID(ctx)
	if !ok {
		return
	}
	
	product, err := server.dbStore.GetProductByID(ctx.Request.Context(), productID)
	if err != nil {
		server.respondProductLookupError(ctx, err)
		return
	}
	
	rows, err := server.dbStore.DeleteProduct(ctx.Request.Context(), productID)
	if err != nil {
		log.Err(err).Int64("product_id", productID).Msg("failed to delete product")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	
	if rows == 0 {
		ctx.JSON(http.StatusNotFound, errorResponse(ErrProductNotFound))
		return
	}
	
	// Only images this API uploaded are removed; external urls are left alone.
	if publicID, uploaded := storage.PublicIDFromURL(util.DerefString(product.ImageURL), storage.ProductFolder); uploaded {
		if err = server.fileStore.DeleteFile(publicID, storage.ProductFolder); err != nil {
			log.Err(err).Str("public_id", publicID).Msg("failed to delete product image")
		}
	}
	
	log.Info().Int64("product_id", productID).Msg("product deleted")
	ctx.Status(http.StatusNoContent)
}
