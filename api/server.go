package api

import (
	"time"
	
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jplus/jstore-api/internal/cart"
	db "github.com/jplus/jstore-api/internal/db/sqlc"
	"github.com/jplus/jstore-api/internal/event"
	"github.com/jplus/jstore-api/internal/imageproxy"
	"github.com/jplus/jstore-api/internal/session"
	"github.com/jplus/jstore-api/internal/storage"
	"github.com/jplus/jstore-api/internal/util"
	"github.com/jplus/jstore-api/internal/worker"
)

type Server struct {
	router          *gin.Engine
	config          util.Config
	dbStore         db.Store
	cartStore       cart.Store
	fileStore       storage.FileStore
	sessionManager  session.Manager
	taskDistributor worker.TaskDistributor
	taskInspector   worker.TaskInspector
	imageFetcher    imageproxy.Fetcher
	eventSender     event.EventSender
	now             func() time.Time
}

// NewServer creates a new HTTP server and set up routing.
func NewServer(
	config util.Config,
	store db.Store,
	cartStore cart.Store,
	fileStore storage.FileStore,
	sessionManager session.Manager,
	taskDistributor worker.TaskDistributor,
	taskInspector worker.TaskInspector,
	imageFetcher imageproxy.Fetcher,
	eventSender event.EventSender,
) *Server {
	server := &Server{
		config:          config,
		dbStore:         store,
		cartStore:       cartStore,
		fileStore:       fileStore,
		sessionManager:  sessionManager,
		taskDistributor: taskDistributor,
		taskInspector:   taskInspector,
		imageFetcher:    imageFetcher,
		eventSender:     eventSender,
		now:             time.Now,
	}
	
	server.setupRouter()
	return server
}

// setupRouter configures the HTTP server routes.
func (server *Server) setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     server.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	
	router.GET("/healthz", server.healthCheck)
	
	v1 := router.Group("/v1")
	
	v1.GET("/site/status", server.getSiteGateStatus)
	v1.POST("/site/login", server.loginSite)
	v1.POST("/site/logout", server.logout)
	v1.POST("/admin/login", server.loginAdmin)
	v1.POST("/admin/logout", server.logout)
	
	// Loaded by <img> tags, which cannot carry the site token.
	v1.GET("/img", server.proxyImage)
	
	storefront := v1.Group("", siteGateMiddleware(server.sessionManager))
	{
		storefront.GET("/pricing", server.getPricing)
		
		productGroup := storefront.Group("/products")
		{
			productGroup.GET("", server.listProducts)
			productGroup.GET(":id", server.getProduct)
			productGroup.GET("by-slug/:slug", server.getProductBySlug)
		}
		
		cartGroup := storefront.Group("/carts")
		{
			cartGroup.POST("", server.createCart)
			cartGroup.GET(":cartID", server.getCart)
			cartGroup.DELETE(":cartID", server.clearCart)
			cartGroup.POST(":cartID/items", server.addCartItem)
			cartGroup.PATCH(":cartID/items/:index", server.updateCartItem)
			cartGroup.DELETE(":cartID/items/:index", server.removeCartItem)
		}
		
		orderGroup := storefront.Group("/orders")
		{
			orderGroup.POST("", server.createOrder)
			orderGroup.POST("custom", server.createCustomOrder)
			orderGroup.GET("track/:code", server.trackOrder)
		}
	}
	
	adminGroup := v1.Group("/admin", adminGateMiddleware(server.sessionManager))
	{
		adminGroup.GET("dashboard", server.getAdminDashboard)
		
		adminGroup.POST("products", server.createProduct)
		adminGroup.DELETE("products/:id", server.deleteProduct)
		
		adminGroup.GET("orders", server.listAdminOrders)
		adminGroup.GET("orders/whatsapp", server.getWhatsAppLink)
		adminGroup.GET("orders/stream", server.streamOrderEvents)
		adminGroup.GET("orders/:code/email-status", server.getOrderEmailStatus)
		adminGroup.DELETE("orders/:code/email", server.cancelOrderEmail)
	}
	
	server.router = router
	return router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	return server.router.Run(address)
}

// Handler exposes the router so main can wrap it in an http.Server.
func (server *Server) Handler() *gin.Engine {
	return server.router
}
