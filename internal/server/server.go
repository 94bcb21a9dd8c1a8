package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/matthieukhl/sheetstock/internal/apperr"
	"github.com/matthieukhl/sheetstock/internal/database"
	"github.com/matthieukhl/sheetstock/internal/delivery"
	"github.com/matthieukhl/sheetstock/internal/inventory"
	"github.com/matthieukhl/sheetstock/internal/spreadsheet"
)

const healthTimeout = 5 * time.Second

// Deps are the collaborators the HTTP layer calls into.
type Deps struct {
	Inventory  *inventory.Service
	Deliveries *delivery.Register
	Source     spreadsheet.Source
	ProductsID string
	DB         *database.DB
	Logger     zerolog.Logger
}

type Server struct {
	router     *gin.Engine
	inventory  *inventory.Service
	deliveries *delivery.Register
	source     spreadsheet.Source
	productsID string
	db         *database.DB
	log        zerolog.Logger
}

// NewServer creates a new server instance
func NewServer(deps Deps) *Server {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	server := &Server{
		router:     router,
		inventory:  deps.Inventory,
		deliveries: deps.Deliveries,
		source:     deps.Source,
		productsID: deps.ProductsID,
		db:         deps.DB,
		log:        deps.Logger.With().Str("component", "http").Logger(),
	}

	router.Use(requestID(), accessLog(server.log), recovery(server.log))
	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.NoRoute(func(c *gin.Context) {
		s.writeError(c, apperr.NotFound("Ruta no encontrada"))
	})
	s.router.NoMethod(func(c *gin.Context) {
		s.writeError(c, apperr.MethodNotAllowed("Método no permitido"))
	})

	s.router.GET("/consultar_stock/:code/", s.consultarStock)
	s.router.GET("/buscar_producto_por_nombre/", s.buscarProductoPorNombre)
	s.router.GET("/consultar_productos/", s.consultarProductos)
	s.router.GET("/consultar_sabores_y_toppings/", s.consultarSaboresYToppings)

	s.router.POST("/registrar_entrega/", s.registrarEntrega)
	s.router.POST("/registrar_confirmacion/", s.registrarConfirmacion)
	s.router.POST("/actualizar_pago/", s.actualizarPago)
	s.router.POST("/actualizar_entrega/", s.actualizarEntrega)

	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)
	}
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := s.source.Ping(ctx, s.productsID); err != nil {
		s.log.Warn().Err(err).Msg("spreadsheet health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "spreadsheet backend unreachable",
		})
		return
	}

	if s.db != nil {
		if err := s.db.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "error",
				"error":  "database connection failed",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "sheetstock",
		"version": "0.1.0",
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
