package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/matthieukhl/sheetstock/internal/apperr"
	"github.com/matthieukhl/sheetstock/internal/delivery"
	"github.com/matthieukhl/sheetstock/internal/inventory"
)

func (s *Server) consultarStock(c *gin.Context) {
	stock, err := s.inventory.GetStockByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

func (s *Server) buscarProductoPorNombre(c *gin.Context) {
	res, err := s.inventory.SearchByName(c.Request.Context(), strings.TrimSpace(c.Query("q")))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if res.Product != nil {
		c.JSON(http.StatusOK, res.Product)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": res.Matches})
}

func (s *Server) consultarProductos(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(c, apperr.Validation("El parámetro limit debe ser un número"))
			return
		}
		limit = n
	}

	res, err := s.inventory.QueryProducts(c.Request.Context(), inventory.Query{
		Category: c.Query("categoria"),
		Name:     c.Query("producto"),
		Limit:    limit,
		Debug:    c.Query("debug") == "1",
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	if res.Debug != nil {
		c.JSON(http.StatusOK, res.Debug)
		return
	}
	c.JSON(http.StatusOK, res.Items)
}

func (s *Server) consultarSaboresYToppings(c *gin.Context) {
	data, err := s.inventory.ListFlavorsAndToppings(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Server) registrarEntrega(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		s.writeError(c, apperr.New(apperr.KindValidation, "No se pudo leer el cuerpo", err))
		return
	}
	req, err := delivery.ParseRequest(body)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if _, err := s.deliveries.RegisterDelivery(c.Request.Context(), req); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) registrarConfirmacion(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		s.writeError(c, apperr.New(apperr.KindValidation, "No se pudo leer el cuerpo", err))
		return
	}
	if _, err := s.deliveries.RegisterConfirmation(c.Request.Context(), body); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "mensaje": "Pedido registrado con éxito."})
}

func (s *Server) actualizarPago(c *gin.Context) {
	s.updateStatus(c, func(req *delivery.StatusRequest) error {
		return s.deliveries.SetPaymentStatus(c.Request.Context(), req.Code.String(), bool(req.Paid))
	})
}

func (s *Server) actualizarEntrega(c *gin.Context) {
	s.updateStatus(c, func(req *delivery.StatusRequest) error {
		return s.deliveries.SetDeliveryStatus(c.Request.Context(), req.Code.String(), bool(req.Delivered))
	})
}

func (s *Server) updateStatus(c *gin.Context, apply func(*delivery.StatusRequest) error) {
	body, err := c.GetRawData()
	if err != nil {
		s.writeError(c, apperr.New(apperr.KindValidation, "No se pudo leer el cuerpo", err))
		return
	}
	req, err := delivery.ParseStatusRequest(body)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if err := apply(req); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
