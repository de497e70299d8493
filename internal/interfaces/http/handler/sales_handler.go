package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tiendafacil/backend/internal/application/sales"
)

// SalesHandler exposes checkout and the sales journal over HTTP
type SalesHandler struct {
	BaseHandler
	checkout *sales.CheckoutService
	journal  *sales.JournalService
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(checkout *sales.CheckoutService, journal *sales.JournalService) *SalesHandler {
	return &SalesHandler{checkout: checkout, journal: journal}
}

// Checkout handles POST /checkout
func (h *SalesHandler) Checkout(c *gin.Context) {
	var req sales.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sale, err := h.checkout.Checkout(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// List handles GET /sales
func (h *SalesHandler) List(c *gin.Context) {
	saleList, err := h.journal.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, saleList)
}

// Recent handles GET /sales/recent?limit=n
func (h *SalesHandler) Recent(c *gin.Context) {
	limit := defaultRecentSales
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "limit must be an integer")
			return
		}
		limit = parsed
	}

	saleList, err := h.journal.Recent(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, saleList)
}

// defaultRecentSales is how many sales /sales/recent returns by default
const defaultRecentSales = 10
