package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tiendafacil/backend/internal/application/ledger"
)

// CustomerHandler exposes the customer credit ledger over HTTP
type CustomerHandler struct {
	BaseHandler
	service *ledger.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(service *ledger.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req ledger.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// GetByID handles GET /customers/:id
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	customer, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// PostTransaction handles POST /customers/:id/transactions, recording a
// manual debt ("fiar") or payment against the customer
func (h *CustomerHandler) PostTransaction(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req ledger.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tx, err := h.service.PostTransaction(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// TotalDebt handles GET /customers/debt/total
func (h *CustomerHandler) TotalDebt(c *gin.Context) {
	total, err := h.service.TotalOutstandingDebt(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"total_debt": total})
}
