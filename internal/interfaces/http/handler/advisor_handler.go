package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tiendafacil/backend/internal/application/advisor"
)

// AdviseRequest carries the owner's question for the advisor
type AdviseRequest struct {
	Query string `json:"query" binding:"required,notblank"`
}

// AdviseResponse carries the advisor's answer
type AdviseResponse struct {
	Answer string `json:"answer"`
}

// AdvisorHandler exposes the AI advisor over HTTP
type AdvisorHandler struct {
	BaseHandler
	service *advisor.Service
}

// NewAdvisorHandler creates a new AdvisorHandler
func NewAdvisorHandler(service *advisor.Service) *AdvisorHandler {
	return &AdvisorHandler{service: service}
}

// Advise handles POST /advisor. The advisor never fails the request:
// model errors surface as a friendly fallback answer.
func (h *AdvisorHandler) Advise(c *gin.Context) {
	var req AdviseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	answer := h.service.Advise(c.Request.Context(), req.Query)
	h.Success(c, AdviseResponse{Answer: answer})
}
