package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tiendafacil/backend/internal/application/session"
)

// SessionHandler exposes snapshot save and restore over HTTP. The
// frontend calls save when the owner closes the store and restore when
// they reopen it.
type SessionHandler struct {
	BaseHandler
	service *session.Service
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(service *session.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

// Save handles POST /session/save
func (h *SessionHandler) Save(c *gin.Context) {
	if err := h.service.Save(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"saved": true})
}

// Restore handles POST /session/restore
func (h *SessionHandler) Restore(c *gin.Context) {
	if err := h.service.Restore(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"restored": true})
}
