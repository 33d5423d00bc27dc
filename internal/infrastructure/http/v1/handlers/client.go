package handlers

import (
	"github.com/gin-gonic/gin"

	"consignkeep/internal/domain/catalogs/client"
	"consignkeep/internal/infrastructure/http/v1/dto"
)

// ClientHandler serves the client directory.
type ClientHandler struct {
	*BaseHandler
	service *client.Service
}

// NewClientHandler creates a new client handler.
func NewClientHandler(base *BaseHandler, service *client.Service) *ClientHandler {
	return &ClientHandler{BaseHandler: base, service: service}
}

// Create handles POST /api/v1/clients.
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), entity); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, entity.ID.String())
}

// Get handles GET /api/v1/clients/:id.
func (h *ClientHandler) Get(c *gin.Context) {
	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromClient(entity))
}

// Update handles PUT /api/v1/clients/:id.
func (h *ClientHandler) Update(c *gin.Context) {
	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(entity)
	if err := h.service.Update(c.Request.Context(), entity); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromClient(entity))
}

// Archive handles DELETE /api/v1/clients/:id. Soft status change; visit
// history stays intact.
func (h *ClientHandler) Archive(c *gin.Context) {
	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Archive(c.Request.Context(), clientID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// List handles GET /api/v1/clients.
func (h *ClientHandler) List(c *gin.Context) {
	var query dto.ClientListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	entries, err := h.service.List(c.Request.Context(), query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.ClientResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.FromDirectoryEntry(e))
	}

	h.OK(c, dto.NewListResponse(items, len(items)))
}

// Addresses handles GET /api/v1/clients/addresses. Distinct address list
// for the directory's exact-address filter.
func (h *ClientHandler) Addresses(c *gin.Context) {
	addresses, err := h.service.Addresses(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(addresses, len(addresses)))
}
