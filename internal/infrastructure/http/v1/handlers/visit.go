package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"consignkeep/internal/core/id"
	"consignkeep/internal/domain/invoice"
	"consignkeep/internal/domain/visits"
	"consignkeep/internal/infrastructure/http/v1/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// VisitHandler serves the visit reconciliation flow: opening a working set,
// saving a counted visit, and browsing history.
type VisitHandler struct {
	*BaseHandler
	service  *visits.Service
	renderer invoice.Renderer
}

// NewVisitHandler creates a new visit handler.
func NewVisitHandler(base *BaseHandler, service *visits.Service, renderer invoice.Renderer) *VisitHandler {
	return &VisitHandler{BaseHandler: base, service: service, renderer: renderer}
}

// OpenSession handles GET /api/v1/clients/:id/visit-session.
// Returns the working set with expected quantities carried from the
// client's most recent visit.
func (h *VisitHandler) OpenSession(c *gin.Context) {
	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	sess, err := h.service.Open(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSession(sess))
}

// Save handles POST /api/v1/clients/:id/visits.
// Opens a session, applies the submitted raw counts and restocks, and
// performs the atomic save. The response echoes the saved visit plus the
// priced review rows.
func (h *VisitHandler) Save(c *gin.Context) {
	sess, req, ok := h.openAndApply(c)
	if !ok {
		return
	}

	// Review rows reflect the submitted inputs; capture them before the
	// save resets the session.
	items := sess.ReviewItems()

	visit, err := h.service.Save(c.Request.Context(), sess, req.Notes)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SaveVisitResponse{
		Visit: dto.FromVisit(visit),
		Items: dto.FromReviewItems(items),
	})
}

// SaveWithInvoice handles POST /api/v1/clients/:id/visits/invoice.
// Saves the visit and streams the rendered invoice workbook back, or the
// document as JSON when format=json is requested.
func (h *VisitHandler) SaveWithInvoice(c *gin.Context) {
	sess, req, ok := h.openAndApply(c)
	if !ok {
		return
	}

	visit, doc, err := h.service.SaveWithInvoice(c.Request.Context(), sess, req.Notes)
	if err != nil {
		h.Error(c, err)
		return
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusCreated, gin.H{
			"visit":   dto.FromVisit(visit),
			"invoice": dto.FromInvoice(doc),
		})
		return
	}

	fileName, data, err := h.renderer.Render(c.Request.Context(), doc)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusCreated, xlsxContentType, data)
}

// History handles GET /api/v1/clients/:id/visits.
func (h *VisitHandler) History(c *gin.Context) {
	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	limit := h.ParseIntQuery(c, "limit", 5)
	history, err := h.service.History(c.Request.Context(), clientID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.VisitResponse, 0, len(history))
	for _, v := range history {
		items = append(items, dto.FromVisit(v))
	}

	h.OK(c, dto.NewListResponse(items, len(items)))
}

// Items handles GET /api/v1/visits/:id/items.
func (h *VisitHandler) Items(c *gin.Context) {
	visitID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.Items(c.Request.Context(), visitID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(dto.FromVisitItems(items), len(items)))
}

// openAndApply opens a fresh session for the path client and applies the
// request's raw inputs. Inputs keyed by a malformed product id are dropped,
// matching the engine's degrade-not-fail stance on user entry.
func (h *VisitHandler) openAndApply(c *gin.Context) (*visits.Session, *dto.SaveVisitRequest, bool) {
	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return nil, nil, false
	}

	var req dto.SaveVisitRequest
	if !h.BindJSON(c, &req) {
		return nil, nil, false
	}

	sess, err := h.service.Open(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return nil, nil, false
	}

	for key, raw := range req.Counts {
		if productID, err := id.Parse(key); err == nil {
			sess.SetActual(productID, raw)
		}
	}
	for key, raw := range req.Restocks {
		if productID, err := id.Parse(key); err == nil {
			sess.SetRestock(productID, raw)
		}
	}

	return sess, &req, true
}
