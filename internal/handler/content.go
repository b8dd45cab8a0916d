package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/model"
	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/store"
)

// ContentHandler serves the public content API and its admin-gated
// mutations: solutions, products, news, partner benefits, associations,
// and exhibition applications.
type ContentHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(st *store.Store, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{store: st, logger: logger}
}

// writeStoreError maps store failures to responses. Collaborator errors
// become a generic 500; detail goes to the server log only.
func (h *ContentHandler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	h.logger.Error("store error",
		"path", r.URL.Path,
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// ---------------------------------------------------------------------------
// Solutions
// ---------------------------------------------------------------------------

// GET /api/solutions
func (h *ContentHandler) ListSolutions(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListSolutions(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	if items == nil {
		items = []model.Solution{}
	}
	writeJSON(w, http.StatusOK, items)
}

// POST /api/solutions
func (h *ContentHandler) CreateSolution(w http.ResponseWriter, r *http.Request) {
	var item model.Solution
	if err := readJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if item.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if err := h.store.CreateSolution(r.Context(), &item); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// PUT /api/solutions/{id}
func (h *ContentHandler) UpdateSolution(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	var item model.Solution
	if err := readJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	item.ID = id
	if err := h.store.UpdateSolution(r.Context(), &item); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DELETE /api/solutions/{id}
func (h *ContentHandler) DeleteSolution(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	if err := h.store.DeleteSolution(r.Context(), id); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Success: true, Message: "Solution deleted"})
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

// GET /api/products
func (h *ContentHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListProducts(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	if items == nil {
		items = []model.Product{}
	}
	writeJSON(w, http.StatusOK, items)
}

// POST /api/products
func (h *ContentHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var item model.Product
	if err := readJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if item.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if err := h.store.CreateProduct(r.Context(), &item); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// PUT /api/products/{id}
func (h *ContentHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	var item model.Product
	if err := readJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	item.ID = id
	if err := h.store.UpdateProduct(r.Context(), &item); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DELETE /api/products/{id}
func (h *ContentHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Success: true, Message: "Product deleted"})
}

// ---------------------------------------------------------------------------
// News
// ---------------------------------------------------------------------------

// GET /api/news
func (h *ContentHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListNews(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	if items == nil {
		items = []model.NewsItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// POST /api/news
func (h *ContentHandler) CreateNewsItem(w http.ResponseWriter, r *http.Request) {
	var item model.NewsItem
	if err := readJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if item.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if err := h.store.CreateNewsItem(r.Context(), &item); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// PUT /api/news/{id}
func (h *ContentHandler) UpdateNewsItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	var item model.NewsItem
	if err := readJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	item.ID = id
	if err := h.store.UpdateNewsItem(r.Context(), &item); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DELETE /api/news/{id}
func (h *ContentHandler) DeleteNewsItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	if err := h.store.DeleteNewsItem(r.Context(), id); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Success: true, Message: "News item deleted"})
}

// ---------------------------------------------------------------------------
// Partner benefits
// ---------------------------------------------------------------------------

// GET /api/partners
func (h *ContentHandler) ListPartnerBenefits(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListPartnerBenefits(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	if items == nil {
		items = []model.PartnerBenefit{}
	}
	writeJSON(w, http.StatusOK, items)
}

// POST /api/partners
func (h *ContentHandler) CreatePartnerBenefit(w http.ResponseWriter, r *http.Request) {
	var item model.PartnerBenefit
	if err := readJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if item.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if err := h.store.CreatePartnerBenefit(r.Context(), &item); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// PUT /api/partners/{id}
func (h *ContentHandler) UpdatePartnerBenefit(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	var item model.PartnerBenefit
	if err := readJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	item.ID = id
	if err := h.store.UpdatePartnerBenefit(r.Context(), &item); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DELETE /api/partners/{id}
func (h *ContentHandler) DeletePartnerBenefit(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	if err := h.store.DeletePartnerBenefit(r.Context(), id); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Success: true, Message: "Partner benefit deleted"})
}

// ---------------------------------------------------------------------------
// Associations
// ---------------------------------------------------------------------------

// GET /api/associations
func (h *ContentHandler) ListAssociations(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListAssociations(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	if items == nil {
		items = []model.Association{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GET /api/associations/{id}
func (h *ContentHandler) GetAssociation(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	item, err := h.store.GetAssociation(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// POST /api/associations
func (h *ContentHandler) CreateAssociation(w http.ResponseWriter, r *http.Request) {
	var item model.Association
	if err := readJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if item.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if err := h.store.CreateAssociation(r.Context(), &item); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// PUT /api/associations/{id}
func (h *ContentHandler) UpdateAssociation(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	var item model.Association
	if err := readJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	item.ID = id
	if err := h.store.UpdateAssociation(r.Context(), &item); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DELETE /api/associations/{id}
func (h *ContentHandler) DeleteAssociation(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	if err := h.store.DeleteAssociation(r.Context(), id); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Success: true, Message: "Association deleted"})
}

// ---------------------------------------------------------------------------
// Exhibition applications
// ---------------------------------------------------------------------------

// POST /api/exhibitions/apply
func (h *ContentHandler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var app model.ExhibitionApplication
	if err := readJSON(r, &app); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if app.Company == "" {
		writeError(w, http.StatusBadRequest, "Company is required")
		return
	}
	if err := h.store.CreateExhibitionApplication(r.Context(), &app); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

// GET /api/exhibitions/applications
func (h *ContentHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListExhibitionApplications(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	if items == nil {
		items = []model.ExhibitionApplication{}
	}
	writeJSON(w, http.StatusOK, items)
}
