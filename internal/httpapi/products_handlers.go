package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/store"
)

type ProductsHandler struct {
	DB *sql.DB
}

type productReq struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Metadata    domain.ProductMetadata `json:"metadata"`
}

func (h ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid json: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "name and description are required")
		return
	}

	now := time.Now().UTC()
	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Metadata:    req.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := store.InsertProduct(h.DB, p); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, p)
}

func (h ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := store.ListProducts(h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"products": products, "total": len(products)})
}

// ByPath dispatches /api/products/{id} and /api/products/{id}/leads.
func (h ProductsHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/products/")

	if pid, ok := strings.CutSuffix(id, "/leads"); ok {
		if pid == "" || strings.Contains(pid, "/") {
			WriteError(w, r, http.StatusNotFound, "not_found", "product not found")
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.leads(w, r, pid)
		return
	}

	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusNotFound, "not_found", "product not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h ProductsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	p, err := store.GetProduct(h.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, r, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, p)
}

func (h ProductsHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid json: "+err.Error())
		return
	}

	p, err := store.GetProduct(h.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, r, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	if strings.TrimSpace(req.Name) != "" {
		p.Name = strings.TrimSpace(req.Name)
	}
	if strings.TrimSpace(req.Description) != "" {
		p.Description = strings.TrimSpace(req.Description)
	}
	p.Metadata = req.Metadata

	if err := store.UpdateProduct(h.DB, p); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	updated, err := store.GetProduct(h.DB, id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, updated)
}

// leads lists the leads saved under one product.
func (h ProductsHandler) leads(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := store.GetProduct(h.DB, id); errors.Is(err, store.ErrNotFound) {
		WriteError(w, r, http.StatusNotFound, "not_found", "product not found")
		return
	} else if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	q := r.URL.Query()
	f := store.LeadFilter{ProductID: id}
	var err error
	if f.Limit, err = intParam(q.Get("limit"), 100); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "limit must be an integer")
		return
	}
	if f.Skip, err = intParam(q.Get("skip"), 0); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "skip must be an integer")
		return
	}

	leads, err := store.ListLeads(h.DB, f)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	total, err := store.CountLeads(h.DB, f)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"leads": leads, "total": total})
}

func (h ProductsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := store.DeleteProduct(h.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, r, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
