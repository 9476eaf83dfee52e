package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"

	"leadgen-engine/internal/store"
)

type LeadsHandler struct {
	DB *sql.DB
}

func (h LeadsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := store.LeadFilter{
		ProductID:   q.Get("product_id"),
		ProductName: q.Get("product_name"),
		Persona:     q.Get("persona"),
	}
	var err error
	if f.MinScore, err = intParam(q.Get("min_score"), 0); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "min_score must be an integer")
		return
	}
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

	writeJSON(w, map[string]any{
		"leads": leads,
		"total": total,
	})
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
