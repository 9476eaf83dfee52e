package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/events"
	"leadgen-engine/internal/research"
	"leadgen-engine/internal/store"
)

type GenerateHandler struct {
	Deps Deps
}

type generateReq struct {
	ProductDescription string `json:"product_description"`
	ProductID          string `json:"product_id"`
	TargetCount        int    `json:"target_count"`
	MaxIterations      int    `json:"max_iterations"`

	// Optional targeting hints, folded into the description before
	// profile extraction.
	Industries       []string `json:"industries,omitempty"`
	Regions          []string `json:"regions,omitempty"`
	CompanySize      string   `json:"company_size,omitempty"`
	BudgetRange      string   `json:"budget_range,omitempty"`
	SellerName       string   `json:"seller_name,omitempty"`
	ValueProposition string   `json:"value_proposition,omitempty"`
}

// resolve fills run params from the request, the referenced product and
// the config defaults.
func (h GenerateHandler) resolve(req generateReq) (research.Params, error) {
	cfg := h.Deps.CfgVal.Load().(config.Config)

	p := research.Params{
		ProductDescription: strings.TrimSpace(req.ProductDescription),
		ProductID:          req.ProductID,
		TargetCount:        req.TargetCount,
		MaxIterations:      req.MaxIterations,
	}
	if p.TargetCount <= 0 {
		p.TargetCount = cfg.Research.TargetCount
	}
	if p.MaxIterations <= 0 {
		p.MaxIterations = cfg.Research.MaxIterations
	}

	if req.ProductID != "" {
		prod, err := store.GetProduct(h.Deps.DB, req.ProductID)
		if err != nil {
			return p, fmt.Errorf("product %s: %w", req.ProductID, err)
		}
		p.ProductName = prod.Name
		if p.ProductDescription == "" {
			p.ProductDescription = prod.Description
		}
	}

	if p.ProductDescription == "" {
		return p, fmt.Errorf("product_description or product_id is required")
	}
	p.ProductDescription = foldTargeting(p.ProductDescription, req)
	return p, nil
}

// foldTargeting appends the optional targeting hints as plain context
// lines so profile extraction sees them alongside the description.
func foldTargeting(desc string, req generateReq) string {
	var extra []string
	if len(req.Industries) > 0 {
		extra = append(extra, "Target industries: "+strings.Join(req.Industries, ", "))
	}
	if len(req.Regions) > 0 {
		extra = append(extra, "Target regions: "+strings.Join(req.Regions, ", "))
	}
	if req.CompanySize != "" {
		extra = append(extra, "Target company size: "+req.CompanySize)
	}
	if req.BudgetRange != "" {
		extra = append(extra, "Budget range: "+req.BudgetRange)
	}
	if req.SellerName != "" {
		extra = append(extra, "Sold by: "+req.SellerName)
	}
	if req.ValueProposition != "" {
		extra = append(extra, "Value proposition: "+req.ValueProposition)
	}
	if len(extra) == 0 {
		return desc
	}
	return desc + "\n\n" + strings.Join(extra, "\n")
}

// Generate runs synchronously and returns the summary. Progress is
// still visible on /events while it runs.
func (h GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid json: "+err.Error())
		return
	}

	p, err := h.resolve(req)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	cfg := h.Deps.CfgVal.Load().(config.Config)
	runner := h.Deps.NewRunner(cfg)

	done := make(chan research.Summary, 1)
	handle := h.Deps.Manager.Start(r.Context(), runner, p, func(s research.Summary) {
		done <- s
	})

	// Drain steps so the buffered channel never fills.
	for range handle.Steps {
	}

	sum := <-done
	if sum.Err != "" && sum.SavedCount == 0 && len(sum.Leads) == 0 {
		WriteError(w, r, http.StatusInternalServerError, "run_failed", sum.Err)
		return
	}
	writeJSON(w, sum)
}

// GenerateStream starts a run and streams its steps as SSE, one named
// event per step. Client disconnect cancels the run.
func (h GenerateHandler) GenerateStream(w http.ResponseWriter, r *http.Request) {
	req, err := streamRequest(r)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	p, err := h.resolve(req)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, r, http.StatusInternalServerError, "stream_unsupported", "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	cfg := h.Deps.CfgVal.Load().(config.Config)
	runner := h.Deps.NewRunner(cfg)

	// Tied to the request context: disconnecting the stream cancels
	// the run.
	handle := h.Deps.Manager.Start(r.Context(), runner, p, nil)

	fmt.Fprintf(w, "event: ping\ndata: %s\n\n", events.MakeEvent(handle.ID, "ping", 1, map[string]string{"run_id": handle.ID}))
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			h.Deps.Manager.Cancel(handle.ID)
			return
		case step, open := <-handle.Steps:
			if !open {
				return
			}
			b, _ := json.Marshal(step)
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", step.Type, b)
			flusher.Flush()
		}
	}
}

// streamRequest accepts both POST bodies and GET query params, since
// EventSource clients can only GET.
func streamRequest(r *http.Request) (generateReq, error) {
	var req generateReq

	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("invalid json: %w", err)
		}
		return req, nil
	}

	q := r.URL.Query()
	req.ProductDescription = q.Get("product_description")
	req.ProductID = q.Get("product_id")
	if v := q.Get("target_count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("target_count: %w", err)
		}
		req.TargetCount = n
	}
	if v := q.Get("max_iterations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("max_iterations: %w", err)
		}
		req.MaxIterations = n
	}
	return req, nil
}

type cancelReq struct {
	RunID string `json:"run_id"`
}

func (h GenerateHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req cancelReq
	// Empty body cancels the latest run.
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.RunID != "" {
		if !h.Deps.Manager.Cancel(req.RunID) {
			WriteError(w, r, http.StatusNotFound, "not_found", "no live run with id "+req.RunID)
			return
		}
		writeJSON(w, map[string]any{"cancelled": req.RunID})
		return
	}

	id, ok := h.Deps.Manager.CancelLatest()
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "no live run")
		return
	}
	writeJSON(w, map[string]any{"cancelled": id})
}
