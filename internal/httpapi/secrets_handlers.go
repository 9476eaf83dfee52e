package httpapi

import (
	"encoding/json"
	"net/http"

	"leadgen-engine/internal/secrets"
)

type SecretsHandler struct{}

type setLLMKeyReq struct {
	APIKey string `json:"api_key"`
}

func (h SecretsHandler) SetLLMKey(w http.ResponseWriter, r *http.Request) {
	var req setLLMKeyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := secrets.SetLLMAPIKey(req.APIKey); err != nil {
		http.Error(w, "failed to store api key: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) DeleteLLMKey(w http.ResponseWriter, r *http.Request) {
	if err := secrets.DeleteLLMAPIKey(); err != nil {
		http.Error(w, "failed to delete api key: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
