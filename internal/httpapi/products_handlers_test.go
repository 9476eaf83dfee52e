package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/store"
)

func TestProductsCRUD(t *testing.T) {
	srv, _ := testServer(t)

	res := postJSON(t, srv.URL+"/api/products", map[string]any{
		"name":        "Monitor Pro",
		"description": "Cloud monitoring platform",
		"metadata": map[string]any{
			"target_personas": []string{"C-Level"},
			"company_size":    "SMB",
		},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	created := decodeMap(t, res)
	res.Body.Close()
	id := created["id"].(string)
	require.NotEmpty(t, id)

	lres, err := http.Get(srv.URL + "/api/products")
	require.NoError(t, err)
	listed := decodeMap(t, lres)
	lres.Body.Close()
	require.EqualValues(t, 1, listed["total"])

	b, _ := json.Marshal(map[string]any{
		"name":        "Monitor Pro v2",
		"description": "",
		"metadata":    map[string]any{"company_size": "enterprise"},
	})
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/products/"+id, bytes.NewReader(b))
	ures, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, ures.StatusCode)
	updated := decodeMap(t, ures)
	ures.Body.Close()
	require.Equal(t, "Monitor Pro v2", updated["name"])
	// Empty description keeps the old value.
	require.Equal(t, "Cloud monitoring platform", updated["description"])

	dreq, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/products/"+id, nil)
	dres, err := http.DefaultClient.Do(dreq)
	require.NoError(t, err)
	dres.Body.Close()
	require.Equal(t, http.StatusNoContent, dres.StatusCode)

	gres, err := http.Get(srv.URL + "/api/products/" + id)
	require.NoError(t, err)
	gres.Body.Close()
	require.Equal(t, http.StatusNotFound, gres.StatusCode)
}

func TestProductValidation(t *testing.T) {
	srv, _ := testServer(t)

	res := postJSON(t, srv.URL+"/api/products", map[string]any{"name": "  "})
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestProductNotFoundPaths(t *testing.T) {
	srv, _ := testServer(t)

	res, err := http.Get(srv.URL + "/api/products/does-not-exist")
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestProductLeadsSubroute(t *testing.T) {
	srv, d := testServer(t)

	res := postJSON(t, srv.URL+"/api/products", map[string]any{
		"name":        "Monitor Pro",
		"description": "Cloud monitoring platform",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	created := decodeMap(t, res)
	res.Body.Close()
	id := created["id"].(string)

	l := domain.Lead{
		Domain:        "acme.io",
		Name:          "Acme",
		URL:           "https://acme.io",
		Qualification: domain.Qualification{Score: 82, Fit: "high", QualifiedAt: time.Now().UTC()},
		ProductID:     id,
		ProductName:   "Monitor Pro",
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	added, err := store.InsertLeadIgnore(d.DB, l)
	require.NoError(t, err)
	require.True(t, added)

	lres, err := http.Get(srv.URL + "/api/products/" + id + "/leads")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, lres.StatusCode)
	body := decodeMap(t, lres)
	lres.Body.Close()
	require.EqualValues(t, 1, body["total"])

	missing, err := http.Get(srv.URL + "/api/products/nope/leads")
	require.NoError(t, err)
	missing.Body.Close()
	require.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestLeadsBadQueryParams(t *testing.T) {
	srv, _ := testServer(t)

	res, err := http.Get(srv.URL + "/api/leads?min_score=abc")
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestLeadsEmpty(t *testing.T) {
	srv, _ := testServer(t)

	res, err := http.Get(srv.URL + "/api/leads")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decodeMap(t, res)
	require.EqualValues(t, 0, body["total"])
	require.Empty(t, body["leads"])
}
