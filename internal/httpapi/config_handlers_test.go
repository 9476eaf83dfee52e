package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"leadgen-engine/internal/config"
)

func TestConfigGet(t *testing.T) {
	srv, _ := testServer(t)

	res, err := http.Get(srv.URL + "/api/config")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var cfg config.Config
	require.NoError(t, json.NewDecoder(res.Body).Decode(&cfg))
	require.Equal(t, "http://localhost:11434/v1", cfg.LLM.BaseURL)
	require.Equal(t, 30, cfg.Research.TargetCount)
}

func TestConfigPutRoundTrip(t *testing.T) {
	srv, d := testServer(t)

	cur := d.CfgVal.Load().(config.Config)
	cur.Research.TargetCount = 10

	b, _ := json.Marshal(cur)
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/config", bytes.NewReader(b))
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var saved config.Config
	require.NoError(t, json.NewDecoder(res.Body).Decode(&saved))
	require.Equal(t, 10, saved.Research.TargetCount)

	// The live snapshot reloaded.
	live := d.CfgVal.Load().(config.Config)
	require.Equal(t, 10, live.Research.TargetCount)
}

func TestConfigPutRejectsInvalid(t *testing.T) {
	srv, d := testServer(t)

	cur := d.CfgVal.Load().(config.Config)
	cur.LLM.BaseURL = ""

	b, _ := json.Marshal(cur)
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/config", bytes.NewReader(b))
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	var vr config.Validation
	require.NoError(t, json.NewDecoder(res.Body).Decode(&vr))
	require.NotEmpty(t, vr.Errors)
}

func TestConfigPutRejectsUnknownFields(t *testing.T) {
	srv, _ := testServer(t)

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/config",
		bytes.NewReader([]byte(`{"bogus_section":{}}`)))
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}
