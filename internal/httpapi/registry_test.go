package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ST0x-Technology/st0x.rest.api/internal/wire"
)

func TestHandleGetRegistryReturnsCurrentSourceURL(t *testing.T) {
	router, d := newTestRouter(t)
	authHeader := seedCredential(t, d, false)

	rec := doRequest(t, router, http.MethodGet, "/registry", nil, authHeader)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp wire.RegistryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://registry.example.com/deployments.yaml", resp.RegistryURL)
}

func TestHandlePutRegistryRequiresAdmin(t *testing.T) {
	router, d := newTestRouter(t)
	authHeader := seedCredential(t, d, false)

	body, err := json.Marshal(wire.SetRegistryRequest{RegistryURL: "https://registry.example.com/other.yaml"})
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPut, "/admin/registry", body, authHeader)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandlePutRegistrySwapsProviderAndPersistsSetting(t *testing.T) {
	router, d := newTestRouter(t)
	authHeader := seedCredential(t, d, true)

	body, err := json.Marshal(wire.SetRegistryRequest{RegistryURL: "https://registry.example.com/other.yaml"})
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPut, "/admin/registry", body, authHeader)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp wire.RegistryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://registry.example.com/other.yaml", resp.RegistryURL)
	assert.Equal(t, "https://registry.example.com/other.yaml", d.Cell.Read().SourceURL())

	persisted, ok, err := d.Store.GetSetting(context.Background(), "registry_url")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "https://registry.example.com/other.yaml", persisted)
}

func TestHandlePutRegistryRejectsUnreachableSource(t *testing.T) {
	router, d := newTestRouter(t)
	authHeader := seedCredential(t, d, true)

	body, err := json.Marshal(wire.SetRegistryRequest{RegistryURL: "https://registry.example.com/unreachable.yaml"})
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPut, "/admin/registry", body, authHeader)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "https://registry.example.com/deployments.yaml", d.Cell.Read().SourceURL())
}
