// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-core-stack/auth-console/pkg/mgmt"
	"github.com/go-core-stack/auth-console/pkg/provider"
)

// fakeBackend emulates the tenant management API endpoints the console
// talks to.
type fakeBackend struct {
	tenant    map[string]any
	putStatus string
	putCount  int
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tenant", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": mgmt.StatusOK,
			"tenant": f.tenant,
		})
	})
	mux.HandleFunc("GET /tenant/third-party/provider", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": mgmt.StatusOK,
			"providerConfig": map[string]any{
				"thirdPartyId": r.URL.Query().Get("thirdPartyId"),
				"name":         "My IdP",
			},
		})
	})
	mux.HandleFunc("PUT /tenant/third-party/provider", func(w http.ResponseWriter, r *http.Request) {
		f.putCount++
		status := f.putStatus
		if status == "" {
			status = mgmt.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": status,
		})
	})
	mux.HandleFunc("DELETE /tenant/third-party/provider", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":   mgmt.StatusOK,
			"didExist": true,
		})
	})
	return mux
}

func newTestServer(t *testing.T, backend *fakeBackend) http.Handler {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return New(mgmt.New(&mgmt.Config{Endpoint: srv.URL}), nil)
}

func defaultTenant() map[string]any {
	return map[string]any{
		"tenantId":          "acme",
		"thirdPartyEnabled": true,
		"providers": []map[string]any{
			{"thirdPartyId": "google", "name": "Google"},
			{"thirdPartyId": "my-idp", "name": "My IdP"},
		},
	}
}

func Test_ProviderTypes(t *testing.T) {
	h := newTestServer(t, &fakeBackend{tenant: defaultTenant()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/provider-types", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))

	byID := map[string]map[string]any{}
	for _, entry := range list {
		byID[entry["thirdPartyId"].(string)] = entry
	}
	assert.Contains(t, byID, "google")
	assert.Equal(t, false, byID["apple"]["requiresClientSecret"])
	assert.Equal(t, true, byID["boxy-saml"]["usesSamlGateway"])
}

func Test_GetTenant(t *testing.T) {
	h := newTestServer(t, &fakeBackend{tenant: defaultTenant()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tenant/acme", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	info := &mgmt.TenantInfo{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), info))
	assert.Equal(t, []string{"google", "my-idp"}, info.ProviderIDs())
}

func Test_GetProviderNew(t *testing.T) {
	h := newTestServer(t, &fakeBackend{tenant: defaultTenant()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/tenant/acme/provider/apple?new=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	state := &provider.EditorState{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), state))
	assert.True(t, state.IsNew)
	assert.Equal(t, "Apple", state.Name)
	require.Len(t, state.Clients, 1)
}

func Test_GetProviderExisting(t *testing.T) {
	h := newTestServer(t, &fakeBackend{tenant: defaultTenant()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/tenant/acme/provider/my-idp", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	state := &provider.EditorState{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), state))
	assert.False(t, state.IsNew)
	assert.Equal(t, "My IdP", state.Name)
}

func putState(t *testing.T, h http.Handler, path string, state *provider.EditorState) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(state)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, path, bytes.NewReader(body)))
	return rec
}

func Test_PutProviderSaved(t *testing.T) {
	backend := &fakeBackend{tenant: defaultTenant()}
	h := newTestServer(t, backend)

	state := &provider.EditorState{
		IsNew:                 true,
		ThirdPartyID:          "other-idp",
		Name:                  "Other IdP",
		OIDCDiscoveryEndpoint: "https://idp.example.com",
		Clients: []provider.ClientDraft{
			{ClientID: "cid", ClientSecret: "secret"},
		},
	}

	rec := putState(t, h, "/api/tenant/acme/provider/other-idp", state)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, backend.putCount)
}

func Test_PutProviderFieldErrors(t *testing.T) {
	backend := &fakeBackend{tenant: defaultTenant()}
	h := newTestServer(t, backend)

	// duplicate of an already configured id
	state := &provider.EditorState{
		IsNew:                 true,
		ThirdPartyID:          "my-idp",
		Name:                  "My IdP",
		OIDCDiscoveryEndpoint: "https://idp.example.com",
		Clients: []provider.ClientDraft{
			{ClientID: "cid", ClientSecret: "secret"},
		},
	}

	rec := putState(t, h, "/api/tenant/acme/provider/my-idp", state)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Status string               `json:"status"`
		Errors provider.FieldErrors `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "FIELD_ERROR", resp.Status)
	assert.Contains(t, resp.Errors, "thirdPartyId")
	assert.Equal(t, 0, backend.putCount)
}

func Test_PutProviderIDMismatch(t *testing.T) {
	backend := &fakeBackend{tenant: defaultTenant()}
	h := newTestServer(t, backend)

	// payload saving under a different id than the request path
	state := &provider.EditorState{
		IsNew:                 true,
		ThirdPartyID:          "other-idp",
		Name:                  "Other IdP",
		OIDCDiscoveryEndpoint: "https://idp.example.com",
		Clients: []provider.ClientDraft{
			{ClientID: "cid", ClientSecret: "secret"},
		},
	}

	rec := putState(t, h, "/api/tenant/acme/provider/my-idp", state)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, backend.putCount)
}

func Test_PutProviderMalformedBody(t *testing.T) {
	h := newTestServer(t, &fakeBackend{tenant: defaultTenant()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut,
		"/api/tenant/acme/provider/my-idp", bytes.NewReader([]byte("{"))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_DeleteProvider(t *testing.T) {
	h := newTestServer(t, &fakeBackend{tenant: defaultTenant()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete,
		"/api/tenant/acme/provider/my-idp", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["didExist"])
}

func Test_DeleteEvictsSaver(t *testing.T) {
	backend := &fakeBackend{tenant: defaultTenant()}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	cs := &ConsoleServer{client: mgmt.New(&mgmt.Config{Endpoint: srv.URL})}

	require.NotNil(t, cs.saver("acme", "my-idp"))
	_, ok := cs.savers.Load(saverKey("acme", "my-idp"))
	require.True(t, ok)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete,
		"/api/tenant/acme/provider/my-idp", nil)
	req.SetPathValue("tenant", "acme")
	req.SetPathValue("id", "my-idp")
	cs.handleDeleteProvider(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// the deleted provider's saver is released with it
	_, ok = cs.savers.Load(saverKey("acme", "my-idp"))
	assert.False(t, ok)
}

func Test_DeleteSoleProviderGuard(t *testing.T) {
	backend := &fakeBackend{tenant: map[string]any{
		"tenantId":          "acme",
		"thirdPartyEnabled": true,
		"providers": []map[string]any{
			{"thirdPartyId": "google", "name": "Google"},
		},
	}}
	h := newTestServer(t, backend)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete,
		"/api/tenant/acme/provider/google", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func Test_DeleteSoleProviderAllowedWhenDisabled(t *testing.T) {
	backend := &fakeBackend{tenant: map[string]any{
		"tenantId":          "acme",
		"thirdPartyEnabled": false,
		"providers": []map[string]any{
			{"thirdPartyId": "google", "name": "Google"},
		},
	}}
	h := newTestServer(t, backend)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete,
		"/api/tenant/acme/provider/google", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
