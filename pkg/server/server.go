// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package server

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/go-core-stack/core/errors"

	"github.com/go-core-stack/auth-console/pkg/discovery"
	"github.com/go-core-stack/auth-console/pkg/mgmt"
	"github.com/go-core-stack/auth-console/pkg/provider"
	"github.com/go-core-stack/auth-console/pkg/table"
)

const (
	// header through which the console UI reports the acting
	// operator, recorded with audit entries
	operatorHeader = "X-Console-Operator"
)

// ConsoleServer hosts the JSON API consumed by the provider console
// UI: provider type metadata, tenant provider listing, the provider
// editor round trip and the discovery prefill helper.
type ConsoleServer struct {
	client *mgmt.Client
	audit  *table.ProviderAuditTable

	// one saver per tenant/provider pair, keeping the single
	// outstanding submission guarantee per editing target
	savers sync.Map
}

// New creates the console server around the given management API
// client. The audit table is optional, when nil change attempts are
// not recorded.
func New(client *mgmt.Client, audit *table.ProviderAuditTable) http.Handler {
	srv := &ConsoleServer{
		client: client,
		audit:  audit,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/provider-types", srv.handleProviderTypes)
	mux.HandleFunc("GET /api/tenant/{tenant}", srv.handleGetTenant)
	mux.HandleFunc("GET /api/tenant/{tenant}/provider/{id}", srv.handleGetProvider)
	mux.HandleFunc("PUT /api/tenant/{tenant}/provider/{id}", srv.handlePutProvider)
	mux.HandleFunc("DELETE /api/tenant/{tenant}/provider/{id}", srv.handleDeleteProvider)
	mux.HandleFunc("POST /api/discover", srv.handleDiscover)

	return withAccessLog(mux)
}

// providerTypeInfo is the registry metadata served per built-in kind.
type providerTypeInfo struct {
	ThirdPartyID   string               `json:"thirdPartyId"`
	DisplayName    string               `json:"displayName"`
	UsesSAMLGW     bool                 `json:"usesSamlGateway"`
	RequiresSecret bool                 `json:"requiresClientSecret"`
	TopLevelFields []provider.FieldMeta `json:"topLevelFields"`
	ClientFields   []provider.FieldMeta `json:"clientFields"`
}

func (s *ConsoleServer) handleProviderTypes(w http.ResponseWriter, r *http.Request) {
	kinds := []provider.Kind{
		provider.KindGoogle, provider.KindGoogleWorkspaces, provider.KindApple,
		provider.KindGithub, provider.KindGitlab, provider.KindBitbucket,
		provider.KindDiscord, provider.KindFacebook, provider.KindLinkedIn,
		provider.KindTwitter, provider.KindOkta, provider.KindActiveDirectory,
		provider.KindBoxySAML,
	}
	list := make([]providerTypeInfo, 0, len(kinds))
	for _, k := range kinds {
		list = append(list, providerTypeInfo{
			ThirdPartyID:   k.BaseID(),
			DisplayName:    k.DisplayName(),
			UsesSAMLGW:     k.UsesSAMLGateway(),
			RequiresSecret: k.RequiresClientSecret(),
			TopLevelFields: k.TopLevelFields(),
			ClientFields:   k.ClientFields(),
		})
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *ConsoleServer) handleGetTenant(w http.ResponseWriter, r *http.Request) {
	info, err := s.client.GetTenantInfo(r.Context(), r.PathValue("tenant"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *ConsoleServer) handleGetProvider(w http.ResponseWriter, r *http.Request) {
	tenant := r.PathValue("tenant")
	id := r.PathValue("id")

	// a brand-new provider has nothing to fetch, the editor opens on
	// defaults synthesized from the field registry
	if r.URL.Query().Get("new") == "true" {
		writeJSON(w, http.StatusOK, provider.NewEditorState(nil, id))
		return
	}

	existing, err := s.client.GetProviderInfo(r.Context(), tenant, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, provider.NewEditorState(existing, id))
}

// putResponse is the editor save verdict sent back to the UI.
type putResponse struct {
	Status  string               `json:"status"`
	Errors  provider.FieldErrors `json:"errors,omitempty"`
	Message string               `json:"message,omitempty"`
}

func (s *ConsoleServer) handlePutProvider(w http.ResponseWriter, r *http.Request) {
	tenant := r.PathValue("tenant")
	id := r.PathValue("id")

	state := &provider.EditorState{}
	if err := json.NewDecoder(r.Body).Decode(state); err != nil {
		writeJSON(w, http.StatusBadRequest, putResponse{
			Status:  "ERROR",
			Message: "malformed editor state",
		})
		return
	}

	// the saver owning the single outstanding save is keyed by the
	// path id, a payload saving under a different id would bypass it
	if state.EffectiveID() != id {
		writeJSON(w, http.StatusBadRequest, putResponse{
			Status:  "ERROR",
			Message: "provider id in the payload does not match the request path",
		})
		return
	}

	// the uniqueness check runs against a point in time snapshot of
	// the tenant's provider list
	info, err := s.client.GetTenantInfo(r.Context(), tenant)
	if err != nil {
		writeError(w, err)
		return
	}

	result := s.saver(tenant, id).Save(r.Context(), tenant, state, info.ProviderIDs())
	switch result.Outcome {
	case provider.SaveOutcomeSaved:
		writeJSON(w, http.StatusOK, putResponse{Status: "OK"})
	case provider.SaveOutcomeInvalid:
		writeJSON(w, http.StatusBadRequest, putResponse{
			Status: "FIELD_ERROR",
			Errors: result.Errors,
		})
	case provider.SaveOutcomeBusy:
		writeJSON(w, http.StatusConflict, putResponse{
			Status:  "BUSY",
			Message: "a save for this provider is already in progress",
		})
	default:
		log.Printf("failed to save provider %s on tenant %s: %s", id, tenant, result.Err)
		writeJSON(w, http.StatusBadGateway, putResponse{
			Status:  "SAVE_FAILED",
			Message: result.Message,
		})
	}
}

func (s *ConsoleServer) handleDeleteProvider(w http.ResponseWriter, r *http.Request) {
	tenant := r.PathValue("tenant")
	id := r.PathValue("id")

	info, err := s.client.GetTenantInfo(r.Context(), tenant)
	if err != nil {
		writeError(w, err)
		return
	}

	// the sole configured provider cannot be removed while third
	// party login is enabled for the tenant, users would be locked out
	if info.ThirdPartyEnabled && len(info.Providers) == 1 &&
		info.Providers[0].ThirdPartyID == id {
		writeJSON(w, http.StatusConflict, putResponse{
			Status:  "ERROR",
			Message: "cannot delete the only provider while third party login is enabled",
		})
		return
	}

	didExist, err := s.client.DeleteProvider(r.Context(), tenant, id)
	if err != nil {
		writeError(w, err)
		return
	}
	// the deleted provider's saver has nothing left to guard
	s.savers.Delete(saverKey(tenant, id))
	if s.audit != nil {
		s.audit.RecordDelete(r.Context(), tenant, id, r.Header.Get(operatorHeader), "deleted")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "OK",
		"didExist": didExist,
	})
}

type discoverRequest struct {
	Endpoint string `json:"endpoint"`
}

func (s *ConsoleServer) handleDiscover(w http.ResponseWriter, r *http.Request) {
	req := &discoverRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, putResponse{
			Status:  "ERROR",
			Message: "malformed discovery request",
		})
		return
	}
	endpoints, err := discovery.Probe(r.Context(), req.Endpoint)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, endpoints)
}

func saverKey(tenant, id string) string {
	return tenant + "/" + id
}

// saver returns the save orchestrator owning the given tenant and
// provider pair, creating it on first use.
func (s *ConsoleServer) saver(tenant, id string) *provider.Saver {
	key := saverKey(tenant, id)
	if v, ok := s.savers.Load(key); ok {
		return v.(*provider.Saver)
	}
	sv := provider.NewSaver(s.client)
	if s.audit != nil {
		sv.Recorder = s.audit
	}
	actual, _ := s.savers.LoadOrStore(key, sv)
	return actual.(*provider.Saver)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %s", err)
	}
}

// writeError maps client layer errors onto API status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.IsNotFound(err) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{
		"status":  "ERROR",
		"message": err.Error(),
	})
}

// getClientIP assumes the console is behind a trusted proxy setting
// X-Forwarded-For and X-Real-Ip headers, falling back to RemoteAddr
// otherwise.
func getClientIP(r *http.Request) string {
	xForwardedFor := r.Header.Get("X-Forwarded-For")
	if xForwardedFor != "" {
		// The header is a comma-separated list: client, proxy1, proxy2, ...
		ips := strings.Split(xForwardedFor, ",")
		return strings.TrimSpace(ips[0])
	}
	if realIP := r.Header.Get("X-Real-Ip"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
