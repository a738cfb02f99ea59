// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package mgmt

import (
	"fmt"

	"github.com/go-core-stack/auth-console/pkg/provider"
)

// response status strings used by the tenant management API
const (
	StatusOK            = "OK"
	StatusUnknownTenant = "UNKNOWN_TENANT_ERROR"
	StatusGatewayError  = "BOXY_ERROR"
)

// ProviderSummary is the per provider slice of the tenant detail,
// enough for listing and for the id uniqueness snapshot.
type ProviderSummary struct {
	ThirdPartyID string `json:"thirdPartyId"`
	Name         string `json:"name"`
}

// TenantInfo is the tenant detail as served by the management API,
// restricted to what the provider console consumes.
type TenantInfo struct {
	TenantID          string            `json:"tenantId"`
	ThirdPartyEnabled bool              `json:"thirdPartyEnabled"`
	Providers         []ProviderSummary `json:"providers"`
}

// ProviderIDs returns the ids of all providers configured on the
// tenant, the point in time snapshot validation checks uniqueness
// against.
func (t *TenantInfo) ProviderIDs() []string {
	ids := make([]string, 0, len(t.Providers))
	for _, p := range t.Providers {
		ids = append(ids, p.ThirdPartyID)
	}
	return ids
}

type tenantGetResponse struct {
	Status string      `json:"status"`
	Tenant *TenantInfo `json:"tenant,omitempty"`
}

type providerGetResponse struct {
	Status         string                           `json:"status"`
	ProviderConfig *provider.ProviderConfigResponse `json:"providerConfig,omitempty"`
}

type providerPutRequest struct {
	TenantID       string                   `json:"tenantId"`
	ProviderConfig *provider.ProviderConfig `json:"providerConfig"`
}

type providerPutResponse struct {
	Status     string `json:"status"`
	CreatedNew bool   `json:"createdNew"`
	Message    string `json:"message,omitempty"`
}

type providerDeleteResponse struct {
	Status   string `json:"status"`
	DidExist bool   `json:"didExist"`
}

// SamlGatewayError is a submission failure carrying the message the
// SAML gateway returned, to be displayed verbatim rather than
// genericized.
type SamlGatewayError struct {
	Message string
}

func (e *SamlGatewayError) Error() string {
	return fmt.Sprintf("saml gateway rejected the provider config: %s", e.Message)
}

// GatewayMessage returns the provider supplied message, satisfying
// the save orchestrator's gateway error detection.
func (e *SamlGatewayError) GatewayMessage() string {
	return e.Message
}
