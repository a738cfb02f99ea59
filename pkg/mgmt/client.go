// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package mgmt

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/go-core-stack/core/errors"

	"github.com/go-core-stack/auth-console/pkg/provider"
)

const (
	// header carrying the management api key
	apiKeyHeader = "api-key"

	tenantPath   = "/tenant"
	providerPath = "/tenant/third-party/provider"
)

// Config carries everything the client needs to reach the tenant
// management API. It is passed in explicitly at construction, the
// client never reads ambient environment state.
type Config struct {
	// base endpoint of the auth service, e.g. http://localhost:3567
	Endpoint string

	// optional path prefix the management API is mounted under
	BasePath string

	// api key sent with every request, empty disables the header
	APIKey string
}

// Client is a thin typed wrapper around the tenant management REST
// API. Timeout and retry policy live on the underlying resty client,
// callers treat any non success uniformly as failure.
type Client struct {
	rc     *resty.Client
	apiKey string
}

// New creates a management API client for the given config.
func New(conf *Config) *Client {
	base := strings.TrimRight(conf.Endpoint, "/") + conf.BasePath
	rc := resty.New().SetBaseURL(base)
	return &Client{
		rc:     rc,
		apiKey: conf.APIKey,
	}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.rc.R().SetContext(ctx)
	if c.apiKey != "" {
		req.SetHeader(apiKeyHeader, c.apiKey)
	}
	return req
}

// GetTenantInfo fetches the tenant detail, carrying the provider list
// used as the uniqueness snapshot and the third party login enabled
// flag guarding sole provider deletion.
func (c *Client) GetTenantInfo(ctx context.Context, tenant string) (*TenantInfo, error) {
	result := &tenantGetResponse{}
	resp, err := c.request(ctx).
		SetQueryParam("tenantId", tenant).
		SetResult(result).
		Get(tenantPath)
	if err != nil {
		return nil, errors.Wrapf(errors.Unknown, "failed to fetch tenant %s: %s", tenant, err)
	}
	if resp.IsError() {
		return nil, errors.Wrapf(errors.Unknown, "failed to fetch tenant %s: got status %d", tenant, resp.StatusCode())
	}
	if result.Status != StatusOK || result.Tenant == nil {
		return nil, errors.Wrapf(errors.NotFound, "tenant %s not found", tenant)
	}
	return result.Tenant, nil
}

// GetProviderInfo fetches the configuration of one provider together
// with the backend declared override flags.
func (c *Client) GetProviderInfo(ctx context.Context, tenant, thirdPartyId string) (*provider.ProviderConfigResponse, error) {
	result := &providerGetResponse{}
	resp, err := c.request(ctx).
		SetQueryParam("tenantId", tenant).
		SetQueryParam("thirdPartyId", thirdPartyId).
		SetResult(result).
		Get(providerPath)
	if err != nil {
		return nil, errors.Wrapf(errors.Unknown, "failed to fetch provider %s: %s", thirdPartyId, err)
	}
	if resp.IsError() {
		return nil, errors.Wrapf(errors.Unknown, "failed to fetch provider %s: got status %d", thirdPartyId, resp.StatusCode())
	}
	if result.Status != StatusOK || result.ProviderConfig == nil {
		return nil, errors.Wrapf(errors.NotFound, "provider %s not found on tenant %s", thirdPartyId, tenant)
	}
	return result.ProviderConfig, nil
}

// PutProvider creates or updates a provider on the tenant. A SAML
// gateway rejection is mapped to SamlGatewayError so its message can
// be surfaced verbatim.
func (c *Client) PutProvider(ctx context.Context, tenant string, cfg *provider.ProviderConfig) error {
	result := &providerPutResponse{}
	body := &providerPutRequest{
		TenantID:       tenant,
		ProviderConfig: cfg,
	}
	resp, err := c.request(ctx).
		SetBody(body).
		SetResult(result).
		SetError(result).
		Put(providerPath)
	if err != nil {
		return errors.Wrapf(errors.Unknown, "failed to save provider %s: %s", cfg.ThirdPartyID, err)
	}
	if result.Status == StatusGatewayError {
		return &SamlGatewayError{Message: result.Message}
	}
	if resp.IsError() {
		return errors.Wrapf(errors.Unknown, "failed to save provider %s: got status %d", cfg.ThirdPartyID, resp.StatusCode())
	}
	if result.Status != StatusOK {
		return errors.Wrapf(errors.InvalidArgument, "failed to save provider %s: %s", cfg.ThirdPartyID, result.Status)
	}
	return nil
}

// DeleteProvider removes a provider from the tenant, reporting
// whether it existed. The sole provider guard is enforced by the
// caller against the tenant snapshot, a concurrent violation still
// fails here on the backend.
func (c *Client) DeleteProvider(ctx context.Context, tenant, thirdPartyId string) (bool, error) {
	result := &providerDeleteResponse{}
	resp, err := c.request(ctx).
		SetQueryParam("tenantId", tenant).
		SetQueryParam("thirdPartyId", thirdPartyId).
		SetResult(result).
		Delete(providerPath)
	if err != nil {
		return false, errors.Wrapf(errors.Unknown, "failed to delete provider %s: %s", thirdPartyId, err)
	}
	if resp.IsError() {
		return false, errors.Wrapf(errors.Unknown, "failed to delete provider %s: got status %d", thirdPartyId, resp.StatusCode())
	}
	if result.Status != StatusOK {
		return false, errors.Wrapf(errors.InvalidArgument, "failed to delete provider %s: %s", thirdPartyId, result.Status)
	}
	return result.DidExist, nil
}
