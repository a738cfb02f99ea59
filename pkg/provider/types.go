// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package provider

import "encoding/json"

// UserInfoFields maps the logical user fields to provider specific
// JSON paths. A nil entry means the backend default applies, an
// explicit value overrides it.
type UserInfoFields struct {
	UserID        *string `json:"userId"`
	Email         *string `json:"email"`
	EmailVerified *string `json:"emailVerified"`
}

// UserInfoMap carries the user field mappings for both sources the
// backend can read user information from.
type UserInfoMap struct {
	FromIdTokenPayload UserInfoFields `json:"fromIdTokenPayload"`
	FromUserInfoAPI    UserInfoFields `json:"fromUserInfoAPI"`
}

// ClientConfig is one OAuth client credential set within a provider,
// in the canonical wire shape of the tenant management API.
type ClientConfig struct {
	ClientID         string            `json:"clientId"`
	ClientType       string            `json:"clientType,omitempty"`
	ClientSecret     string            `json:"clientSecret,omitempty"`
	Scope            []string          `json:"scope"`
	AdditionalConfig map[string]string `json:"additionalConfig"`
	ForcePKCE        bool              `json:"forcePKCE"`
}

// ProviderConfig is one identity provider attached to a tenant, in
// the canonical wire shape of the tenant management API. Optional
// scalar fields are pointers, an explicit null tells the backend the
// field was cleared as opposed to never set.
type ProviderConfig struct {
	ThirdPartyID                     string            `json:"thirdPartyId"`
	Name                             string            `json:"name"`
	OIDCDiscoveryEndpoint            *string           `json:"oidcDiscoveryEndpoint"`
	TokenEndpoint                    *string           `json:"tokenEndpoint"`
	UserInfoEndpoint                 *string           `json:"userInfoEndpoint"`
	AuthorizationEndpoint            *string           `json:"authorizationEndpoint"`
	JWKSURI                          *string           `json:"jwksURI"`
	RequireEmail                     bool              `json:"requireEmail"`
	Clients                          []ClientConfig    `json:"clients"`
	UserInfoMap                      *UserInfoMap      `json:"userInfoMap"`
	AuthorizationEndpointQueryParams map[string]string `json:"authorizationEndpointQueryParams"`
	TokenEndpointBodyParams          map[string]string `json:"tokenEndpointBodyParams"`
	UserInfoEndpointQueryParams      map[string]string `json:"userInfoEndpointQueryParams"`
	UserInfoEndpointHeaders          map[string]string `json:"userInfoEndpointHeaders"`

	// wire fields to be dropped from the outgoing payload because the
	// backend declared the corresponding behavior overridden, filled
	// in by the normalizer and never set on inbound configs
	omitted []string
}

// MarshalJSON drops the fields belonging to backend overridden
// behaviors from the payload entirely, instead of sending them with
// their sentinel display values.
func (c *ProviderConfig) MarshalJSON() ([]byte, error) {
	type alias ProviderConfig
	raw, err := json.Marshal((*alias)(c))
	if err != nil {
		return nil, err
	}
	if len(c.omitted) == 0 {
		return raw, nil
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	for _, key := range c.omitted {
		delete(fields, key)
	}
	return json.Marshal(fields)
}

// ProviderConfigResponse is the provider config as fetched from the
// backend, extended with the flags reporting behaviors replaced by
// custom backend code. Any overridden behavior renders its config
// fields informational only.
type ProviderConfigResponse struct {
	ProviderConfig
	IsGetAuthorisationRedirectUrlOverridden    bool `json:"isGetAuthorisationRedirectUrlOverridden"`
	IsExchangeAuthCodeForOAuthTokensOverridden bool `json:"isExchangeAuthCodeForOAuthTokensOverridden"`
	IsGetUserInfoOverridden                    bool `json:"isGetUserInfoOverridden"`
}

// OverrideFlags is the editor side view of the backend declared
// override flags.
type OverrideFlags struct {
	AuthorisationRedirect bool `json:"isGetAuthorisationRedirectUrlOverridden"`
	TokenExchange         bool `json:"isExchangeAuthCodeForOAuthTokensOverridden"`
	UserInfo              bool `json:"isGetUserInfoOverridden"`
}

// OverriddenSentinel is displayed in place of values belonging to a
// backend overridden behavior. The value is display only and is never
// sent back to the backend.
const OverriddenSentinel = "[overridden by backend]"
