// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package provider

import "strings"

// Normalize converts the editor state into the canonical wire shape
// expected by the tenant management API. It assumes the state passed
// validation, garbage in produces garbage out. The conversion is
// deterministic, the same state always yields a byte identical
// payload:
//   - every string is trimmed, empty optional scalars become explicit
//     nulls so the backend can tell "cleared" from "unset"
//   - draft maps collapse to key unique maps, rows with blank keys
//     are editing artifacts and dropped silently
//   - blank scope entries are pruned and client editing keys stripped
//   - field groups belonging to backend overridden behaviors are
//     omitted from the payload entirely, never sent with their
//     sentinel display values
func Normalize(s *EditorState) *ProviderConfig {
	cfg := &ProviderConfig{
		ThirdPartyID: s.EffectiveID(),
		Name:         strings.TrimSpace(s.Name),
		RequireEmail: s.RequireEmail,

		OIDCDiscoveryEndpoint: optional(s.OIDCDiscoveryEndpoint),
		AuthorizationEndpoint: optional(s.AuthorizationEndpoint),
		TokenEndpoint:         optional(s.TokenEndpoint),
		UserInfoEndpoint:      optional(s.UserInfoEndpoint),
		JWKSURI:               optional(s.JWKSURI),

		AuthorizationEndpointQueryParams: s.AuthorizationEndpointQueryParams.Resolve(),
		TokenEndpointBodyParams:          s.TokenEndpointBodyParams.Resolve(),
		UserInfoEndpointQueryParams:      s.UserInfoEndpointQueryParams.Resolve(),
		UserInfoEndpointHeaders:          s.UserInfoEndpointHeaders.Resolve(),

		UserInfoMap: &UserInfoMap{
			FromIdTokenPayload: normalizeUserFields(s.UserInfoMap.FromIdTokenPayload),
			FromUserInfoAPI:    normalizeUserFields(s.UserInfoMap.FromUserInfoAPI),
		},
	}

	for _, c := range s.Clients {
		cfg.Clients = append(cfg.Clients, normalizeClient(c, s.SAML))
	}

	if s.Overrides.AuthorisationRedirect {
		cfg.AuthorizationEndpoint = nil
		cfg.AuthorizationEndpointQueryParams = nil
		cfg.omitted = append(cfg.omitted,
			"authorizationEndpoint", "authorizationEndpointQueryParams")
	}
	if s.Overrides.TokenExchange {
		cfg.TokenEndpoint = nil
		cfg.TokenEndpointBodyParams = nil
		cfg.omitted = append(cfg.omitted,
			"tokenEndpoint", "tokenEndpointBodyParams")
	}
	if s.Overrides.UserInfo {
		cfg.UserInfoEndpoint = nil
		cfg.UserInfoEndpointQueryParams = nil
		cfg.UserInfoEndpointHeaders = nil
		cfg.UserInfoMap = nil
		cfg.omitted = append(cfg.omitted,
			"userInfoEndpoint", "userInfoEndpointQueryParams",
			"userInfoEndpointHeaders", "userInfoMap")
	}

	return cfg
}

func normalizeClient(c ClientDraft, saml *SAMLDraft) ClientConfig {
	out := ClientConfig{
		ClientID:         strings.TrimSpace(c.ClientID),
		ClientSecret:     strings.TrimSpace(c.ClientSecret),
		ClientType:       strings.TrimSpace(c.ClientType),
		Scope:            pruneScopes(c.Scopes),
		AdditionalConfig: c.AdditionalConfig.Resolve(),
		ForcePKCE:        c.ForcePKCE,
	}
	if saml != nil {
		foldSAML(saml, out.AdditionalConfig)
	}
	return out
}

func normalizeUserFields(d UserFieldsDraft) UserInfoFields {
	return UserInfoFields{
		UserID:        optional(d.UserID),
		Email:         optional(d.Email),
		EmailVerified: optional(d.EmailVerified),
	}
}

func pruneScopes(scopes []string) []string {
	out := []string{}
	for _, s := range scopes {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// optional trims the value and maps empty to an explicit null.
func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
