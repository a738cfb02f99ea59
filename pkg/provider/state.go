// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package provider

import (
	"github.com/google/uuid"
)

// UserFieldsDraft is the editable form of one user info field map.
// Empty strings stand for "backend default", never for an explicit
// empty override.
type UserFieldsDraft struct {
	UserID        string `json:"userId"`
	Email         string `json:"email"`
	EmailVerified string `json:"emailVerified"`
}

// UserInfoDraft is the editable form of the provider's userInfoMap.
type UserInfoDraft struct {
	FromIdTokenPayload UserFieldsDraft `json:"fromIdTokenPayload"`
	FromUserInfoAPI    UserFieldsDraft `json:"fromUserInfoAPI"`
}

// ClientDraft is the editable form of one OAuth client entry. EditKey
// is a synthetic identity for list rendering, it is generated fresh on
// every hydration and never sent to the backend.
type ClientDraft struct {
	EditKey          string   `json:"editKey"`
	ClientID         string   `json:"clientId"`
	ClientSecret     string   `json:"clientSecret"`
	ClientType       string   `json:"clientType"`
	Scopes           []string `json:"scope"`
	AdditionalConfig DraftMap `json:"additionalConfig"`
	ForcePKCE        bool     `json:"forcePKCE"`
}

// SAMLInputMode selects how the operator supplies the SAML metadata
// of a gateway backed provider.
type SAMLInputMode string

const (
	// metadata pasted as an XML blob
	SAMLInputXML SAMLInputMode = "xml"

	// metadata fetched by the gateway from a URL
	SAMLInputURL SAMLInputMode = "url"
)

// SAMLDraft carries the gateway specific inputs of a SAML provider
// under edit.
type SAMLDraft struct {
	Mode         SAMLInputMode `json:"mode"`
	MetadataXML  string        `json:"metadataXML"`
	MetadataURL  string        `json:"metadataURL"`
	RedirectURLs []string      `json:"redirectURLs"`
}

// EditorState is the single in-memory editable configuration owned by
// an active editing session. Every optional scalar is a plain string,
// empty meaning unset, and every map valued field is held as a
// DraftMap until normalization.
type EditorState struct {
	// IsNew marks a provider being added as opposed to an existing
	// one being edited, enabling the id uniqueness check
	IsNew bool `json:"isNew"`

	// ThirdPartyID is the provider id, for a new built-in provider it
	// holds the base id and Suffix participates via EffectiveID
	ThirdPartyID string `json:"thirdPartyId"`

	// Suffix chosen by the operator while creating a built-in or SAML
	// gateway provider, ignored otherwise
	Suffix string `json:"suffix,omitempty"`

	Name string `json:"name"`

	Clients []ClientDraft `json:"clients"`

	OIDCDiscoveryEndpoint string `json:"oidcDiscoveryEndpoint"`
	AuthorizationEndpoint string `json:"authorizationEndpoint"`
	TokenEndpoint         string `json:"tokenEndpoint"`
	UserInfoEndpoint      string `json:"userInfoEndpoint"`
	JWKSURI               string `json:"jwksURI"`

	AuthorizationEndpointQueryParams DraftMap `json:"authorizationEndpointQueryParams"`
	TokenEndpointBodyParams          DraftMap `json:"tokenEndpointBodyParams"`
	UserInfoEndpointQueryParams      DraftMap `json:"userInfoEndpointQueryParams"`
	UserInfoEndpointHeaders          DraftMap `json:"userInfoEndpointHeaders"`

	UserInfoMap UserInfoDraft `json:"userInfoMap"`

	RequireEmail bool `json:"requireEmail"`

	SAML *SAMLDraft `json:"saml,omitempty"`

	Overrides OverrideFlags `json:"overrides"`
}

// Kind resolves the provider kind from the state's id.
func (s *EditorState) Kind() Kind {
	return KindOf(s.ThirdPartyID)
}

// EffectiveID is the id the provider will be saved under. While
// creating a built-in provider the operator supplied suffix is folded
// in, in every other case the id is taken as is.
func (s *EditorState) EffectiveID() string {
	if s.IsNew && s.Kind().IsBuiltIn() {
		return DeriveID(s.ThirdPartyID, s.Suffix)
	}
	return s.ThirdPartyID
}

// NewEditorState derives the initial editable state for the provider
// editor. When existing is nil a fresh state for a brand-new provider
// with the given id is synthesized, with one default client seeded
// from the field registry for that provider kind. Otherwise the
// fetched configuration is hydrated, coalescing optional scalars to
// empty strings and converting map fields to drafts, so that every
// input is safely bindable to a controlled form control.
func NewEditorState(existing *ProviderConfigResponse, thirdPartyId string) *EditorState {
	if existing == nil {
		return newEmptyState(thirdPartyId)
	}
	return hydrateState(existing)
}

func newEmptyState(thirdPartyId string) *EditorState {
	kind := KindOf(thirdPartyId)
	s := &EditorState{
		IsNew:        true,
		ThirdPartyID: thirdPartyId,
		Clients:      []ClientDraft{newClientDraft(kind)},

		AuthorizationEndpointQueryParams: NewDraft(nil),
		TokenEndpointBodyParams:          NewDraft(nil),
		UserInfoEndpointQueryParams:      NewDraft(nil),
		UserInfoEndpointHeaders:          NewDraft(nil),
	}
	if kind.IsBuiltIn() {
		s.Name = kind.DisplayName()
	}
	if kind.UsesSAMLGateway() {
		s.SAML = &SAMLDraft{
			Mode:         SAMLInputXML,
			RedirectURLs: []string{""},
		}
	}
	return s
}

func hydrateState(existing *ProviderConfigResponse) *EditorState {
	s := &EditorState{
		ThirdPartyID: existing.ThirdPartyID,
		Name:         existing.Name,
		RequireEmail: existing.RequireEmail,

		OIDCDiscoveryEndpoint: strOrEmpty(existing.OIDCDiscoveryEndpoint),
		AuthorizationEndpoint: strOrEmpty(existing.AuthorizationEndpoint),
		TokenEndpoint:         strOrEmpty(existing.TokenEndpoint),
		UserInfoEndpoint:      strOrEmpty(existing.UserInfoEndpoint),
		JWKSURI:               strOrEmpty(existing.JWKSURI),

		AuthorizationEndpointQueryParams: NewDraft(existing.AuthorizationEndpointQueryParams),
		TokenEndpointBodyParams:          NewDraft(existing.TokenEndpointBodyParams),
		UserInfoEndpointQueryParams:      NewDraft(existing.UserInfoEndpointQueryParams),
		UserInfoEndpointHeaders:          NewDraft(existing.UserInfoEndpointHeaders),

		Overrides: OverrideFlags{
			AuthorisationRedirect: existing.IsGetAuthorisationRedirectUrlOverridden,
			TokenExchange:         existing.IsExchangeAuthCodeForOAuthTokensOverridden,
			UserInfo:              existing.IsGetUserInfoOverridden,
		},
	}

	if existing.UserInfoMap != nil {
		s.UserInfoMap = UserInfoDraft{
			FromIdTokenPayload: hydrateUserFields(existing.UserInfoMap.FromIdTokenPayload),
			FromUserInfoAPI:    hydrateUserFields(existing.UserInfoMap.FromUserInfoAPI),
		}
	}

	for _, c := range existing.Clients {
		s.Clients = append(s.Clients, ClientDraft{
			EditKey:          uuid.NewString(),
			ClientID:         c.ClientID,
			ClientSecret:     c.ClientSecret,
			ClientType:       c.ClientType,
			Scopes:           append([]string{}, c.Scope...),
			AdditionalConfig: NewDraft(c.AdditionalConfig),
			ForcePKCE:        c.ForcePKCE,
		})
	}
	if len(s.Clients) == 0 {
		s.Clients = []ClientDraft{newClientDraft(s.Kind())}
	}

	if s.Kind().UsesSAMLGateway() {
		// an already saved SAML provider carries its metadata on the
		// gateway, the editor reopens with no metadata input selected
		s.SAML = &SAMLDraft{RedirectURLs: []string{""}}
	}

	// overridden behaviors render read-only, their prior endpoint
	// values are replaced with a display sentinel and never sent back
	if s.Overrides.AuthorisationRedirect {
		s.AuthorizationEndpoint = OverriddenSentinel
	}
	if s.Overrides.TokenExchange {
		s.TokenEndpoint = OverriddenSentinel
	}
	if s.Overrides.UserInfo {
		s.UserInfoEndpoint = OverriddenSentinel
	}

	return s
}

func newClientDraft(kind Kind) ClientDraft {
	return ClientDraft{
		EditKey:          uuid.NewString(),
		Scopes:           []string{},
		AdditionalConfig: blankDraft(kind.ClientFields()),
	}
}

func hydrateUserFields(f UserInfoFields) UserFieldsDraft {
	return UserFieldsDraft{
		UserID:        strOrEmpty(f.UserID),
		Email:         strOrEmpty(f.Email),
		EmailVerified: strOrEmpty(f.EmailVerified),
	}
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
