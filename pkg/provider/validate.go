// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package provider

import (
	"fmt"
	"net/url"
	"strings"
)

// FieldErrors is the outcome of validating an editor state, keyed by
// the dotted path of the offending control, e.g. "clients.1.clientId"
// or "thirdPartyId". An empty map means the state is clean. Field
// errors are values, they are never raised as error returns.
type FieldErrors map[string]string

// Empty reports whether validation found nothing to complain about.
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

func (e FieldErrors) add(path, msg string) {
	if _, ok := e[path]; ok {
		// first error on a control wins
		return
	}
	e[path] = msg
}

// Validate checks the editor state against all field level and cross
// field rules, collecting every applicable error rather than stopping
// at the first. existingIDs is the point in time snapshot of provider
// ids already configured on the tenant, used for the uniqueness check
// when adding a new provider. Pure, the state is never mutated.
func Validate(s *EditorState, existingIDs []string) FieldErrors {
	errs := FieldErrors{}
	kind := s.Kind()

	validateID(s, existingIDs, errs)

	// display name is mandatory only on the generic custom provider
	// path, built-in kinds fall back to their registry display name
	if !kind.IsBuiltIn() && strings.TrimSpace(s.Name) == "" {
		errs.add("name", "provider name is required")
	}

	validateClients(s, kind, errs)
	validateEndpoints(s, kind, errs)

	if s.SAML != nil {
		validateSAML(s.SAML, errs)
	}

	return errs
}

func validateID(s *EditorState, existingIDs []string, errs FieldErrors) {
	id := s.EffectiveID()
	if strings.TrimSpace(id) == "" {
		errs.add("thirdPartyId", "third party id is required")
		return
	}
	if !ValidID(id) {
		errs.add("thirdPartyId", "third party id can only contain lowercase alphabets, numbers and hyphens")
		return
	}
	if !s.IsNew {
		return
	}
	for _, existing := range existingIDs {
		if existing == id {
			errs.add("thirdPartyId", fmt.Sprintf("provider %q already exists for this tenant", id))
			return
		}
	}
}

func validateClients(s *EditorState, kind Kind, errs FieldErrors) {
	// a provider without clients has no credentials to log in with
	if len(s.Clients) == 0 {
		errs.add("clients", "at least one client is required")
		return
	}

	multi := len(s.Clients) > 1
	seenTypes := map[string]int{}

	for i, c := range s.Clients {
		if strings.TrimSpace(c.ClientID) == "" {
			errs.add(clientPath(i, "clientId"), "client id is required")
		}
		if kind.RequiresClientSecret() && strings.TrimSpace(c.ClientSecret) == "" {
			errs.add(clientPath(i, "clientSecret"), "client secret is required")
		}

		// clientType disambiguates clients and is only meaningful
		// once there is more than one of them
		if multi {
			ct := strings.TrimSpace(c.ClientType)
			if ct == "" {
				errs.add(clientPath(i, "clientType"), "client type is required when multiple clients are configured")
			} else if _, dup := seenTypes[ct]; dup {
				errs.add(clientPath(i, "clientType"), fmt.Sprintf("client type %q is already used by another client", ct))
			} else {
				seenTypes[ct] = i
			}
		}

		for _, f := range kind.ClientFields() {
			if !f.Required {
				continue
			}
			if val, _ := c.AdditionalConfig.Get(f.ID); strings.TrimSpace(val) == "" {
				errs.add(clientPath(i, "additionalConfig."+f.ID), fmt.Sprintf("%s is required", f.Label))
			}
		}
	}
}

// endpoint group completeness: either the discovery endpoint is set,
// or the authorization/token/userinfo triad is either fully set or
// fully empty. Fields belonging to a backend overridden behavior
// carry a display sentinel, they count as set and are exempt from the
// URL shape check.
func validateEndpoints(s *EditorState, kind Kind, errs FieldErrors) {
	type endpoint struct {
		path       string
		value      string
		overridden bool
	}

	triad := []endpoint{
		{"authorizationEndpoint", s.AuthorizationEndpoint, s.Overrides.AuthorisationRedirect},
		{"tokenEndpoint", s.TokenEndpoint, s.Overrides.TokenExchange},
		{"userInfoEndpoint", s.UserInfoEndpoint, s.Overrides.UserInfo},
	}

	discovery := strings.TrimSpace(s.OIDCDiscoveryEndpoint)
	if discovery == "" {
		filled := 0
		for _, ep := range triad {
			if strings.TrimSpace(ep.value) != "" {
				filled++
			}
		}
		if filled > 0 && filled < len(triad) {
			for _, ep := range triad {
				if strings.TrimSpace(ep.value) == "" {
					errs.add(ep.path, "required when the OIDC discovery endpoint is not set")
				}
			}
		} else if filled == 0 && !kind.IsBuiltIn() {
			// built-in kinds carry endpoint defaults on the backend, a
			// custom provider has to bring one of the two schemes
			errs.add("oidcDiscoveryEndpoint", "set either the OIDC discovery endpoint or all of the authorization, token and user info endpoints")
		}
	}

	checked := append(triad,
		endpoint{"oidcDiscoveryEndpoint", s.OIDCDiscoveryEndpoint, false},
		endpoint{"jwksURI", s.JWKSURI, false},
	)
	for _, ep := range checked {
		if ep.overridden {
			continue
		}
		val := strings.TrimSpace(ep.value)
		if val != "" && !validURL(val) {
			errs.add(ep.path, "must be a valid http(s) URL")
		}
	}
}

func validateSAML(d *SAMLDraft, errs FieldErrors) {
	if d.Mode != SAMLInputXML && d.Mode != SAMLInputURL {
		// reopened provider with metadata already on the gateway, no
		// metadata input selected means nothing to check
		return
	}

	nonBlank := 0
	for i, u := range d.RedirectURLs {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		nonBlank++
		if !validURL(u) {
			errs.add(fmt.Sprintf("saml.redirectURLs.%d", i), "must be a valid http(s) URL")
		}
	}
	if nonBlank == 0 {
		errs.add("saml.redirectURLs", "at least one redirect URL is required")
	}

	switch d.Mode {
	case SAMLInputXML:
		if strings.TrimSpace(d.MetadataXML) == "" {
			errs.add("saml.metadataXML", "SAML metadata XML is required")
		}
	case SAMLInputURL:
		mdURL := strings.TrimSpace(d.MetadataURL)
		if mdURL == "" {
			errs.add("saml.metadataURL", "SAML metadata URL is required")
		} else if !validURL(mdURL) {
			errs.add("saml.metadataURL", "must be a valid http(s) URL")
		}
	}
}

func clientPath(index int, field string) string {
	return fmt.Sprintf("clients.%d.%s", index, field)
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
