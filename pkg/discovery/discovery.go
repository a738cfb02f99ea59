// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package discovery

import (
	"context"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/go-core-stack/core/errors"
)

// suffix of the discovery document location relative to the issuer
const wellKnownSuffix = "/.well-known/openid-configuration"

// Endpoints carries the provider endpoints advertised by an OIDC
// discovery document, used to prefill the provider editor when the
// operator asks to fill the form from a discovery endpoint.
type Endpoints struct {
	AuthorizationEndpoint string `json:"authorizationEndpoint"`
	TokenEndpoint         string `json:"tokenEndpoint"`
	UserInfoEndpoint      string `json:"userInfoEndpoint"`
	JWKSURI               string `json:"jwksURI"`
}

// discovery document claims the console cares about
type providerClaims struct {
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	UserInfoEndpoint      string `json:"userinfo_endpoint"`
	JWKSURI               string `json:"jwks_uri"`
}

// Probe fetches the OIDC discovery document for the given issuer or
// discovery endpoint URL and returns the endpoints advertised in it.
// The operator may paste either the bare issuer or the full
// well-known URL, both resolve to the same document.
func Probe(ctx context.Context, endpoint string) (*Endpoints, error) {
	issuer := strings.TrimSuffix(strings.TrimSpace(endpoint), wellKnownSuffix)
	issuer = strings.TrimRight(issuer, "/")
	if issuer == "" {
		return nil, errors.Wrapf(errors.InvalidArgument, "no discovery endpoint provided")
	}

	p, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, errors.Wrapf(errors.InvalidArgument, "failed to fetch discovery document from %s: %s", issuer, err)
	}

	claims := &providerClaims{}
	if err := p.Claims(claims); err != nil {
		return nil, errors.Wrapf(errors.InvalidArgument, "failed to decode discovery document from %s: %s", issuer, err)
	}

	return &Endpoints{
		AuthorizationEndpoint: claims.AuthorizationEndpoint,
		TokenEndpoint:         claims.TokenEndpoint,
		UserInfoEndpoint:      claims.UserInfoEndpoint,
		JWKSURI:               claims.JWKSURI,
	}, nil
}
