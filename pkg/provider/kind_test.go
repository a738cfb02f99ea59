// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package provider

import "testing"

func Test_KindOf(t *testing.T) {
	cases := []struct {
		id   string
		want Kind
	}{
		{"google", KindGoogle},
		{"google-mycompany", KindGoogle},
		{"google-workspaces", KindGoogleWorkspaces},
		{"google-workspaces-eu", KindGoogleWorkspaces},
		{"active-directory", KindActiveDirectory},
		{"active-directory-hr", KindActiveDirectory},
		{"boxy-saml-acme", KindBoxySAML},
		{"apple", KindApple},
		// a plain prefix without the "-" separator is not a suffix match
		{"googleplus", KindCustom},
		{"my-own-idp", KindCustom},
		{"", KindCustom},
	}
	for _, c := range cases {
		if got := KindOf(c.id); got != c.want {
			t.Errorf("KindOf(%q) = %v, want %v", c.id, got, c.want)
		}
	}
}

func Test_KindCapabilities(t *testing.T) {
	if !KindBoxySAML.UsesSAMLGateway() {
		t.Errorf("expected the SAML kind to use the SAML gateway")
	}
	if KindGoogle.UsesSAMLGateway() {
		t.Errorf("expected google to not use the SAML gateway")
	}

	// apple signs a client assertion with a private key instead of
	// presenting a shared secret
	if KindApple.RequiresClientSecret() {
		t.Errorf("expected apple to be exempt from the client secret requirement")
	}
	if !KindGoogle.RequiresClientSecret() {
		t.Errorf("expected google to require a client secret")
	}

	if KindCustom.IsBuiltIn() {
		t.Errorf("expected the custom kind to not be built-in")
	}
	if !KindOkta.IsBuiltIn() {
		t.Errorf("expected okta to be built-in")
	}
}

func Test_KindBaseID(t *testing.T) {
	if got := KindGoogleWorkspaces.BaseID(); got != "google-workspaces" {
		t.Errorf("got base id %q, want google-workspaces", got)
	}
	if got := KindCustom.BaseID(); got != "" {
		t.Errorf("got base id %q for custom kind, want empty", got)
	}
	if got := KindBoxySAML.DisplayName(); got != "SAML" {
		t.Errorf("got display name %q, want SAML", got)
	}
	if got := KindCustom.DisplayName(); got != "Custom Provider" {
		t.Errorf("got display name %q, want Custom Provider", got)
	}
}
