// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package provider

import "testing"

func Test_DeriveID(t *testing.T) {
	cases := []struct {
		base   string
		suffix string
		want   string
	}{
		{"google", "", "google"},
		{"google", "eu", "google-eu"},
		{"google", "  EU  ", "google-eu"},
		{"boxy-saml", "acme", "boxy-saml-acme"},
		{"okta", "   ", "okta"},
	}
	for _, c := range cases {
		if got := DeriveID(c.base, c.suffix); got != c.want {
			t.Errorf("DeriveID(%q, %q) = %q, want %q", c.base, c.suffix, got, c.want)
		}
	}
}

func Test_ValidID(t *testing.T) {
	valid := []string{"google", "google-eu", "my-idp-2", "0auth"}
	for _, id := range valid {
		if !ValidID(id) {
			t.Errorf("expected %q to be a valid third party id", id)
		}
	}

	invalid := []string{"", "Google", "my idp", "idp_one", "café"}
	for _, id := range invalid {
		if ValidID(id) {
			t.Errorf("expected %q to be rejected as third party id", id)
		}
	}
}
