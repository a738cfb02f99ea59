// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package provider

import "strings"

// Kind enumerates the provider types recognized by the console.
// Anything that does not resolve to a built-in kind is treated as
// KindCustom, where the operator supplies the full configuration
// by hand.
type Kind int32

const (
	KindCustom Kind = iota
	KindGoogle
	KindGoogleWorkspaces
	KindApple
	KindGithub
	KindGitlab
	KindBitbucket
	KindDiscord
	KindFacebook
	KindLinkedIn
	KindTwitter
	KindOkta
	KindActiveDirectory
	KindBoxySAML
)

// kindEntry binds a base third party id to its kind. The table is
// kept ordered with longer ids first, so that lookup by prefix can
// never resolve "google-workspaces" to the plain google kind.
type kindEntry struct {
	id   string
	kind Kind
	name string
}

var kindTable = []kindEntry{
	{id: "google-workspaces", kind: KindGoogleWorkspaces, name: "Google Workspaces"},
	{id: "active-directory", kind: KindActiveDirectory, name: "Active Directory"},
	{id: "google", kind: KindGoogle, name: "Google"},
	{id: "apple", kind: KindApple, name: "Apple"},
	{id: "github", kind: KindGithub, name: "GitHub"},
	{id: "gitlab", kind: KindGitlab, name: "GitLab"},
	{id: "bitbucket", kind: KindBitbucket, name: "Bitbucket"},
	{id: "discord", kind: KindDiscord, name: "Discord"},
	{id: "facebook", kind: KindFacebook, name: "Facebook"},
	{id: "linkedin", kind: KindLinkedIn, name: "LinkedIn"},
	{id: "twitter", kind: KindTwitter, name: "Twitter"},
	{id: "okta", kind: KindOkta, name: "Okta"},
	{id: "boxy-saml", kind: KindBoxySAML, name: "SAML"},
}

// KindOf resolves the kind for a given third party id. Suffixed ids
// of built-in providers, e.g. "google-mycompany", resolve to the kind
// of their base id. A suffix match requires the base id to be followed
// by a "-" separator, a plain prefix is not sufficient.
func KindOf(thirdPartyId string) Kind {
	for _, e := range kindTable {
		if thirdPartyId == e.id {
			return e.kind
		}
		if strings.HasPrefix(thirdPartyId, e.id+"-") {
			return e.kind
		}
	}
	return KindCustom
}

// BaseID returns the canonical third party id for a built-in kind,
// empty string for the custom kind.
func (k Kind) BaseID() string {
	for _, e := range kindTable {
		if e.kind == k {
			return e.id
		}
	}
	return ""
}

// DisplayName returns the human readable name of the provider kind.
func (k Kind) DisplayName() string {
	for _, e := range kindTable {
		if e.kind == k {
			return e.name
		}
	}
	return "Custom Provider"
}

// IsBuiltIn reports whether the kind has registry recognized endpoint
// defaults and custom field descriptors.
func (k Kind) IsBuiltIn() bool {
	return k != KindCustom
}

// UsesSAMLGateway reports whether the provider delegates to a SAML
// gateway instead of speaking OAuth2/OIDC directly.
func (k Kind) UsesSAMLGateway() bool {
	return k == KindBoxySAML
}

// RequiresClientSecret reports whether clients of this provider must
// carry a shared client secret. Providers authenticating with
// asymmetric key material, currently only Apple which signs a client
// assertion with a private key, are exempt.
func (k Kind) RequiresClientSecret() bool {
	return k != KindApple
}
