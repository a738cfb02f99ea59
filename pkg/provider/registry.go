// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package provider

// FieldType indicates how a custom field should be rendered and
// handled by the console UI.
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypePassword  FieldType = "password"
	FieldTypeMultiline FieldType = "multiline"
)

// FieldMeta describes one provider specific custom field. The ID of a
// client scoped field doubles as the key inside the client's
// additionalConfig map.
type FieldMeta struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Tooltip  string    `json:"tooltip,omitempty"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
}

// kindFields holds the custom field descriptors of a provider kind,
// split between fields living at the top level of the provider config
// and fields living inside each client's additionalConfig.
type kindFields struct {
	topLevel []FieldMeta
	client   []FieldMeta
}

// oidcDiscoveryOverride is shared by kinds where the directory hosting
// service derives the discovery document per customer domain, letting
// the operator override the computed endpoint.
var oidcDiscoveryOverride = FieldMeta{
	ID:      "oidcDiscoveryEndpoint",
	Label:   "OIDC Discovery Endpoint",
	Tooltip: "Override for the OpenID Connect discovery endpoint derived from the directory domain",
	Type:    FieldTypeText,
}

var fieldRegistry = map[Kind]kindFields{
	KindApple: {
		client: []FieldMeta{
			{ID: "keyId", Label: "Key Id", Tooltip: "Identifier of the private key registered with Apple", Type: FieldTypeText, Required: true},
			{ID: "teamId", Label: "Team Id", Tooltip: "Apple developer team identifier", Type: FieldTypeText, Required: true},
			{ID: "privateKey", Label: "Private Key", Tooltip: "Contents of the .p8 signing key downloaded from Apple", Type: FieldTypeMultiline, Required: true},
		},
	},
	KindGoogleWorkspaces: {
		client: []FieldMeta{
			{ID: "hd", Label: "Hosted Domain", Tooltip: "Restrict sign in to accounts of this Google Workspace domain, use * to allow any domain", Type: FieldTypeText},
		},
	},
	KindOkta: {
		topLevel: []FieldMeta{oidcDiscoveryOverride},
		client: []FieldMeta{
			{ID: "oktaDomain", Label: "Okta Domain", Tooltip: "Base domain of the Okta org, e.g. dev-8636097.us.auth0.com", Type: FieldTypeText, Required: true},
		},
	},
	KindActiveDirectory: {
		topLevel: []FieldMeta{oidcDiscoveryOverride},
		client: []FieldMeta{
			{ID: "directoryId", Label: "Directory Id", Tooltip: "Azure Active Directory tenant (directory) identifier", Type: FieldTypeText, Required: true},
		},
	},
	KindGitlab: {
		client: []FieldMeta{
			{ID: "gitlabBaseUrl", Label: "GitLab Base URL", Tooltip: "Base URL of a self hosted GitLab instance, leave empty for gitlab.com", Type: FieldTypeText},
		},
	},
	KindBoxySAML: {
		client: []FieldMeta{
			{ID: "boxyURL", Label: "Boxy URL", Tooltip: "URL of the SAML gateway deployment handling this provider", Type: FieldTypeText, Required: true},
			{ID: "boxyAPIKey", Label: "Boxy API Key", Tooltip: "API key used to upload SAML metadata to the gateway, not persisted with the provider", Type: FieldTypePassword},
		},
	},
}

// TopLevelFields returns the registry declared custom fields living at
// the top level of the provider config for the given kind. The slice
// must be treated as read-only.
func (k Kind) TopLevelFields() []FieldMeta {
	return fieldRegistry[k].topLevel
}

// ClientFields returns the registry declared custom fields living
// inside each client's additionalConfig for the given kind. The slice
// must be treated as read-only.
func (k Kind) ClientFields() []FieldMeta {
	return fieldRegistry[k].client
}
