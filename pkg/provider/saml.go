// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package provider

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// additionalConfig keys understood by the SAML gateway
const (
	samlXMLKey          = "samlXML"
	samlURLKey          = "samlURL"
	samlRedirectURLsKey = "redirectURLs"
)

// foldSAML merges the gateway specific inputs of a SAML provider into
// a client's resolved additionalConfig map. Metadata supplied as an
// XML blob travels base64 encoded, metadata supplied as a URL is
// fetched by the gateway itself. The redirect URL list is carried as
// a JSON encoded array, additionalConfig values are plain strings on
// the wire.
func foldSAML(d *SAMLDraft, cfg map[string]string) {
	switch d.Mode {
	case SAMLInputXML:
		xml := strings.TrimSpace(d.MetadataXML)
		if xml != "" {
			cfg[samlXMLKey] = base64.StdEncoding.EncodeToString([]byte(xml))
		}
	case SAMLInputURL:
		mdURL := strings.TrimSpace(d.MetadataURL)
		if mdURL != "" {
			cfg[samlURLKey] = mdURL
		}
	default:
		// metadata already uploaded to the gateway, nothing to carry
	}

	urls := []string{}
	for _, u := range d.RedirectURLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) > 0 {
		encoded, _ := json.Marshal(urls)
		cfg[samlRedirectURLsKey] = string(encoded)
	}
}
