// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package provider

import (
	"regexp"
	"strings"
)

// thirdPartyIdPattern is the only shape of id the backend accepts.
var thirdPartyIdPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// DeriveID computes the third party id of a new built-in or SAML
// gateway provider. The operator may supply a suffix to let multiple
// providers of the same built-in type coexist on one tenant, e.g. a
// second Google provider as "google-mycompany". An empty suffix
// reproduces the canonical built-in id. The id is immutable once the
// provider has been created.
func DeriveID(base, suffix string) string {
	suffix = strings.ToLower(strings.TrimSpace(suffix))
	if suffix == "" {
		return base
	}
	return base + "-" + suffix
}

// ValidID reports whether the given id is non empty and matches the
// lowercase alphanumeric plus hyphen shape required by the backend.
func ValidID(id string) bool {
	return thirdPartyIdPattern.MatchString(id)
}
