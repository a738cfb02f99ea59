// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package table

const (
	// Console database name
	ConsoleDatabaseName = "auth-console"
)

const (
	// provider audit collection name
	ProviderAuditCollectionName = "provider-audit"
)
