// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package table

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/go-core-stack/core/db"
	"github.com/go-core-stack/core/errors"
	"github.com/go-core-stack/core/table"
)

var providerAuditTable *ProviderAuditTable

// audit actions recorded for provider configuration changes
const (
	AuditActionSave   = "save"
	AuditActionDelete = "delete"
)

// ProviderAuditKey is the key for the provider audit table.
type ProviderAuditKey struct {
	// unique id of the audit record
	Id string `bson:"id,omitempty"`
}

// ProviderAuditEntry is one record of a provider configuration change
// attempt, successful or not.
type ProviderAuditEntry struct {
	Key *ProviderAuditKey `bson:"key,omitempty"`

	// Tenant on which the provider is configured
	Tenant string `bson:"tenant,omitempty"`

	// Provider third party id the attempt was about
	Provider string `bson:"provider,omitempty"`

	// Operator who issued the change, if known
	Operator string `bson:"operator,omitempty"`

	// Action performed, save or delete
	Action string `bson:"action,omitempty"`

	// Outcome of the attempt, e.g. saved / failed / deleted
	Outcome string `bson:"outcome,omitempty"`

	// Message carries failure detail, e.g. a SAML gateway message
	Message string `bson:"message,omitempty"`

	// timestamp of the attempt
	Timestamp int64 `bson:"timestamp,omitempty"`
}

// ProviderAuditTable implements the table interface for the provider
// audit trail.
type ProviderAuditTable struct {
	table.Table[ProviderAuditKey, ProviderAuditEntry]
	col db.StoreCollection
}

// FindByTenant returns the audit records of one tenant.
func (t *ProviderAuditTable) FindByTenant(ctx context.Context, tenant string) ([]*ProviderAuditEntry, error) {
	filter := bson.M{
		"tenant": tenant,
	}
	list, err := t.FindMany(ctx, filter, 0, 0)
	if err != nil {
		return nil, err
	}

	return list, nil
}

// CountByTenant returns the number of audit records of one tenant.
func (t *ProviderAuditTable) CountByTenant(ctx context.Context, tenant string) (int64, error) {
	filter := bson.M{
		"tenant": tenant,
	}
	return t.col.Count(ctx, filter)
}

// RecordSave stores one audit record for a provider save attempt.
// Recording is best effort, a failure is logged and swallowed so it
// can never fail the save itself. Satisfies the save orchestrator's
// recorder contract.
func (t *ProviderAuditTable) RecordSave(ctx context.Context, tenant, thirdPartyId, outcome, message string) {
	t.record(ctx, tenant, thirdPartyId, "", AuditActionSave, outcome, message)
}

// RecordDelete stores one audit record for a provider deletion.
func (t *ProviderAuditTable) RecordDelete(ctx context.Context, tenant, thirdPartyId, operator, outcome string) {
	t.record(ctx, tenant, thirdPartyId, operator, AuditActionDelete, outcome, "")
}

func (t *ProviderAuditTable) record(ctx context.Context, tenant, thirdPartyId, operator, action, outcome, message string) {
	key := &ProviderAuditKey{
		Id: uuid.NewString(),
	}
	entry := &ProviderAuditEntry{
		Key:       key,
		Tenant:    tenant,
		Provider:  thirdPartyId,
		Operator:  operator,
		Action:    action,
		Outcome:   outcome,
		Message:   message,
		Timestamp: time.Now().Unix(),
	}
	err := t.Locate(ctx, key, entry)
	if err != nil {
		log.Printf("failed to record provider audit entry for %s/%s: %s", tenant, thirdPartyId, err)
	}
}

// GetProviderAuditTable returns the provider audit table instance.
func GetProviderAuditTable() (*ProviderAuditTable, error) {
	if providerAuditTable != nil {
		return providerAuditTable, nil
	}

	return nil, errors.Wrapf(errors.NotFound, "provider audit table not found")
}

// LocateProviderAuditTable locates and initializes the provider audit
// table.
func LocateProviderAuditTable(client db.StoreClient) (*ProviderAuditTable, error) {
	if providerAuditTable != nil {
		return providerAuditTable, nil
	}

	col := client.GetCollection(ConsoleDatabaseName, ProviderAuditCollectionName)

	tbl := &ProviderAuditTable{
		col: col,
	}

	err := tbl.Initialize(col)
	if err != nil {
		return nil, err
	}

	providerAuditTable = tbl

	return providerAuditTable, nil
}
