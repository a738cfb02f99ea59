// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package provider

import (
	"context"
	"errors"
	"sync/atomic"
)

// SaveState tracks where a save attempt currently is. All transitions
// are synchronous except Submitting, which suspends on the network
// call to the tenant management API.
type SaveState int32

const (
	SaveIdle SaveState = iota
	SaveValidating
	SaveNormalizing
	SaveSubmitting
)

// SaveOutcome is the terminal result of one save attempt.
type SaveOutcome int32

const (
	// provider accepted by the backend, editor can close
	SaveOutcomeSaved SaveOutcome = iota

	// validation found field errors, nothing was submitted
	SaveOutcomeInvalid

	// submission failed, operator edits are intact for retry
	SaveOutcomeFailed

	// another save is in flight, this attempt was a no-op
	SaveOutcomeBusy
)

// SaveResult carries the outcome of a save attempt back to the UI
// layer. Errors is populated only for the invalid outcome, Message
// only for failures.
type SaveResult struct {
	Outcome SaveOutcome
	Errors  FieldErrors
	Message string
	Err     error
}

// genericSaveError is the form level banner text for failures the
// backend did not explain.
const genericSaveError = "failed to save the provider, please try again"

// Submitter submits a normalized provider config to the tenant
// management API.
type Submitter interface {
	PutProvider(ctx context.Context, tenant string, cfg *ProviderConfig) error
}

// gatewayMessenger is implemented by submission errors carrying a
// provider supplied message, e.g. a SAML gateway rejecting uploaded
// metadata. Such messages are surfaced verbatim instead of the
// generic failure text.
type gatewayMessenger interface {
	GatewayMessage() string
}

// AuditRecorder receives one record per terminal save attempt.
// Recording is best effort and must not fail the save.
type AuditRecorder interface {
	RecordSave(ctx context.Context, tenant, thirdPartyId, outcome, message string)
}

// Saver sequences validate, normalize, submit and refresh for one
// editing session. A single submission may be outstanding at a time,
// a save issued while another is in flight is a no-op rather than a
// cancel and retry.
type Saver struct {
	// Recorder, when set, gets an audit record per terminal attempt
	Recorder AuditRecorder

	// OnSuccess, when set, runs after a successful submission,
	// typically triggering a tenant detail refetch
	OnSuccess func(ctx context.Context, tenant string)

	submitter Submitter
	state     atomic.Int32
}

// NewSaver returns a saver submitting through the given submitter.
func NewSaver(submitter Submitter) *Saver {
	return &Saver{submitter: submitter}
}

// State returns the current position of the save state machine.
func (s *Saver) State() SaveState {
	return SaveState(s.state.Load())
}

// Save runs one attempt: validate the state, normalize it and submit
// the result, keeping the operator's edits untouched throughout so a
// failed attempt can be retried as-is. existingIDs is the tenant's
// provider id snapshot used for the uniqueness check.
func (s *Saver) Save(ctx context.Context, tenant string, st *EditorState, existingIDs []string) *SaveResult {
	if !s.state.CompareAndSwap(int32(SaveIdle), int32(SaveValidating)) {
		return &SaveResult{Outcome: SaveOutcomeBusy}
	}

	errs := Validate(st, existingIDs)
	if !errs.Empty() {
		s.state.Store(int32(SaveIdle))
		return &SaveResult{Outcome: SaveOutcomeInvalid, Errors: errs}
	}

	s.state.Store(int32(SaveNormalizing))
	cfg := Normalize(st)

	s.state.Store(int32(SaveSubmitting))
	err := s.submitter.PutProvider(ctx, tenant, cfg)
	s.state.Store(int32(SaveIdle))

	if err != nil {
		result := &SaveResult{
			Outcome: SaveOutcomeFailed,
			Message: genericSaveError,
			Err:     err,
		}
		var gw gatewayMessenger
		if errors.As(err, &gw) {
			result.Message = gw.GatewayMessage()
		}
		s.record(ctx, tenant, cfg.ThirdPartyID, "failed", result.Message)
		return result
	}

	s.record(ctx, tenant, cfg.ThirdPartyID, "saved", "")
	if s.OnSuccess != nil {
		s.OnSuccess(ctx, tenant)
	}
	return &SaveResult{Outcome: SaveOutcomeSaved}
}

func (s *Saver) record(ctx context.Context, tenant, id, outcome, message string) {
	if s.Recorder != nil {
		s.Recorder.RecordSave(ctx, tenant, id, outcome, message)
	}
}
