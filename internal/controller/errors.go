/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package controller

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error taxonomy for a reconciliation attempt.
//
// Every failure that leaves Reconcile is one of these types (possibly wrapped),
// so the error policy can label it without string matching.
// =============================================================================

// Error class labels, used in logs and metrics.
const (
	ClassValidation   = "validation"
	ClassConflict     = "conflict"
	ClassStore        = "store"
	ClassEventPublish = "event_publish"
	ClassUnknown      = "unknown"
)

// ValidationError reports a structurally invalid object. Retrying the same
// object cannot succeed; the key is still rescheduled so a fix is picked up.
type ValidationError struct {
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid object %q: %s", e.Name, e.Reason)
}

// ConflictError reports optimistic-concurrency conflicts that outlasted the
// bounded retry.
type ConflictError struct {
	Err error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict retries exhausted: %v", e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// StoreError wraps a failed read or write against the API server.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// EventPublishError wraps a failure to record a lifecycle event.
type EventPublishError struct {
	Reason string
	Err    error
}

func (e *EventPublishError) Error() string {
	return fmt.Sprintf("failed to publish %s event: %v", e.Reason, e.Err)
}

func (e *EventPublishError) Unwrap() error { return e.Err }

// FinalizerOp names the metadata step of the finalizer protocol that failed.
type FinalizerOp string

const (
	FinalizerAdd    FinalizerOp = "add"
	FinalizerRemove FinalizerOp = "remove"
)

// FinalizerError wraps a failure while adding or removing the finalizer.
type FinalizerError struct {
	Op  FinalizerOp
	Err error
}

func (e *FinalizerError) Error() string {
	return fmt.Sprintf("failed to %s finalizer: %v", e.Op, e.Err)
}

func (e *FinalizerError) Unwrap() error { return e.Err }

// Classify returns the class label of the root cause of err.
func Classify(err error) string {
	var (
		validationErr *ValidationError
		publishErr    *EventPublishError
		conflictErr   *ConflictError
		storeErr      *StoreError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return ClassValidation
	case errors.As(err, &publishErr):
		return ClassEventPublish
	case errors.As(err, &conflictErr):
		return ClassConflict
	case errors.As(err, &storeErr):
		return ClassStore
	default:
		return ClassUnknown
	}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
