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

import "time"

// =============================================================================
// Constants for the MyWorkLoad operator.
//
// These are used for:
// - Finalizer management (cleanup before deletion)
// - Server-side apply of the status subresource
// - Requeue scheduling
// - Lifecycle events
// =============================================================================

// Finalizer name used to ensure cleanup happens before deletion
const FinalizerName = "myworkloads.org.mars/finalizer"

// FieldManager is the server-side apply identity for status patches.
// It must stay stable across releases or ownership of status fields is lost.
const FieldManager = "cntrlr"

// ReservedName is a name no MyWorkLoad may carry. Objects using it are
// rejected before any write.
const ReservedName = "illegal"

// ControllerName is used for the controller, the default event reporter
// and metric prefixes.
const ControllerName = "myworkload-controller"

// =============================================================================
// Scheduling intervals.
// =============================================================================
const (
	// ResyncInterval is how long a healthy object waits before it is
	// reconciled again without any watch event.
	ResyncInterval = 60 * time.Second

	// ErrorBackoff is the fixed delay before a failed object is retried.
	// Failures are retried forever at this interval.
	ErrorBackoff = 10 * time.Second
)

// =============================================================================
// Event reasons and actions published on lifecycle transitions.
// =============================================================================
const (
	// ReasonDeleteRequested is published once cleanup runs for an object
	ReasonDeleteRequested = "DeleteRequested"

	// ActionDeleting is the action recorded alongside ReasonDeleteRequested
	ActionDeleting = "Deleting"
)
