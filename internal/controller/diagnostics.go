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
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// EventReporter identifies who publishes lifecycle events.
type EventReporter struct {
	Controller string `json:"controller"`
	Instance   string `json:"instance,omitempty"`
}

// =============================================================================
// Diagnostics is the state shared by every reconciliation.
//
// The reporter is fixed at construction. The last-event timestamp is bumped
// under the write lock right before an event is published; everything else
// reads under the read lock.
// =============================================================================
type Diagnostics struct {
	clock clock.PassiveClock

	mu        sync.RWMutex
	lastEvent time.Time
	reporter  EventReporter
}

// DiagnosticsSnapshot is a point-in-time copy of Diagnostics.
type DiagnosticsSnapshot struct {
	LastEvent time.Time     `json:"last_event"`
	Reporter  EventReporter `json:"reporter"`
}

// NewDiagnostics returns Diagnostics for reporter with the last-event time
// set to now.
func NewDiagnostics(reporter EventReporter, clk clock.PassiveClock) *Diagnostics {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Diagnostics{
		clock:     clk,
		lastEvent: clk.Now(),
		reporter:  reporter,
	}
}

// Touch records that an event is about to be published and returns the
// recorded time.
func (d *Diagnostics) Touch() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastEvent = d.clock.Now()
	return d.lastEvent
}

// LastEvent returns when the last event was published, or the start time.
func (d *Diagnostics) LastEvent() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastEvent
}

// Reporter returns the identity used when publishing events.
func (d *Diagnostics) Reporter() EventReporter {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.reporter
}

// Snapshot returns a consistent copy of the diagnostics state.
func (d *Diagnostics) Snapshot() DiagnosticsSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return DiagnosticsSnapshot{LastEvent: d.lastEvent, Reporter: d.reporter}
}

// ServeHTTP writes the snapshot as JSON.
func (d *Diagnostics) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(d.Snapshot()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
