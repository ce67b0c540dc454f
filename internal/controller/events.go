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
	"context"
	"fmt"

	eventsv1 "k8s.io/api/events/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/reference"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// Event is a lifecycle event about a single object.
type Event struct {
	// Type is corev1.EventTypeNormal or corev1.EventTypeWarning
	Type   string
	Reason string
	Note   string
	Action string
}

// =============================================================================
// EventPublisher writes events.k8s.io/v1 Events through the API client.
//
// Unlike record.EventRecorder it is synchronous and returns the create error,
// so callers can refuse to make progress until an event is stored.
// =============================================================================
type EventPublisher struct {
	client      client.Client
	scheme      *runtime.Scheme
	diagnostics *Diagnostics
}

// NewEventPublisher returns a publisher reporting as diagnostics.Reporter().
func NewEventPublisher(c client.Client, scheme *runtime.Scheme, diagnostics *Diagnostics) *EventPublisher {
	return &EventPublisher{client: c, scheme: scheme, diagnostics: diagnostics}
}

// Publish records ev against obj.
func (p *EventPublisher) Publish(ctx context.Context, obj client.Object, ev Event) error {
	ref, err := reference.GetReference(p.scheme, obj)
	if err != nil {
		return fmt.Errorf("building object reference: %w", err)
	}

	now := p.diagnostics.Touch()
	reporter := p.diagnostics.Reporter()

	namespace := ref.Namespace
	if namespace == "" {
		namespace = metav1.NamespaceDefault
	}

	event := &eventsv1.Event{
		ObjectMeta: metav1.ObjectMeta{
			Name:      fmt.Sprintf("%v.%x", ref.Name, now.UnixNano()),
			Namespace: namespace,
		},
		EventTime:           metav1.NewMicroTime(now),
		ReportingController: reporter.Controller,
		ReportingInstance:   reporter.Instance,
		Action:              ev.Action,
		Reason:              ev.Reason,
		Regarding:           *ref,
		Note:                ev.Note,
		Type:                ev.Type,
	}
	return p.client.Create(ctx, event)
}
