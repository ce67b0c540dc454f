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
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	mywlv1alpha1 "github.com/vijay-papanaboina/myworkload-operator/api/v1alpha1"
	"github.com/vijay-papanaboina/myworkload-operator/internal/monitoring"
)

// =============================================================================
// MyWorkLoadReconciler reconciles a MyWorkLoad object.
//
// Every trigger goes through the finalizer state machine (finalizer.go), which
// hands the object either to apply (object alive) or to cleanup (deletion
// requested). Failures are turned into a fixed-backoff requeue by errorPolicy.
//
// Related files:
// - constants.go: finalizer name, field manager, intervals, event reasons
// - errors.go: error taxonomy and classification
// - helpers.go: desired status and the status apply patch
// - events.go / diagnostics.go: lifecycle events and their reporter state
// =============================================================================
type MyWorkLoadReconciler struct {
	client.Client
	Scheme *runtime.Scheme

	// APIReader reads around the cache when a finalizer patch has to be
	// retried. Defaults to the Client.
	APIReader client.Reader

	// Diagnostics supplies the event reporter and records the last event.
	Diagnostics *Diagnostics

	// MaxConcurrentReconciles bounds the number of keys processed in
	// parallel. A single key is never processed by two workers at once.
	MaxConcurrentReconciles int
}

// +kubebuilder:rbac:groups=org.mars,resources=myworkloads,verbs=get;list;watch;patch
// +kubebuilder:rbac:groups=org.mars,resources=myworkloads/status,verbs=get;patch
// +kubebuilder:rbac:groups=org.mars,resources=myworkloads/finalizers,verbs=update
// +kubebuilder:rbac:groups=events.k8s.io,resources=events,verbs=create;patch

// =============================================================================
// Reconcile runs one reconciliation attempt for a MyWorkLoad.
//
// It never returns an error: failures are logged, counted and rescheduled
// after ErrorBackoff, so no key is ever dropped.
// =============================================================================
func (r *MyWorkLoadReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	start := time.Now()
	result, err := r.reconcile(ctx, req)
	monitoring.RecordReconcile(time.Since(start))
	if err != nil {
		return r.errorPolicy(ctx, req, err), nil
	}
	return result, nil
}

func (r *MyWorkLoadReconciler) reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := logf.FromContext(ctx)
	log.Info("Starting reconciliation", "myworkload", req.NamespacedName)

	// -------------------------------------------------------------------------
	// Step 1: Fetch the MyWorkLoad
	// -------------------------------------------------------------------------
	var workload mywlv1alpha1.MyWorkLoad
	if err := r.Get(ctx, req.NamespacedName, &workload); err != nil {
		if apierrors.IsNotFound(err) {
			log.Info("MyWorkLoad not found, likely deleted")
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, &StoreError{Op: "get MyWorkLoad", Err: err}
	}

	// -------------------------------------------------------------------------
	// Step 2: Reject invalid live objects before anything is written to them,
	// including the finalizer
	// -------------------------------------------------------------------------
	if workload.IsAlive() {
		if err := validateObject(&workload); err != nil {
			return ctrl.Result{}, err
		}
	}

	// -------------------------------------------------------------------------
	// Step 3: Finalizer state machine -> apply or cleanup
	// -------------------------------------------------------------------------
	return Finalize(ctx, r.Client, r.APIReader, FinalizerName, &workload, r.handle)
}

// handle dispatches a finalizer event to apply or cleanup.
func (r *MyWorkLoadReconciler) handle(ctx context.Context, event FinalizerEvent[*mywlv1alpha1.MyWorkLoad]) (ctrl.Result, error) {
	switch ev := event.(type) {
	case Apply[*mywlv1alpha1.MyWorkLoad]:
		return r.apply(ctx, ev.Object)
	case Cleanup[*mywlv1alpha1.MyWorkLoad]:
		return r.cleanup(ctx, ev.Object)
	default:
		return ctrl.Result{}, fmt.Errorf("unexpected finalizer event %T", event)
	}
}

// apply publishes the desired status with server-side apply and schedules
// the next resync.
func (r *MyWorkLoadReconciler) apply(ctx context.Context, workload *mywlv1alpha1.MyWorkLoad) (ctrl.Result, error) {
	log := logf.FromContext(ctx)

	if workload.Namespace == "" {
		panic(fmt.Sprintf("MyWorkLoad %q has no namespace", workload.Name))
	}
	if err := validateObject(workload); err != nil {
		return ctrl.Result{}, err
	}

	status := desiredStatus(workload.Spec)
	patch, err := statusApplyPatch(status)
	if err != nil {
		return ctrl.Result{}, err
	}
	if err := r.Status().Patch(ctx, workload, patch, client.FieldOwner(FieldManager), client.ForceOwnership); err != nil {
		return ctrl.Result{}, &StoreError{Op: "patch status", Err: err}
	}

	log.Info("Reconciliation complete", "hidden", status.Hidden, "requeueAfter", ResyncInterval)
	return ctrl.Result{RequeueAfter: ResyncInterval}, nil
}

// cleanup publishes the DeleteRequested event. The finalizer is only removed
// by the caller once this returns without error.
func (r *MyWorkLoadReconciler) cleanup(ctx context.Context, workload *mywlv1alpha1.MyWorkLoad) (ctrl.Result, error) {
	log := logf.FromContext(ctx)

	event := Event{
		Type:   corev1.EventTypeNormal,
		Reason: ReasonDeleteRequested,
		Note:   fmt.Sprintf("Delete `%s`", workload.Name),
		Action: ActionDeleting,
	}
	events := NewEventPublisher(r.Client, r.Scheme, r.Diagnostics)
	if err := events.Publish(ctx, workload, event); err != nil {
		return ctrl.Result{}, &EventPublishError{Reason: ReasonDeleteRequested, Err: err}
	}

	log.Info("Cleanup complete", "reason", ReasonDeleteRequested)
	// The finalizer removal or a force delete triggers the next event.
	return ctrl.Result{}, nil
}

// errorPolicy decides what happens after a failed attempt: every class is
// retried after ErrorBackoff. Rejected objects are a user problem and are
// logged at info level.
func (r *MyWorkLoadReconciler) errorPolicy(ctx context.Context, req ctrl.Request, err error) ctrl.Result {
	log := logf.FromContext(ctx)

	class := Classify(err)
	if IsValidation(err) {
		log.Info("Rejected invalid MyWorkLoad",
			"myworkload", req.NamespacedName,
			"reason", err.Error(),
			"retryAfter", ErrorBackoff)
	} else {
		log.Error(err, "Reconciliation failed",
			"myworkload", req.NamespacedName,
			"class", class,
			"retryAfter", ErrorBackoff)
	}
	monitoring.RecordFailure(class)

	return ctrl.Result{RequeueAfter: ErrorBackoff}
}

// =============================================================================
// SetupWithManager registers the controller with the Manager.
//
// The workqueue behind it deduplicates triggers per namespace/name and never
// hands a key to a second worker while it is in flight.
// =============================================================================
func (r *MyWorkLoadReconciler) SetupWithManager(mgr ctrl.Manager) error {
	if r.APIReader == nil {
		r.APIReader = mgr.GetAPIReader()
	}
	if r.Diagnostics == nil {
		r.Diagnostics = NewDiagnostics(EventReporter{Controller: ControllerName}, nil)
	}
	return ctrl.NewControllerManagedBy(mgr).
		For(&mywlv1alpha1.MyWorkLoad{}).
		WithOptions(controller.Options{
			MaxConcurrentReconciles: r.MaxConcurrentReconciles,
			RateLimiter:             FixedBackoffRateLimiter[reconcile.Request](),
		}).
		Named("myworkload").
		Complete(r)
}
