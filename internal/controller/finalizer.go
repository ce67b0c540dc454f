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

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/client-go/util/retry"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

// FinalizerPatchBackoff bounds the conflict retries of a finalizer patch:
// 5 attempts, 10ms apart. Exhaustion surfaces as a ConflictError.
var FinalizerPatchBackoff = retry.DefaultRetry

// =============================================================================
// FinalizerEvent is what the finalizer state machine hands to the handler.
//
// It has exactly two cases:
//   - Apply: the object is alive and owned by this controller
//   - Cleanup: deletion was requested and the finalizer is still present
// =============================================================================
type FinalizerEvent[T client.Object] interface {
	finalizerEvent()
}

// Apply asks the handler to drive Object toward its desired state.
type Apply[T client.Object] struct {
	Object T
}

// Cleanup asks the handler to run pre-deletion side effects for Object.
type Cleanup[T client.Object] struct {
	Object T
}

func (Apply[T]) finalizerEvent()   {}
func (Cleanup[T]) finalizerEvent() {}

// FinalizerHandler consumes one FinalizerEvent.
type FinalizerHandler[T client.Object] func(context.Context, FinalizerEvent[T]) (ctrl.Result, error)

// Finalize runs one step of the finalizer protocol for obj:
//
//	finalizer absent,  alive            -> add finalizer, then Apply
//	finalizer present, alive            -> Apply
//	finalizer present, deletion pending -> Cleanup, then remove finalizer
//	finalizer absent,  deletion pending -> nothing
//
// The finalizer is only removed after Cleanup succeeds. Metadata patches use
// the object's resourceVersion as a precondition and are retried against a
// fresh read from reader on conflict. reader should bypass the cache; when it
// is nil, c is used.
func Finalize[T client.Object](
	ctx context.Context,
	c client.Client,
	reader client.Reader,
	finalizer string,
	obj T,
	handle FinalizerHandler[T],
) (ctrl.Result, error) {
	log := logf.FromContext(ctx)
	if reader == nil {
		reader = c
	}

	hasFinalizer := controllerutil.ContainsFinalizer(obj, finalizer)
	alive := obj.GetDeletionTimestamp().IsZero()

	switch {
	case alive && !hasFinalizer:
		log.Info("Adding finalizer", "finalizer", finalizer)
		updated, err := patchFinalizer(ctx, c, reader, obj, finalizer, FinalizerAdd)
		if err != nil {
			return ctrl.Result{}, err
		}
		if !updated.GetDeletionTimestamp().IsZero() {
			// Deletion was requested while the finalizer was being added.
			log.Info("Object is being deleted, re-evaluating finalizer state")
			return Finalize(ctx, c, reader, finalizer, updated, handle)
		}
		return handle(ctx, Apply[T]{Object: updated})

	case alive:
		return handle(ctx, Apply[T]{Object: obj})

	case hasFinalizer:
		result, err := handle(ctx, Cleanup[T]{Object: obj})
		if err != nil {
			log.Info("Cleanup failed, keeping finalizer", "error", err.Error())
			return ctrl.Result{}, err
		}
		log.Info("Removing finalizer", "finalizer", finalizer)
		if _, err := patchFinalizer(ctx, c, reader, obj, finalizer, FinalizerRemove); err != nil {
			return ctrl.Result{}, err
		}
		return result, nil

	default:
		return ctrl.Result{}, nil
	}
}

// patchFinalizer adds or removes finalizer with an optimistic-lock merge
// patch. The first attempt uses obj as handed in; every retry re-reads the
// object through reader first and never re-sends stale data. A finalizer is
// never added to an object whose deletion was requested.
func patchFinalizer[T client.Object](
	ctx context.Context,
	c client.Client,
	reader client.Reader,
	obj T,
	finalizer string,
	op FinalizerOp,
) (T, error) {
	key := client.ObjectKeyFromObject(obj)
	current := obj
	storeOp := "patch finalizers"
	attempt := 0

	err := retry.RetryOnConflict(FinalizerPatchBackoff, func() error {
		if attempt > 0 {
			fresh, err := newObjectLike(c, obj)
			if err != nil {
				return err
			}
			if err := reader.Get(ctx, key, fresh); err != nil {
				if op == FinalizerRemove && apierrors.IsNotFound(err) {
					// Nothing left to unblock.
					return nil
				}
				storeOp = "get object"
				return err
			}
			current = fresh
		}
		attempt++
		storeOp = "patch finalizers"

		base, ok := current.DeepCopyObject().(client.Object)
		if !ok {
			return fmt.Errorf("%T is not a client.Object", current)
		}
		if op == FinalizerAdd && !current.GetDeletionTimestamp().IsZero() {
			return nil
		}
		var changed bool
		if op == FinalizerAdd {
			changed = controllerutil.AddFinalizer(current, finalizer)
		} else {
			changed = controllerutil.RemoveFinalizer(current, finalizer)
		}
		if !changed {
			return nil
		}
		return c.Patch(ctx, current, client.MergeFromWithOptions(base, client.MergeFromWithOptimisticLock{}))
	})
	if err != nil {
		if apierrors.IsConflict(err) {
			return current, &FinalizerError{Op: op, Err: &ConflictError{Err: err}}
		}
		return current, &FinalizerError{Op: op, Err: &StoreError{Op: storeOp, Err: err}}
	}
	return current, nil
}

// newObjectLike returns an empty object of the same kind as obj, so a fresh
// read is never decoded on top of stale fields.
func newObjectLike[T client.Object](c client.Client, obj T) (T, error) {
	var zero T
	gvk, err := c.GroupVersionKindFor(obj)
	if err != nil {
		return zero, err
	}
	fresh, err := c.Scheme().New(gvk)
	if err != nil {
		return zero, err
	}
	typed, ok := fresh.(T)
	if !ok {
		return zero, fmt.Errorf("scheme returned %T for %s", fresh, gvk)
	}
	return typed, nil
}
