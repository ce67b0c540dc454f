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
	"fmt"

	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	mywlv1alpha1 "github.com/vijay-papanaboina/myworkload-operator/api/v1alpha1"
)

// =============================================================================
// Helper functions for the MyWorkLoad controller.
//
// These don't talk to the API server; they compute what the reconciler
// writes.
// =============================================================================

// desiredStatus derives the status the controller wants to publish.
//
// Placement and scaling are handled elsewhere; hidden is always false here.
func desiredStatus(_ mywlv1alpha1.MyWorkLoadSpec) mywlv1alpha1.MyWorkLoadStatus {
	return mywlv1alpha1.MyWorkLoadStatus{Hidden: false}
}

// statusApplyConfiguration is the server-side apply body for the status
// subresource. Only apiVersion, kind and status are sent, so fields owned by
// other managers are left alone.
type statusApplyConfiguration struct {
	APIVersion string                        `json:"apiVersion"`
	Kind       string                        `json:"kind"`
	Status     mywlv1alpha1.MyWorkLoadStatus `json:"status"`
}

// statusApplyPatch builds the apply patch for status. The encoding is
// deterministic: the same status always yields the same bytes.
func statusApplyPatch(status mywlv1alpha1.MyWorkLoadStatus) (client.Patch, error) {
	body, err := json.Marshal(statusApplyConfiguration{
		APIVersion: mywlv1alpha1.GroupVersion.String(),
		Kind:       mywlv1alpha1.Kind,
		Status:     status,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding status patch: %w", err)
	}
	return client.RawPatch(types.ApplyPatchType, body), nil
}

// validateObject rejects objects that must never be written to.
func validateObject(w *mywlv1alpha1.MyWorkLoad) error {
	if w.Name == ReservedName {
		return &ValidationError{Name: w.Name, Reason: fmt.Sprintf("name %q is reserved", ReservedName)}
	}
	return nil
}
