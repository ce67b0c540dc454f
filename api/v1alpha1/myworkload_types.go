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

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Kind is the kind name of the MyWorkLoad resource.
const Kind = "MyWorkLoad"

// =============================================================================
// MyWorkLoadSpec defines the desired state of MyWorkLoad.
//
// Users declare which image to run and how many replicas they want.
// The controller never writes to the spec.
// =============================================================================
type MyWorkLoadSpec struct {
	// Image is the container image reference for the workload.
	//
	// +required
	// +kubebuilder:validation:MinLength=1
	Image string `json:"image"`

	// Replicas is the desired number of replicas.
	//
	// +required
	// +kubebuilder:validation:Minimum=0
	// +kubebuilder:validation:Maximum=255
	Replicas uint8 `json:"replicas"`
}

// =============================================================================
// MyWorkLoadStatus defines the observed state of MyWorkLoad.
//
// Written by the controller with server-side apply on the status subresource.
// Other field managers may own other status fields.
// =============================================================================
type MyWorkLoadStatus struct {
	// Hidden is derived from the spec on every reconciliation.
	Hidden bool `json:"hidden"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=mywl
// +kubebuilder:printcolumn:name="Image",type=string,JSONPath=`.spec.image`
// +kubebuilder:printcolumn:name="Replicas",type=integer,JSONPath=`.spec.replicas`
// +kubebuilder:printcolumn:name="Hidden",type=boolean,JSONPath=`.status.hidden`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// MyWorkLoad is the Schema for the myworkloads API
type MyWorkLoad struct {
	metav1.TypeMeta `json:",inline"`

	// metadata is a standard object metadata
	// +optional
	metav1.ObjectMeta `json:"metadata,omitzero"`

	// spec defines the desired state of MyWorkLoad
	// +required
	Spec MyWorkLoadSpec `json:"spec"`

	// status defines the observed state of MyWorkLoad
	// +optional
	Status MyWorkLoadStatus `json:"status,omitzero"`
}

// IsAlive reports whether deletion has not been requested for the object.
func (w *MyWorkLoad) IsAlive() bool {
	return w.DeletionTimestamp.IsZero()
}

// +kubebuilder:object:root=true

// MyWorkLoadList contains a list of MyWorkLoad
type MyWorkLoadList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitzero"`
	Items           []MyWorkLoad `json:"items"`
}

func init() {
	SchemeBuilder.Register(&MyWorkLoad{}, &MyWorkLoadList{})
}
