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

	"sigs.k8s.io/controller-runtime/pkg/client"

	mywlv1alpha1 "github.com/vijay-papanaboina/myworkload-operator/api/v1alpha1"
)

// InstallHint tells an operator how to fix a failed CheckQueryable.
const InstallHint = "Installation: kubectl apply -f config/crd/bases/org.mars_myworkloads.yaml"

// CheckQueryable verifies the MyWorkLoad CRD is installed and listable.
// reader should bypass the cache: the check runs before the manager starts.
func CheckQueryable(ctx context.Context, reader client.Reader) error {
	var list mywlv1alpha1.MyWorkLoadList
	if err := reader.List(ctx, &list, client.Limit(1)); err != nil {
		return fmt.Errorf("MyWorkLoad CRD is not queryable: %w", err)
	}
	return nil
}
