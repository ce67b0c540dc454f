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
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"
)

var _ = Describe("CheckQueryable", func() {
	ctx := context.Background()

	It("should pass when MyWorkLoads can be listed", func() {
		env := newTestEnv(interceptor.Funcs{}, newWorkload("sample"))
		Expect(CheckQueryable(ctx, env.client)).To(Succeed())
	})

	It("should list with a limit of one", func() {
		var limit int64
		env := newTestEnv(interceptor.Funcs{
			List: func(ctx context.Context, c client.WithWatch, list client.ObjectList, opts ...client.ListOption) error {
				limit = (&client.ListOptions{}).ApplyOptions(opts).Limit
				return c.List(ctx, list, opts...)
			},
		})
		Expect(CheckQueryable(ctx, env.client)).To(Succeed())
		Expect(limit).To(Equal(int64(1)))
	})

	It("should fail when the API server rejects the list", func() {
		env := newTestEnv(interceptor.Funcs{
			List: func(context.Context, client.WithWatch, client.ObjectList, ...client.ListOption) error {
				return errors.New("the server could not find the requested resource")
			},
		})
		Expect(CheckQueryable(ctx, env.client)).To(MatchError(ContainSubstring("not queryable")))
	})

	It("should fail when the kind is not registered", func() {
		bare := runtime.NewScheme()
		Expect(clientgoscheme.AddToScheme(bare)).To(Succeed())
		c := fake.NewClientBuilder().WithScheme(bare).Build()

		Expect(CheckQueryable(ctx, c)).NotTo(Succeed())
	})
})
