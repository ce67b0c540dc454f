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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/apimachinery/pkg/types"

	mywlv1alpha1 "github.com/vijay-papanaboina/myworkload-operator/api/v1alpha1"
)

var _ = Describe("Helpers", func() {
	Describe("statusApplyPatch", func() {
		It("should only carry apiVersion, kind and status", func() {
			patch, err := statusApplyPatch(mywlv1alpha1.MyWorkLoadStatus{Hidden: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(patch.Type()).To(Equal(types.ApplyPatchType))

			body, err := patch.Data(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(body).To(MatchJSON(`{"apiVersion":"org.mars/v1alpha1","kind":"MyWorkLoad","status":{"hidden":true}}`))
		})

		It("should be byte-for-byte stable", func() {
			first, err := statusApplyPatch(mywlv1alpha1.MyWorkLoadStatus{})
			Expect(err).NotTo(HaveOccurred())
			second, err := statusApplyPatch(mywlv1alpha1.MyWorkLoadStatus{})
			Expect(err).NotTo(HaveOccurred())

			a, _ := first.Data(nil)
			b, _ := second.Data(nil)
			Expect(a).To(Equal(b))
		})
	})

	Describe("desiredStatus", func() {
		It("should not depend on the replica count", func() {
			Expect(desiredStatus(mywlv1alpha1.MyWorkLoadSpec{Image: "nginx", Replicas: 0})).
				To(Equal(desiredStatus(mywlv1alpha1.MyWorkLoadSpec{Image: "nginx", Replicas: 255})))
		})
	})

	Describe("validateObject", func() {
		It("should reject the reserved name", func() {
			err := validateObject(newWorkload(ReservedName))
			Expect(IsValidation(err)).To(BeTrue())
			Expect(err).To(MatchError(ContainSubstring("reserved")))
		})

		It("should accept any other name", func() {
			Expect(validateObject(newWorkload("illegal-but-not-quite"))).To(Succeed())
		})
	})
})
