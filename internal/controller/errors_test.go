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
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Error classification", func() {
	cause := errors.New("boom")

	DescribeTable("Classify",
		func(err error, want string) {
			Expect(Classify(err)).To(Equal(want))
		},
		Entry("nil", nil, ""),
		Entry("validation", &ValidationError{Name: "illegal", Reason: "reserved"}, ClassValidation),
		Entry("conflict", &ConflictError{Err: cause}, ClassConflict),
		Entry("store", &StoreError{Op: "patch status", Err: cause}, ClassStore),
		Entry("event publish", &EventPublishError{Reason: ReasonDeleteRequested, Err: cause}, ClassEventPublish),
		Entry("conflict inside finalizer",
			&FinalizerError{Op: FinalizerAdd, Err: &ConflictError{Err: cause}}, ClassConflict),
		Entry("store inside finalizer",
			&FinalizerError{Op: FinalizerRemove, Err: &StoreError{Op: "patch finalizers", Err: cause}}, ClassStore),
		Entry("wrapped with fmt", fmt.Errorf("reconcile: %w", &ValidationError{Name: "x"}), ClassValidation),
		Entry("plain error", cause, ClassUnknown),
	)

	It("should keep the original cause reachable", func() {
		err := &FinalizerError{Op: FinalizerRemove, Err: &StoreError{Op: "patch finalizers", Err: cause}}
		Expect(errors.Is(err, cause)).To(BeTrue())
		Expect(err.Error()).To(Equal("failed to remove finalizer: failed to patch finalizers: boom"))
	})

	It("should detect validation errors", func() {
		Expect(IsValidation(&ValidationError{Name: ReservedName})).To(BeTrue())
		Expect(IsValidation(&StoreError{Err: cause})).To(BeFalse())
	})
})
