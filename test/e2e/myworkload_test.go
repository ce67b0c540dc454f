//go:build e2e
// +build e2e

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

package e2e

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vijay-papanaboina/myworkload-operator/test/utils"
)

var _ = Describe("MyWorkLoad lifecycle", Ordered, func() {
	const namespace = "mywl-e2e"

	BeforeAll(func() {
		By("creating the test namespace")
		_, _ = utils.Run(exec.Command("kubectl", "create", "ns", namespace))
	})

	AfterAll(func() {
		By("cleaning up the test namespace")
		_, _ = utils.Run(exec.Command("kubectl", "delete", "ns", namespace, "--ignore-not-found"))
	})

	apply := func(name string) {
		manifest := fmt.Sprintf(`
apiVersion: org.mars/v1alpha1
kind: MyWorkLoad
metadata:
  name: %s
  namespace: %s
spec:
  image: nginx
  replicas: 3
`, name, namespace)
		cmd := exec.Command("kubectl", "apply", "-f", "-")
		cmd.Stdin = stringReader(manifest)
		_, err := utils.Run(cmd)
		Expect(err).NotTo(HaveOccurred())
	}

	jsonpath := func(name, path string) (string, error) {
		return utils.Run(exec.Command("kubectl", "get", "myworkload", name, "-n", namespace,
			"-o", "jsonpath="+path))
	}

	It("should claim the object and publish its status", func() {
		apply("sample")

		Eventually(func() (string, error) {
			return jsonpath("sample", "{.metadata.finalizers}")
		}, 60*time.Second, 2*time.Second).Should(ContainSubstring("myworkloads.org.mars/finalizer"))

		Eventually(func() (string, error) {
			return jsonpath("sample", "{.status.hidden}")
		}, 60*time.Second, 2*time.Second).Should(Equal("false"))

		By("checking the status field manager")
		out, err := jsonpath("sample", "{.metadata.managedFields[?(@.subresource=='status')].manager}")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("cntrlr"))
	})

	It("should clean up before the object disappears", func() {
		_, err := utils.Run(exec.Command("kubectl", "delete", "myworkload", "sample", "-n", namespace, "--wait=false"))
		Expect(err).NotTo(HaveOccurred())

		Eventually(func() bool {
			_, err := jsonpath("sample", "{.metadata.name}")
			return err != nil && strings.Contains(err.Error(), "NotFound")
		}, 60*time.Second, 2*time.Second).Should(BeTrue())

		out, err := utils.Run(exec.Command("kubectl", "get", "events.events.k8s.io", "-n", namespace,
			"--field-selector", "reason=DeleteRequested", "-o", "jsonpath={.items[*].regarding.name}"))
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("sample"))
	})

	It("should never write to an object with the reserved name", func() {
		apply("illegal")

		Consistently(func() (string, error) {
			return jsonpath("illegal", "{.metadata.finalizers}{.status}")
		}, 15*time.Second, 3*time.Second).Should(BeEmpty())

		_, _ = utils.Run(exec.Command("kubectl", "delete", "myworkload", "illegal", "-n", namespace))
	})
})
