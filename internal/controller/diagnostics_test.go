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
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	testingclock "k8s.io/utils/clock/testing"
)

var _ = Describe("Diagnostics", func() {
	var (
		start time.Time
		clk   *testingclock.FakeClock
		diag  *Diagnostics
	)

	BeforeEach(func() {
		start = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		clk = testingclock.NewFakeClock(start)
		diag = NewDiagnostics(EventReporter{Controller: ControllerName, Instance: "pod-0"}, clk)
	})

	It("should start with the creation time as last event", func() {
		Expect(diag.LastEvent()).To(Equal(start))
		Expect(diag.Reporter()).To(Equal(EventReporter{Controller: ControllerName, Instance: "pod-0"}))
	})

	It("should move the last event forward on Touch", func() {
		clk.Step(time.Minute)
		Expect(diag.Touch()).To(Equal(start.Add(time.Minute)))
		Expect(diag.LastEvent()).To(Equal(start.Add(time.Minute)))
	})

	It("should serve a JSON snapshot", func() {
		rec := httptest.NewRecorder()
		diag.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/diagnostics", nil))

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))

		var snapshot DiagnosticsSnapshot
		Expect(json.Unmarshal(rec.Body.Bytes(), &snapshot)).To(Succeed())
		Expect(snapshot.LastEvent.Equal(start)).To(BeTrue())
		Expect(snapshot.Reporter.Instance).To(Equal("pod-0"))
	})

	It("should tolerate concurrent readers and writers", func() {
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				diag.Touch()
			}()
			go func() {
				defer wg.Done()
				_ = diag.Snapshot()
			}()
		}
		wg.Wait()
		Expect(diag.LastEvent()).To(Equal(start))
	})

	It("should default to the real clock", func() {
		d := NewDiagnostics(EventReporter{Controller: ControllerName}, nil)
		Expect(d.LastEvent()).To(BeTemporally("~", time.Now(), time.Second))
	})
})
