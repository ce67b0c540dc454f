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
	"golang.org/x/time/rate"
	"k8s.io/client-go/util/workqueue"
)

// FixedBackoffRateLimiter returns the rate limiter for the MyWorkLoad
// controller.
//
// It combines two limiters (max of both delays is used):
//   - Per-item fixed delay: ErrorBackoff on every retry, no growth.
//   - Global token bucket: 10 QPS, burst 100.
func FixedBackoffRateLimiter[T comparable]() workqueue.TypedRateLimiter[T] {
	return workqueue.NewTypedMaxOfRateLimiter(
		workqueue.NewTypedItemFastSlowRateLimiter[T](ErrorBackoff, ErrorBackoff, 0),
		&workqueue.TypedBucketRateLimiter[T]{
			Limiter: rate.NewLimiter(rate.Limit(10), 100),
		},
	)
}
