// Copyright 2016 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package smt

import (
	"context"
	"time"

	"go.opencensus.io/trace"
)

// startSpan opens an OpenCensus span named "smt.<op>" and returns a done
// func that closes the span, records the outcome in the span status, and
// feeds the package's Prometheus metrics. It's cheap when no exporter is
// registered -- opencensus spans without a sampled trace do essentially no
// work beyond a counter increment.
func startSpan(ctx context.Context, op string, attrs ...trace.Attribute) (context.Context, func(err error)) {
	ctx, span := trace.StartSpan(ctx, "smt."+op)
	if len(attrs) > 0 {
		span.AddAttributes(attrs...)
	}
	start := time.Now()
	return ctx, func(err error) {
		if err != nil {
			span.SetStatus(trace.Status{Code: int32(trace.StatusCodeUnknown), Message: err.Error()})
		}
		span.End()
		observe(op, start, err)
	}
}
