// Copyright 2025 walteh LLC
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

package runner

import (
	"github.com/walteh/waclone/pkg/rules"
)

// 📄 FileOutcome is the transient per-file report of one worker: consumed by
// the ProgressSink and folded into the Result, never persisted.
type FileOutcome struct {
	Path     string
	Category rules.Category
	Err      error
}

// Success reports whether the file was rewritten and written back.
func (o FileOutcome) Success() bool {
	return o.Err == nil
}

// 📊 CategoryResult is the frozen per-category accounting of a run.
type CategoryResult struct {
	Found     int // files enumerated
	Succeeded int // files rewritten and written back
	Failed    int // files that hit a read or write error
}

// 📊 Result is the aggregated summary of one run. It is only written by the
// runner's single aggregator and frozen before being returned; an
// interrupted run returns it partially filled, alongside the error.
type Result struct {
	Categories map[rules.Category]CategoryResult
}

func newResult() *Result {
	return &Result{Categories: make(map[rules.Category]CategoryResult, len(rules.Categories()))}
}

// Category returns the frozen counts for one category.
func (r *Result) Category(c rules.Category) CategoryResult {
	return r.Categories[c]
}

// Total sums the counts across categories.
func (r *Result) Total() CategoryResult {
	var total CategoryResult
	for _, cr := range r.Categories {
		total.Found += cr.Found
		total.Succeeded += cr.Succeeded
		total.Failed += cr.Failed
	}
	return total
}
