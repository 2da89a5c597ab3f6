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

package rules

import (
	"fmt"
)

// ❌ ResourceError reports an input resource (workbook, sheet, folder) that
// cannot be used. A batch never runs against a partial resource.
type ResourceError struct {
	Path   string // Resource location
	Reason string // What was wrong with it
	Err    error  // Underlying cause, may be nil
}

func (e *ResourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resource %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("resource %s: %s", e.Path, e.Reason)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
