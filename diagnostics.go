/*
 * Copyright 2026 hll authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License"): you may
 * not use this file except in compliance with the License. You may obtain
 * a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
 * WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
 * License for the specific language governing permissions and limitations
 * under the License.
 */

package hll

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// String renders a one-line human-readable summary of the sketch,
// intended for logs and debugging rather than as part of any committed
// wire or display format.
func (s *Sketch) String() string {
	rep := "dense"
	if s.isSparse {
		rep = "sparse"
	}
	return fmt.Sprintf("hll(p=%d, m=%d, %s, ~%s, n≈%d)",
		s.p, s.m, rep, humanize.Bytes(s.MemoryUsage()), s.Cardinality())
}
