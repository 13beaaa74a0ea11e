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

// Package hll implements a HyperLogLog cardinality estimator using the
// improved estimator of Ertl (arXiv:1702.01284). By default a sketch
// uses a dense 6-bits-per-register packed array from the start. A sketch
// created with WithSparse starts in a sparse, list-backed representation
// and promotes itself, once, to the dense array once enough distinct
// registers have been touched.
package hll
