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

import "errors"

// Sentinel errors identifying the failure kinds a caller can match with
// errors.Is. Constructors and accessors wrap these with fmt.Errorf so the
// resulting message carries context without losing the underlying kind.
var (
	// ErrParameterOutOfRange is returned by NewSketch when p is outside [2, 63].
	ErrParameterOutOfRange = errors.New("hll: parameter out of range")

	// ErrAllocationFailure is returned by NewSketch when the requested
	// register storage could not be allocated.
	ErrAllocationFailure = errors.New("hll: allocation failure")

	// ErrSizeMismatch is returned by Merge when the two sketches have
	// different register counts.
	ErrSizeMismatch = errors.New("hll: size mismatch")

	// ErrIndexOutOfRange is returned by GetRegister when the index is >= m.
	ErrIndexOutOfRange = errors.New("hll: index out of range")

	// ErrSerializationFormat is returned by Deserialize when the byte
	// slice is truncated or internally inconsistent.
	ErrSerializationFormat = errors.New("hll: malformed serialized sketch")

	// ErrTypeMismatch is returned when a caller-supplied value is not a
	// byte sequence where one was required. The core never produces this
	// itself (Go's type system prevents it); it exists so binding layers
	// built on top of this package have a matching sentinel to surface.
	ErrTypeMismatch = errors.New("hll: value is not a byte sequence")
)
