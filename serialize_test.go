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
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestS5SerializationRoundTrip: add 1e5 random 8-byte inputs, serialize,
// deserialize into a fresh sketch; cardinality, every register, and the
// histogram must match exactly.
func TestS5SerializationRoundTrip(t *testing.T) {
	const p = 8
	s, err := NewSketch(p)
	require.NoError(t, err)

	buf := make([]byte, 8)
	for i := 0; i < 100_000; i++ {
		_, readErr := rand.Read(buf)
		require.NoError(t, readErr)
		s.Add(buf)
	}

	want := s.Cardinality()
	snapshot := s.Serialize()

	restored, err := Deserialize(snapshot, p)
	require.NoError(t, err)

	require.Equal(t, want, restored.Cardinality())
	require.Equal(t, s.Histogram(), restored.Histogram())

	for i := uint64(0); i < s.Size(); i++ {
		v1, _ := s.GetRegister(i)
		v2, _ := restored.GetRegister(i)
		require.Equal(t, v1, v2, "register %d", i)
	}
}

func TestSerializeDeserializeSparse(t *testing.T) {
	s, err := NewSketch(10, WithSparse(), WithMaxListSize(1<<20))
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		s.Add([]byte{byte(i), byte(i * 3)})
	}

	snapshot := s.Serialize()
	restored, err := Deserialize(snapshot, 10)
	require.NoError(t, err)

	require.True(t, restored.IsSparse())
	require.Equal(t, s.Cardinality(), restored.Cardinality())
	require.Equal(t, s.Added(), restored.Added())

	for i := uint64(0); i < s.Size(); i++ {
		v1, _ := s.GetRegister(i)
		v2, _ := restored.GetRegister(i)
		require.Equal(t, v1, v2, "register %d", i)
	}
}

func TestSerializePreservesCachedEstimate(t *testing.T) {
	s, err := NewSketch(10)
	require.NoError(t, err)
	s.Add([]byte("x"))

	want := s.EstimateCardinality()
	snapshot := s.Serialize()

	restored, err := Deserialize(snapshot, 10)
	require.NoError(t, err)
	require.True(t, restored.cacheValid)
	require.Equal(t, want, restored.cacheValue)
}

func TestDeserializeRejectsTruncatedSnapshot(t *testing.T) {
	_, err := Deserialize([]byte{1, 2, 3}, 10)
	require.ErrorIs(t, err, ErrSerializationFormat)
}

func TestDeserializeRejectsBadPrecision(t *testing.T) {
	s, _ := NewSketch(10)
	_, err := Deserialize(s.Serialize(), 0)
	require.ErrorIs(t, err, ErrParameterOutOfRange)
}

func TestCompressedBytesRoundTrip(t *testing.T) {
	s, err := NewSketch(12)
	require.NoError(t, err)

	for i := 0; i < 5000; i++ {
		s.Add([]byte{byte(i), byte(i >> 8)})
	}

	compressed, err := s.CompressedBytes()
	require.NoError(t, err)
	require.Less(t, len(compressed), len(s.Serialize())+9)

	restored, err := FromCompressedBytes(compressed, 12)
	require.NoError(t, err)
	require.Equal(t, s.Cardinality(), restored.Cardinality())

	for i := uint64(0); i < s.Size(); i++ {
		v1, _ := s.GetRegister(i)
		v2, _ := restored.GetRegister(i)
		require.Equal(t, v1, v2, "register %d", i)
	}
}
