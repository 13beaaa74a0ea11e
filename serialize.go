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
	"encoding/binary"
	"fmt"
	"math"
)

// wireVersion identifies the snapshot layout. Bit 0 doubles as the
// isSparse flag so a reader can tell dense and sparse snapshots apart
// from word 0 alone, the same bit-packed header word the teacher's
// schema_version.go uses to fold multiple booleans/small fields into a
// single word.
const wireVersion = 1

const (
	wordVersion = iota
	wordAdded
	wordListSize
	wordIsCached
	wordCache
	wordNodeCacheIndex
	wordReserved
	wordHistogramStart
)

const headerWords = wordHistogramStart + histogramSize

// Serialize produces a lossless big-endian snapshot of the sketch's
// full internal state: header words, the histogram, then either M dense
// registers or listSize (index, rank) sparse pairs in ascending index
// order, per the storage spec's persistence format. The precision, the
// hash seed and the sparse thresholds are not written: Deserialize takes
// p from its caller and restores the sketch with DefaultSeed and the
// default thresholds.
func (s *Sketch) Serialize() []byte {
	var listSize uint64
	var entries []sparseEntry
	if s.isSparse {
		entries = s.sparse.entries()
		listSize = uint64(len(entries))
	}

	var registerWords uint64
	if s.isSparse {
		registerWords = listSize * 2
	} else {
		registerWords = s.m
	}

	buf := make([]byte, (uint64(headerWords)+registerWords)*8)

	versionWord := uint64(wireVersion) << 1
	if s.isSparse {
		versionWord |= 1
	}

	putWord(buf, wordVersion, versionWord)
	putWord(buf, wordAdded, s.added)
	putWord(buf, wordListSize, listSize)
	if s.cacheValid {
		putWord(buf, wordIsCached, 1)
		putWord(buf, wordCache, math.Float64bits(s.cacheValue))
	}
	if s.isSparse {
		putWord(buf, wordNodeCacheIndex, s.sparse.cacheIndex())
	}

	for v := 0; v < histogramSize; v++ {
		putWord(buf, wordHistogramStart+v, s.hist.counts[v])
	}

	base := uint64(headerWords * 8)
	if s.isSparse {
		for i, e := range entries {
			off := base + uint64(i)*16
			binary.BigEndian.PutUint64(buf[off:], uint64(e.index))
			binary.BigEndian.PutUint64(buf[off+8:], uint64(e.rank))
		}
	} else {
		for i := uint64(0); i < s.m; i++ {
			off := base + i*8
			binary.BigEndian.PutUint64(buf[off:], uint64(s.dense.get(i)))
		}
	}

	return buf
}

// Deserialize reconstructs a sketch from a snapshot produced by
// Serialize, with precision p (m = 2^p) supplied separately since the
// wire format does not carry p explicitly; the caller is expected to
// know the precision it serialized with, the same contract the storage
// spec's persistence format assumes.
func Deserialize(data []byte, p uint8) (*Sketch, error) {
	if len(data) < headerWords*8 {
		return nil, fmt.Errorf("snapshot shorter than header (%d bytes): %w", len(data), ErrSerializationFormat)
	}
	if p < minPrecision || p > maxPrecision {
		return nil, fmt.Errorf("p=%d: %w", p, ErrParameterOutOfRange)
	}

	versionWord := getWord(data, wordVersion)
	version := versionWord >> 1
	isSparse := versionWord&1 == 1
	if version != wireVersion {
		return nil, fmt.Errorf("unknown snapshot version %d: %w", version, ErrSerializationFormat)
	}

	m := uint64(1) << p

	s := &Sketch{
		p:             p,
		m:             m,
		seed:          DefaultSeed,
		sparseEnabled: isSparse,
		isSparse:      isSparse,
		added:         getWord(data, wordAdded),
	}

	hist := &histogram{}
	for v := 0; v < histogramSize; v++ {
		hist.counts[v] = getWord(data, wordHistogramStart+v)
	}
	s.hist = hist

	listSize := getWord(data, wordListSize)
	base := uint64(headerWords * 8)

	if isSparse {
		needed := base + listSize*16
		if uint64(len(data)) < needed {
			return nil, fmt.Errorf("snapshot too short for %d sparse entries: %w", listSize, ErrSerializationFormat)
		}
		entries := make([]sparseEntry, listSize)
		for i := uint64(0); i < listSize; i++ {
			off := base + i*16
			entries[i] = sparseEntry{
				index: uint32(binary.BigEndian.Uint64(data[off:])),
				rank:  uint8(binary.BigEndian.Uint64(data[off+8:])),
			}
		}

		maxListSize := int(m / defaultMaxListDivisor)
		if maxListSize < 1 {
			maxListSize = 1
		}
		sparse := newSparseStore(maxListSize, defaultMaxBufferEntries, hist)
		sparse.loadEntries(entries)
		sparse.setCacheByIndex(getWord(data, wordNodeCacheIndex))
		s.sparse = sparse
	} else {
		needed := base + m*8
		if uint64(len(data)) < needed {
			return nil, fmt.Errorf("snapshot too short for %d dense registers: %w", m, ErrSerializationFormat)
		}
		dense := newDenseStore(m)
		for i := uint64(0); i < m; i++ {
			off := base + i*8
			dense.set(i, uint8(binary.BigEndian.Uint64(data[off:])))
		}
		s.dense = dense
	}

	if getWord(data, wordIsCached) == 1 {
		s.cacheValid = true
		s.cacheValue = math.Float64frombits(getWord(data, wordCache))
	}

	return s, nil
}

func putWord(buf []byte, word int, v uint64) {
	binary.BigEndian.PutUint64(buf[word*8:], v)
}

func getWord(buf []byte, word int) uint64 {
	return binary.BigEndian.Uint64(buf[word*8:])
}
