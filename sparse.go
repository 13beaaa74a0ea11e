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

import "sort"

// sparseNode is one entry of the sorted, strictly-ascending-by-index
// singly linked list of non-zero registers.
type sparseNode struct {
	index uint32
	rank  uint8
	next  *sparseNode
}

// sparseEntry is a pending, unsorted (index, rank) pair waiting in the
// insert buffer for the next flush.
type sparseEntry struct {
	index uint32
	rank  uint8
}

// sparseStore is the list-plus-buffer representation used while a
// sketch is mostly empty. It shares its histogram with the owning
// Sketch so promotion and merge never have to reconcile two separate
// bookkeeping structures.
type sparseStore struct {
	head      *sparseNode
	length    int
	buffer    []sparseEntry
	maxBuffer int
	maxList   int
	nodeCache *sparseNode
	hist      *histogram
}

// newSparseStore allocates an empty sparse store. hist must already be
// initialized to h[0] == m (newHistogram does this).
func newSparseStore(maxList, maxBuffer int, hist *histogram) *sparseStore {
	return &sparseStore{
		maxBuffer: maxBuffer,
		maxList:   maxList,
		hist:      hist,
	}
}

// add appends (index, rank) to the insert buffer, flushing first if the
// buffer is already full. It returns true if, after this call, the list
// has crossed the promotion threshold and the sketch should call
// promoteToDense.
func (s *sparseStore) add(index uint32, rank uint8) bool {
	if len(s.buffer) == s.maxBuffer {
		s.flush()
	}
	s.buffer = append(s.buffer, sparseEntry{index: index, rank: rank})
	return s.length >= s.maxList
}

// flush sort-merges the buffer into the list in a single forward pass.
// Buffered entries are sorted by (index, rank) first, so the scan
// position only ever moves forward; predecessor tracks the node
// immediately before the current scan position so each subsequent
// buffered entry can resume scanning there instead of restarting at
// head, per the storage spec's amortization rule.
func (s *sparseStore) flush() {
	if len(s.buffer) == 0 {
		return
	}

	sort.Slice(s.buffer, func(i, j int) bool {
		if s.buffer[i].index != s.buffer[j].index {
			return s.buffer[i].index < s.buffer[j].index
		}
		return s.buffer[i].rank < s.buffer[j].rank
	})

	var predecessor *sparseNode

	for _, e := range s.buffer {
		if s.head == nil {
			node := &sparseNode{index: e.index, rank: e.rank}
			s.head = node
			s.hist.bump(0, e.rank)
			s.length++
			continue
		}

		cursor := s.head
		if predecessor != nil {
			cursor = predecessor.next
		}
		for cursor != nil && cursor.index < e.index {
			predecessor = cursor
			cursor = cursor.next
		}

		if cursor != nil && cursor.index == e.index {
			if e.rank > cursor.rank {
				s.hist.bump(cursor.rank, e.rank)
				cursor.rank = e.rank
			}
			continue
		}

		node := &sparseNode{index: e.index, rank: e.rank, next: cursor}
		if predecessor == nil {
			s.head = node
		} else {
			predecessor.next = node
		}
		s.hist.bump(0, e.rank)
		s.length++
	}

	s.buffer = s.buffer[:0]
	s.nodeCache = nil
}

// get returns the rank stored at index, or 0 if the slot is unset. Any
// pending buffered entries are flushed first so the answer reflects all
// prior adds.
func (s *sparseStore) get(index uint32) uint8 {
	if len(s.buffer) > 0 {
		s.flush()
	}

	node := s.head
	if s.nodeCache != nil && s.nodeCache.index <= index {
		node = s.nodeCache
	}

	for node != nil {
		if node.index == index {
			s.nodeCache = node
			return node.rank
		}
		if node.index > index {
			break
		}
		node = node.next
	}
	return 0
}

// promoteToDense flushes any pending buffer, copies every non-zero
// register into a freshly allocated dense store, and tears down the
// list, buffer, and node cache. The histogram is left untouched since
// its invariant (sum == m, h[v] == count of registers at v) holds
// independent of which representation is active.
func (s *sparseStore) promoteToDense(m uint64) *denseStore {
	s.flush()

	d := newDenseStore(m)
	for n := s.head; n != nil; n = n.next {
		d.set(uint64(n.index), n.rank)
	}

	s.head = nil
	s.buffer = nil
	s.nodeCache = nil
	s.length = 0

	return d
}

// noNodeCache is the sentinel nodeCacheIndex value serialized when no
// node is currently cached.
const noNodeCache = ^uint64(0)

// cacheIndex returns the index of the cached node for serialization, or
// noNodeCache if nothing is cached.
func (s *sparseStore) cacheIndex() uint64 {
	if s.nodeCache == nil {
		return noNodeCache
	}
	return uint64(s.nodeCache.index)
}

// setCacheByIndex restores the node cache after deserialization by
// scanning for the node at the given index. idx == noNodeCache leaves
// the cache empty.
func (s *sparseStore) setCacheByIndex(idx uint64) {
	if idx == noNodeCache {
		s.nodeCache = nil
		return
	}
	for n := s.head; n != nil; n = n.next {
		if uint64(n.index) == idx {
			s.nodeCache = n
			return
		}
	}
}

// entries returns every (index, rank) pair in ascending index order,
// flushing any pending buffer first. Used by serialization.
func (s *sparseStore) entries() []sparseEntry {
	s.flush()
	out := make([]sparseEntry, 0, s.length)
	for n := s.head; n != nil; n = n.next {
		out = append(out, sparseEntry{index: n.index, rank: n.rank})
	}
	return out
}

// loadEntries rebuilds the list from pre-sorted (index, rank) pairs,
// as produced by entries(). Used by deserialization.
func (s *sparseStore) loadEntries(entries []sparseEntry) {
	var prev *sparseNode
	for _, e := range entries {
		node := &sparseNode{index: e.index, rank: e.rank}
		if prev == nil {
			s.head = node
		} else {
			prev.next = node
		}
		prev = node
	}
	s.length = len(entries)
}

// sizeBytes estimates the current byte footprint: roughly the node
// count times the size of a list node, plus the buffer's capacity.
func (s *sparseStore) sizeBytes() uint64 {
	const nodeSize = 16 // index (4) + rank (1, padded to 4) + next pointer (8)
	const entrySize = 8 // index (4) + rank (1, padded to 4)
	return uint64(s.length)*nodeSize + uint64(cap(s.buffer))*entrySize
}
