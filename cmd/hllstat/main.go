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

// Command hllstat is a small demonstration of the hll package: it
// builds two sketches from random input, reports their estimates,
// round-trips one through disk, and merges them together.
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"

	"github.com/sigmatau/hll"
)

const snapshotPath = "/tmp/hllstat.snapshot"

func main() {
	a, err := hll.NewSketch(14, hll.WithSparse())
	if err != nil {
		log.Fatalf("new sketch a: %v", err)
	}
	b, err := hll.NewSketch(14, hll.WithSparse())
	if err != nil {
		log.Fatalf("new sketch b: %v", err)
	}

	feed(a, 50000)
	feed(b, 50000)

	fmt.Printf("a: %s\n", a)
	fmt.Printf("b: %s\n", b)

	snapshot := a.Serialize()
	if err := os.WriteFile(snapshotPath, snapshot, 0o644); err != nil {
		log.Fatalf("write snapshot: %v", err)
	}

	onDisk, err := os.ReadFile(snapshotPath)
	if err != nil {
		log.Fatalf("read snapshot: %v", err)
	}

	reloaded, err := hll.Deserialize(onDisk, 14)
	if err != nil {
		log.Fatalf("deserialize snapshot: %v", err)
	}
	fmt.Printf("a reloaded from %s: %s\n", snapshotPath, reloaded)

	if err := a.Merge(b); err != nil {
		log.Fatalf("merge b into a: %v", err)
	}
	fmt.Printf("a ∪ b: %s\n", a)
}

func feed(s *hll.Sketch, n int) {
	buf := make([]byte, 8)
	for i := 0; i < n; i++ {
		if _, err := rand.Read(buf); err != nil {
			log.Fatalf("read random bytes: %v", err)
		}
		s.Add(buf)
	}
}
