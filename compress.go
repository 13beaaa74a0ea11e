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

	"github.com/pierrec/lz4/v4"
)

// CompressedBytes returns an LZ4-compressed envelope around Serialize's
// wire payload: a big-endian uint32 giving the uncompressed length,
// followed by the compressed block. Input that LZ4 cannot compress is
// stored instead as a zero uint32, a big-endian uint32 length, and the
// raw payload. It is purely an optional transport
// optimization for callers persisting many sketches; the payload once
// decompressed is byte-identical to Serialize's output.
func (s *Sketch) CompressedBytes() ([]byte, error) {
	raw := s.Serialize()

	bound := lz4.CompressBlockBound(len(raw))
	dst := make([]byte, 4+bound)
	binary.BigEndian.PutUint32(dst, uint32(len(raw)))

	var compressor lz4.Compressor
	n, err := compressor.CompressBlock(raw, dst[4:])
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if n == 0 {
		// Incompressible input: lz4 declines to emit a block shorter
		// than the source, so fall back to storing it verbatim with a
		// sentinel length of 0 meaning "uncompressed".
		out := make([]byte, 8+len(raw))
		binary.BigEndian.PutUint32(out, 0)
		binary.BigEndian.PutUint32(out[4:], uint32(len(raw)))
		copy(out[8:], raw)
		return out, nil
	}

	return dst[:4+n], nil
}

// FromCompressedBytes reverses CompressedBytes and deserializes the
// recovered payload with precision p, the same contract Deserialize
// has for p.
func FromCompressedBytes(data []byte, p uint8) (*Sketch, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("compressed snapshot shorter than length prefix: %w", ErrSerializationFormat)
	}

	uncompressedLen := binary.BigEndian.Uint32(data)
	if uncompressedLen == 0 {
		if len(data) < 8 {
			return nil, fmt.Errorf("uncompressed fallback envelope truncated: %w", ErrSerializationFormat)
		}
		rawLen := binary.BigEndian.Uint32(data[4:])
		raw := data[8 : 8+rawLen]
		return Deserialize(raw, p)
	}

	raw := make([]byte, uncompressedLen)
	n, err := lz4.UncompressBlock(data[4:], raw)
	if err != nil {
		return nil, fmt.Errorf("lz4 uncompress: %w", err)
	}

	return Deserialize(raw[:n], p)
}
