/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package mar

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ContainerType is the MP? header's byte-3 type code.
type ContainerType byte

const (
	TypeCompressed ContainerType = 'C'
	TypeImage      ContainerType = 'I'
	TypeThumbImage ContainerType = 'T'
	TypeExtended   ContainerType = 'X'
)

const (
	maxThumbLength = 80_000
	maxImageLength = 10_000_000
)

// Container is a decoded MP? image container: the optional comment and the
// image bytes (full image, or just the thumbnail when read with thumb=true).
type Container struct {
	Type    ContainerType
	Comment string
	Data    []byte
}

// ReadContainer decodes the MP? container at r's current position. When
// thumb is true, only the embedded thumbnail is read (the container must be
// of type T); otherwise the comment and full image are read.
func ReadContainer(r io.ReadSeeker, thumb bool) (*Container, error) {
	var buf [16]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("mar: read container header: %w", err)
	}
	if string(buf[0:2]) != "MP" {
		return nil, fmt.Errorf("mar: not an MP container")
	}

	typ := ContainerType(buf[2])

	var (
		mode          byte
		headerLen     int
		commentLength uint32
		thumbLength   uint32
		imageLength   uint32
	)

	switch typ {
	case TypeCompressed:
		mode, headerLen = 220, 7
		commentLength = binary.LittleEndian.Uint32(buf[3:7])
	case TypeImage:
		mode, headerLen = 220, 3
	case TypeThumbImage:
		mode, headerLen = buf[3], 16
		commentLength = binary.LittleEndian.Uint32(buf[4:8])
		thumbLength = binary.LittleEndian.Uint32(buf[8:12])
		imageLength = binary.LittleEndian.Uint32(buf[12:16])
	case TypeExtended:
		mode, headerLen = buf[3], 8
		commentLength = binary.LittleEndian.Uint32(buf[4:8])
	default:
		return nil, fmt.Errorf("mar: unknown container type %q", byte(typ))
	}

	if headerLen != len(buf) {
		if _, err := r.Seek(int64(headerLen-len(buf)), io.SeekCurrent); err != nil {
			return nil, fmt.Errorf("mar: rewind past header: %w", err)
		}
	}

	if thumb {
		if typ != TypeThumbImage {
			return nil, fmt.Errorf("mar: container type %q has no thumbnail", byte(typ))
		}
		if thumbLength > maxThumbLength {
			return nil, fmt.Errorf("mar: thumbnail too large (%d bytes)", thumbLength)
		}
		data, err := readXored(r, int(thumbLength), mode)
		if err != nil {
			return nil, fmt.Errorf("mar: read thumbnail: %w", err)
		}
		return &Container{Type: typ, Data: data}, nil
	}

	if thumbLength > 0 {
		if _, err := r.Seek(int64(thumbLength), io.SeekCurrent); err != nil {
			return nil, fmt.Errorf("mar: skip thumbnail: %w", err)
		}
	}

	var comment string
	if commentLength > 0 {
		bytes, err := readXored(r, int(commentLength), mode)
		if err != nil {
			return nil, fmt.Errorf("mar: read comment: %w", err)
		}
		comment = string(bytes)
	}

	if imageLength > maxImageLength {
		return nil, fmt.Errorf("mar: image too large (%d bytes)", imageLength)
	}

	var (
		data []byte
		err  error
	)
	if imageLength == 0 {
		data, err = readAllXored(r, mode)
	} else {
		data, err = readXored(r, int(imageLength), mode)
	}
	if err != nil {
		return nil, fmt.Errorf("mar: read image: %w", err)
	}

	return &Container{Type: typ, Comment: comment, Data: data}, nil
}
