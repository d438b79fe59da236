// romcheck
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of romcheck.
//
// romcheck is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// romcheck is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with romcheck.  If not, see <http://www.gnu.org/licenses/>.

package archive

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ZaparooProject/go-gameid/chd"
	"github.com/ZaparooProject/romcheck/pkg/rom"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// HunkSource is a compressed image that can only be decompressed one hunk at
// a time.
type HunkSource interface {
	io.Closer
	HunkBytes() int
	HunkCount() int
	// ReadHunk decompresses hunk index into dst, which is HunkBytes long,
	// and returns the number of valid bytes.
	ReadHunk(index int, dst []byte) (int, error)
}

// CHDOpener opens a CHD image for hunk reads.
type CHDOpener func(path string) (HunkSource, error)

// ReadHunks decompresses hunks from src in order until limit bytes have been
// collected or the hunks run out. The result is exactly
// min(limit, total payload) bytes long.
func ReadHunks(src HunkSource, limit int) ([]byte, error) {
	hunkBytes := src.HunkBytes()
	if hunkBytes <= 0 {
		return nil, fmt.Errorf("%w: invalid hunk size %d", rom.ErrCodec, hunkBytes)
	}

	out := make([]byte, 0, limit)
	buf := make([]byte, hunkBytes)
	for i := 0; i < src.HunkCount() && len(out) < limit; i++ {
		n, err := src.ReadHunk(i, buf)
		if err != nil {
			return nil, fmt.Errorf("%w: hunk %d: %w", rom.ErrCodec, i, err)
		}
		n = min(n, limit-len(out))
		out = append(out, buf[:n]...)
		if n < hunkBytes {
			break
		}
	}
	return out, nil
}

// ExtractCHD opens the image at path and returns its leading header window
// of at most rom.MaxPayloadSize bytes.
func ExtractCHD(path string, open CHDOpener) ([]byte, error) {
	src, err := open(path)
	if err != nil {
		return nil, &rom.ArchiveError{Path: path, Op: "open chd", Err: err}
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			log.Debug().Err(closeErr).Str("path", path).Msg("failed to close chd")
		}
	}()

	data, err := ReadHunks(src, rom.MaxPayloadSize)
	if err != nil {
		return nil, &rom.ArchiveError{Path: path, Op: "read chd", Err: err}
	}
	log.Debug().Str("path", path).Int("hunk_bytes", src.HunkBytes()).
		Int("bytes", len(data)).Msg("extracted chd header window")
	return data, nil
}

var chdMagic = []byte("MComprHD")

// CHDHeader holds the fields of a CHD v3-v5 header needed to walk hunks.
type CHDHeader struct {
	Version      uint32
	HunkBytes    uint32
	LogicalBytes uint64
}

const chdHeaderMaxLen = 124

// ReadCHDHeader parses the fixed header at the start of a CHD file.
func ReadCHDHeader(r io.Reader) (*CHDHeader, error) {
	var raw [chdHeaderMaxLen]byte
	n, err := io.ReadFull(r, raw[:])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to read chd header: %w", err)
	}
	b := raw[:n]
	if len(b) < 16 || !bytes.Equal(b[:8], chdMagic) {
		return nil, fmt.Errorf("%w: not a chd file", rom.ErrCodec)
	}

	h := &CHDHeader{Version: binary.BigEndian.Uint32(b[12:])}
	var logicalAt, hunkAt, need int
	switch h.Version {
	case 3:
		logicalAt, hunkAt, need = 28, 76, 120
	case 4:
		logicalAt, hunkAt, need = 28, 44, 108
	case 5:
		logicalAt, hunkAt, need = 32, 56, 124
	default:
		return nil, fmt.Errorf("%w: unsupported chd version %d", rom.ErrCodec, h.Version)
	}
	if len(b) < need {
		return nil, fmt.Errorf("%w: truncated v%d header", rom.ErrCodec, h.Version)
	}
	h.LogicalBytes = binary.BigEndian.Uint64(b[logicalAt:])
	h.HunkBytes = binary.BigEndian.Uint32(b[hunkAt:])
	return h, nil
}

// HunkCount is the number of hunks covering the header's logical size.
func (h *CHDHeader) HunkCount() int {
	if h.HunkBytes == 0 {
		return 0
	}
	return int((h.LogicalBytes + uint64(h.HunkBytes) - 1) / uint64(h.HunkBytes))
}

// ErrCHDNeedsOSFs is returned when a CHD is opened through a filesystem
// other than the OS one. go-gameid decompresses from real paths only.
var ErrCHDNeedsOSFs = errors.New("chd images can only be read from the OS filesystem")

// chdImage adapts a go-gameid CHD to HunkSource. Hunks are windows of the
// first data track, sized by the header's hunk size, so only the hunks that
// back the first window are ever decompressed. The count is bounded by both
// the header's logical size and the data track.
type chdImage struct {
	file      io.Closer
	track     io.ReaderAt
	trackSize int64
	hunkBytes int
	maxHunks  int
}

func (c *chdImage) HunkBytes() int { return c.hunkBytes }

func (c *chdImage) HunkCount() int {
	trackHunks := int((c.trackSize + int64(c.hunkBytes) - 1) / int64(c.hunkBytes))
	return min(trackHunks, c.maxHunks)
}

func (c *chdImage) ReadHunk(index int, dst []byte) (int, error) {
	off := int64(index) * int64(c.hunkBytes)
	want := min(int64(len(dst)), c.trackSize-off)
	if want <= 0 {
		return 0, nil
	}
	n, err := c.track.ReadAt(dst[:want], off)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, err
	}
	return n, nil
}

func (c *chdImage) Close() error {
	return c.file.Close()
}

// NewCHDOpener returns an opener that reads headers and decompresses hunks
// with go-gameid. fs must be the OS filesystem; any other filesystem yields
// an opener that fails with ErrCHDNeedsOSFs.
func NewCHDOpener(fs afero.Fs) CHDOpener {
	if _, ok := fs.(*afero.OsFs); !ok {
		return func(string) (HunkSource, error) {
			return nil, ErrCHDNeedsOSFs
		}
	}
	return func(path string) (HunkSource, error) {
		f, err := fs.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		hdr, err := ReadCHDHeader(f)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		if hdr.HunkBytes == 0 {
			return nil, fmt.Errorf("%w: zero hunk size", rom.ErrCodec)
		}

		file, err := chd.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", rom.ErrCodec, err)
		}
		return &chdImage{
			file:      file,
			track:     file.DataTrackSectorReader(),
			trackSize: int64(file.DataTrackSize()),
			hunkBytes: int(hdr.HunkBytes),
			maxHunks:  hdr.HunkCount(),
		}, nil
	}
}
