// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// JPEG markers handled by the segment walker.
const (
	jpegSOI  = 0xD8
	jpegEOI  = 0xD9
	jpegSOS  = 0xDA
	jpegTEM  = 0x01
	jpegRST0 = 0xD0
	jpegRST7 = 0xD7
	jpegAPP0 = 0xE0
	jpegAPP2 = 0xE2 // ICC profile, kept
	jpegAPPE = 0xEE // Adobe colour transform, kept
	jpegAPPF = 0xEF
	jpegCOM  = 0xFE
)

// pngDroppedChunks carry free text, EXIF or modification times.
var pngDroppedChunks = map[string]struct{}{
	"tEXt": {},
	"zTXt": {},
	"iTXt": {},
	"eXIf": {},
	"tIME": {},
}

// metadataFreeImages have no container for EXIF or XMP.
var metadataFreeImages = map[string]struct{}{
	"image/bmp":                {},
	"image/x-ms-bmp":           {},
	"image/x-icon":             {},
	"image/vnd.microsoft.icon": {},
}

func stripMetadata(data []byte, mimeType string) ([]byte, error) {
	mediaType := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}

	switch mediaType {
	case "image/jpeg", "image/jpg", "image/pjpeg":
		return stripJPEG(data)
	case "image/png":
		return stripPNG(data)
	case "image/webp":
		return stripWebP(data)
	case "image/gif":
		return stripGIF(data)
	}

	if _, ok := metadataFreeImages[mediaType]; ok {
		return data, nil
	}
	if strings.HasPrefix(mediaType, "image/") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, mediaType)
	}
	return data, nil
}

// stripJPEG copies every segment up to the first SOS except APP1 (EXIF,
// XMP), APP3–APP13, APP15 and COM. Entropy-coded data after SOS is copied
// verbatim.
func stripJPEG(data []byte) ([]byte, error) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != jpegSOI {
		return nil, ErrMalformedImage
	}

	out := make([]byte, 0, len(data))
	out = append(out, 0xFF, jpegSOI)

	i := 2
	for i < len(data) {
		if data[i] != 0xFF {
			return nil, ErrMalformedImage
		}
		for i < len(data) && data[i] == 0xFF {
			i++
		}
		if i >= len(data) {
			return nil, ErrMalformedImage
		}
		marker := data[i]
		i++

		switch {
		case marker == jpegEOI:
			return append(out, 0xFF, jpegEOI), nil
		case marker == jpegTEM || (marker >= jpegRST0 && marker <= jpegRST7):
			out = append(out, 0xFF, marker)
			continue
		}

		if i+2 > len(data) {
			return nil, ErrMalformedImage
		}
		segLen := int(binary.BigEndian.Uint16(data[i:]))
		if segLen < 2 || i+segLen > len(data) {
			return nil, ErrMalformedImage
		}

		if marker == jpegSOS {
			out = append(out, 0xFF, marker)
			return append(out, data[i:]...), nil
		}
		if !dropJPEGSegment(marker) {
			out = append(out, 0xFF, marker)
			out = append(out, data[i:i+segLen]...)
		}
		i += segLen
	}

	return out, nil
}

func dropJPEGSegment(marker byte) bool {
	if marker == jpegCOM {
		return true
	}
	if marker <= jpegAPP0 || marker > jpegAPPF {
		return false
	}
	return marker != jpegAPP2 && marker != jpegAPPE
}

// stripPNG copies every chunk up to IEND except text, EXIF and time chunks.
// Chunk CRCs are copied untouched since kept chunks are not modified.
func stripPNG(data []byte) ([]byte, error) {
	if len(data) < len(pngSignature) || !bytes.Equal(data[:len(pngSignature)], pngSignature) {
		return nil, ErrMalformedImage
	}

	out := make([]byte, 0, len(data))
	out = append(out, pngSignature...)

	i := len(pngSignature)
	for i < len(data) {
		if i+8 > len(data) {
			return nil, ErrMalformedImage
		}
		chunkLen := int(binary.BigEndian.Uint32(data[i:]))
		chunkType := string(data[i+4 : i+8])
		end := i + 12 + chunkLen
		if chunkLen < 0 || end > len(data) || end < i {
			return nil, ErrMalformedImage
		}

		if _, drop := pngDroppedChunks[chunkType]; !drop {
			out = append(out, data[i:end]...)
		}
		i = end

		if chunkType == "IEND" {
			return out, nil
		}
	}

	return nil, ErrMalformedImage
}

// WebP container layout.
const (
	riffHeaderLen = 12
	vp8xFlagXMP   = 0x04
	vp8xFlagEXIF  = 0x08
)

// stripWebP drops the EXIF and XMP chunks of a RIFF/WEBP file, clears the
// matching VP8X feature flags and rewrites the RIFF size.
func stripWebP(data []byte) ([]byte, error) {
	if len(data) < riffHeaderLen || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		return nil, ErrMalformedImage
	}
	riffEnd := 8 + int(binary.LittleEndian.Uint32(data[4:8]))
	if riffEnd > len(data) || riffEnd < riffHeaderLen {
		return nil, ErrMalformedImage
	}

	out := make([]byte, riffHeaderLen, riffEnd)
	copy(out, data[:riffHeaderLen])

	i := riffHeaderLen
	for i < riffEnd {
		if i+8 > riffEnd {
			return nil, ErrMalformedImage
		}
		chunkType := string(data[i : i+4])
		size := int(binary.LittleEndian.Uint32(data[i+4 : i+8]))
		end := i + 8 + size + size%2
		if size < 0 || end > riffEnd || end < i {
			return nil, ErrMalformedImage
		}

		switch chunkType {
		case "EXIF", "XMP ":
		case "VP8X":
			if size < 1 {
				return nil, ErrMalformedImage
			}
			start := len(out)
			out = append(out, data[i:end]...)
			out[start+8] &^= vp8xFlagEXIF | vp8xFlagXMP
		default:
			out = append(out, data[i:end]...)
		}
		i = end
	}

	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))
	return out, nil
}

// GIF block introducers and extension labels.
const (
	gifExtension   = 0x21
	gifImage       = 0x2C
	gifTrailer     = 0x3B
	gifComment     = 0xFE
	gifApplication = 0xFF
	gifColorTable  = 0x80
)

// gifKeptApplications control animation looping.
var gifKeptApplications = map[string]struct{}{
	"NETSCAPE2.0": {},
	"ANIMEXTS1.0": {},
}

// stripGIF drops comment extensions and application extensions other than
// the looping ones. XMP is stored as an application extension.
func stripGIF(data []byte) ([]byte, error) {
	if len(data) < 13 || (string(data[:6]) != "GIF87a" && string(data[:6]) != "GIF89a") {
		return nil, ErrMalformedImage
	}

	i := 13 + gifColorTableLen(data[10])
	if i > len(data) {
		return nil, ErrMalformedImage
	}
	out := make([]byte, 0, len(data))
	out = append(out, data[:i]...)

	for i < len(data) {
		start := i
		switch data[i] {
		case gifTrailer:
			return append(out, gifTrailer), nil
		case gifExtension:
			if i+2 > len(data) {
				return nil, ErrMalformedImage
			}
			label := data[i+1]
			end, err := skipGIFSubBlocks(data, i+2)
			if err != nil {
				return nil, err
			}
			if !dropGIFExtension(label, data[i+2:end]) {
				out = append(out, data[start:end]...)
			}
			i = end
		case gifImage:
			if i+10 > len(data) {
				return nil, ErrMalformedImage
			}
			i += 10 + gifColorTableLen(data[i+9])
			// LZW minimum code size precedes the image data sub-blocks.
			end, err := skipGIFSubBlocks(data, i+1)
			if err != nil {
				return nil, err
			}
			out = append(out, data[start:end]...)
			i = end
		default:
			return nil, ErrMalformedImage
		}
	}

	return nil, ErrMalformedImage
}

func gifColorTableLen(packed byte) int {
	if packed&gifColorTable == 0 {
		return 0
	}
	return 3 << (int(packed&0x07) + 1)
}

// skipGIFSubBlocks returns the offset just past the block terminator of the
// sub-block sequence starting at i.
func skipGIFSubBlocks(data []byte, i int) (int, error) {
	for {
		if i >= len(data) {
			return 0, ErrMalformedImage
		}
		n := int(data[i])
		i++
		if n == 0 {
			return i, nil
		}
		i += n
	}
}

func dropGIFExtension(label byte, body []byte) bool {
	switch label {
	case gifComment:
		return true
	case gifApplication:
		if len(body) < 12 || body[0] != 11 {
			return true
		}
		_, keep := gifKeptApplications[string(body[1:12])]
		return !keep
	default:
		return false
	}
}
