// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jpegSegment(marker byte, payload []byte) []byte {
	seg := []byte{0xFF, marker, 0, 0}
	binary.BigEndian.PutUint16(seg[2:], uint16(len(payload)+2))
	return append(seg, payload...)
}

func buildJPEG(segments ...[]byte) []byte {
	out := []byte{0xFF, 0xD8}
	for _, s := range segments {
		out = append(out, s...)
	}
	return out
}

func pngChunk(typ string, payload []byte) []byte {
	out := make([]byte, 8, 12+len(payload))
	binary.BigEndian.PutUint32(out, uint32(len(payload)))
	copy(out[4:], typ)
	out = append(out, payload...)
	crc := crc32.ChecksumIEEE(append([]byte(typ), payload...))
	return binary.BigEndian.AppendUint32(out, crc)
}

func TestStripMetadata_JPEG(t *testing.T) {
	app0 := jpegSegment(0xE0, []byte("JFIF\x00\x01\x01"))
	exif := jpegSegment(0xE1, []byte("Exif\x00\x00GPS 51.5N 0.12W"))
	icc := jpegSegment(0xE2, []byte("ICC_PROFILE\x00"))
	iptc := jpegSegment(0xED, []byte("Photoshop 3.0 camera serial"))
	comment := jpegSegment(0xFE, []byte("shot on my phone"))
	dqt := jpegSegment(0xDB, bytes.Repeat([]byte{1}, 65))
	sos := append(jpegSegment(0xDA, []byte{1, 1, 0, 0, 0x3F, 0}), 0x12, 0x34, 0xFF, 0x00, 0x56, 0xFF, 0xD9)

	img := buildJPEG(app0, exif, icc, iptc, comment, dqt, sos)

	out, err := NewFileCipher().StripMetadata(img, "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, buildJPEG(app0, icc, dqt, sos), out)
	assert.NotContains(t, string(out), "GPS")
	assert.NotContains(t, string(out), "serial")
	assert.NotContains(t, string(out), "my phone")
}

func TestStripMetadata_JPEGWithoutMetadataUnchanged(t *testing.T) {
	img := buildJPEG(
		jpegSegment(0xE0, []byte("JFIF\x00")),
		append(jpegSegment(0xDA, []byte{1, 1, 0}), 0xAA, 0xFF, 0xD9),
	)

	out, err := NewFileCipher().StripMetadata(img, "IMAGE/JPG")
	require.NoError(t, err)
	assert.Equal(t, img, out)
}

func TestStripMetadata_PNG(t *testing.T) {
	ihdr := pngChunk("IHDR", make([]byte, 13))
	text := pngChunk("tEXt", []byte("Author\x00Jane"))
	exif := pngChunk("eXIf", []byte("MM\x00*gps"))
	idat := pngChunk("IDAT", []byte{0x78, 0x9c, 0x01})
	iend := pngChunk("IEND", nil)

	img := append(bytes.Clone(pngSignature), ihdr...)
	img = append(img, text...)
	img = append(img, exif...)
	img = append(img, idat...)
	img = append(img, iend...)

	out, err := NewFileCipher().StripMetadata(img, "image/png")
	require.NoError(t, err)

	want := append(bytes.Clone(pngSignature), ihdr...)
	want = append(want, idat...)
	want = append(want, iend...)
	assert.Equal(t, want, out)
}

func webpChunk(typ string, payload []byte) []byte {
	out := make([]byte, 8, 8+len(payload)+1)
	copy(out, typ)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(payload)))
	out = append(out, payload...)
	if len(payload)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

func buildWebP(chunks ...[]byte) []byte {
	body := []byte("WEBP")
	for _, c := range chunks {
		body = append(body, c...)
	}
	out := []byte("RIFF\x00\x00\x00\x00")
	binary.LittleEndian.PutUint32(out[4:], uint32(len(body)))
	return append(out, body...)
}

func TestStripMetadata_WebP(t *testing.T) {
	vp8x := func(flags byte) []byte {
		return webpChunk("VP8X", []byte{flags, 0, 0, 0, 9, 0, 0, 9, 0, 0})
	}
	vp8 := webpChunk("VP8 ", []byte{0x9d, 0x01, 0x2a, 1, 2})
	iccp := webpChunk("ICCP", []byte("icc"))
	exif := webpChunk("EXIF", []byte("MM\x00*GPS=1"))
	xmp := webpChunk("XMP ", []byte("<x:xmpmeta>device</x:xmpmeta>"))

	img := buildWebP(vp8x(0x20|vp8xFlagEXIF|vp8xFlagXMP), iccp, vp8, exif, xmp)

	out, err := NewFileCipher().StripMetadata(img, "image/webp")
	require.NoError(t, err)

	assert.Equal(t, buildWebP(vp8x(0x20), iccp, vp8), out)
	assert.NotContains(t, string(out), "GPS")
	assert.NotContains(t, string(out), "device")
	assert.Equal(t, uint32(len(out)-8), binary.LittleEndian.Uint32(out[4:8]))
}

func gifExt(label byte, blocks ...[]byte) []byte {
	out := []byte{0x21, label}
	for _, b := range blocks {
		out = append(out, byte(len(b)))
		out = append(out, b...)
	}
	return append(out, 0)
}

func TestStripMetadata_GIF(t *testing.T) {
	// 1x1 with a two-colour global table.
	header := append([]byte("GIF89a\x01\x00\x01\x00\x80\x00\x00"), 0, 0, 0, 0xFF, 0xFF, 0xFF)
	loop := gifExt(0xFF, []byte("NETSCAPE2.0"), []byte{1, 0, 0})
	xmp := gifExt(0xFF, []byte("XMP DataXMP"), []byte("GPS=1"))
	comment := gifExt(0xFE, []byte("taken at home"))
	control := gifExt(0xF9, []byte{0, 0, 0, 0})
	image := []byte{0x2C, 0, 0, 0, 0, 1, 0, 1, 0, 0, 2, 2, 0x4C, 0x01, 0}

	build := func(parts ...[]byte) []byte {
		out := bytes.Clone(header)
		for _, p := range parts {
			out = append(out, p...)
		}
		return append(out, 0x3B)
	}

	out, err := NewFileCipher().StripMetadata(build(loop, xmp, comment, control, image), "image/gif")
	require.NoError(t, err)

	assert.Equal(t, build(loop, control, image), out)
	assert.NotContains(t, string(out), "GPS")
	assert.NotContains(t, string(out), "home")
}

func TestStripMetadata_UnsupportedImage(t *testing.T) {
	tiff := append([]byte("MM\x00\x2a\x00\x00\x00\x08"), []byte("GPS=1")...)

	for _, mimeType := range []string{"image/tiff", "image/heic", "image/svg+xml", "image/avif"} {
		t.Run(mimeType, func(t *testing.T) {
			out, err := NewFileCipher().StripMetadata(tiff, mimeType)
			require.ErrorIs(t, err, ErrUnsupportedImage)
			assert.Nil(t, out)
		})
	}
}

func TestStripMetadata_OtherTypesPassThrough(t *testing.T) {
	tests := []struct {
		mime string
		data []byte
	}{
		{mime: "text/plain", data: []byte("plain text with Exif word")},
		{mime: "application/octet-stream", data: []byte{0xFF, 0xD8, 0x00}},
		{mime: "image/bmp", data: []byte("BM\x00\x00")},
	}
	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			out, err := NewFileCipher().StripMetadata(tt.data, tt.mime)
			require.NoError(t, err)
			assert.Equal(t, tt.data, out)
		})
	}
}

func TestStripMetadata_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		mime string
	}{
		{name: "jpeg without SOI", data: []byte("not a jpeg"), mime: "image/jpeg"},
		{name: "jpeg truncated segment", data: []byte{0xFF, 0xD8, 0xFF, 0xE1, 0x00, 0x40, 0x01}, mime: "image/jpeg"},
		{name: "png bad signature", data: []byte("\x89PNX\r\n\x1a\n"), mime: "image/png"},
		{name: "png without IEND", data: append(bytes.Clone(pngSignature), pngChunk("IHDR", make([]byte, 13))...), mime: "image/png"},
		{name: "webp bad form type", data: []byte("RIFF\x04\x00\x00\x00WAVE"), mime: "image/webp"},
		{name: "webp chunk past riff size", data: buildWebP(webpChunk("VP8 ", []byte{1, 2}))[:18], mime: "image/webp"},
		{name: "gif bad signature", data: []byte("GIF90a\x01\x00\x01\x00\x00\x00\x00;"), mime: "image/gif"},
		{name: "gif without trailer", data: []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00"), mime: "image/gif; charset=binary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileCipher().StripMetadata(tt.data, tt.mime)
			assert.ErrorIs(t, err, ErrMalformedImage)
		})
	}
}
