// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SharePayload is the secret part of a share link: the key material of one
// file plus the attributes a recipient needs to save it. It travels only in
// the password-sealed bundle inside a URL fragment.
type SharePayload struct {
	FileKey   []byte `json:"k"`
	FileNonce []byte `json:"n"`
	FileName  string `json:"f,omitempty"`
	MimeType  string `json:"m,omitempty"`
}

// SharedFile is what a recipient obtains after opening a share link.
type SharedFile struct {
	FileName string
	MimeType string
	Content  []byte
}
