// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the user-facing wording of the drive client.
//
// Msg* constants are what the CLI prints for well-known failures; they are
// deliberately less specific than the wrapped errors, which go to the log.
// [Message] picks the constant for an error.
package app

import (
	"errors"

	"github.com/MKhiriev/go-sealed-drive/internal/crypto"
	"github.com/MKhiriev/go-sealed-drive/internal/service"
	"github.com/MKhiriev/go-sealed-drive/internal/store"
)

const (
	// MsgKeysMismatch is shown when the manifest does not open. It does not
	// say whether the key, the storage or the data is at fault.
	MsgKeysMismatch = "unable to unlock the drive with this identity"

	// MsgWrongPassword is shown when a backup or share password is wrong.
	MsgWrongPassword = "wrong password"

	// MsgLocked is shown when an operation needs an unlocked drive.
	MsgLocked = "the drive is locked"

	// MsgNotInitialized is shown when no manifest exists yet.
	MsgNotInitialized = "the drive is not initialized, run `drive init`"

	// MsgAlreadyInitialized is shown by init when a manifest exists.
	MsgAlreadyInitialized = "the drive is already initialized, use --force to overwrite it"

	// MsgNoIdentity is shown when no keypair backup is stored.
	MsgNoIdentity = "no identity found, run `drive keygen` or `drive backup import`"

	// MsgIdentityExists is shown by keygen when a keypair is stored.
	MsgIdentityExists = "an identity already exists, use --force to replace it"

	MsgFileNotFound   = "file not found"
	MsgFolderNotFound = "folder not found"

	// MsgVersionConflict is shown when another device changed the drive
	// since it was loaded.
	MsgVersionConflict = "the drive changed on another device, please retry"

	MsgInvalidInput = "invalid input"

	MsgMalformedBackup = "the backup document is malformed"

	// MsgSharingUnavailable is shown when the blob backend cannot presign.
	MsgSharingUnavailable = "sharing needs the http blob backend"

	// MsgStorageUnavailable is shown on transport failures.
	MsgStorageUnavailable = "storage is unavailable, please try again later"

	MsgPasswordMismatch = "passwords do not match"

	// MsgUnsupportedImage is shown when put cannot scrub an image type.
	MsgUnsupportedImage = "this image type cannot be cleaned of its metadata"
	MsgMalformedImage   = "the image is damaged and its metadata cannot be removed"

	MsgInternalError = "internal error"
)

// Client-side conditions that have no counterpart in the service layer.
var (
	// ErrSharingUnavailable is returned when share links are requested from
	// a store that cannot presign.
	ErrSharingUnavailable = errors.New("sharing unavailable")

	// ErrNotInitialized is returned when no manifest exists.
	ErrNotInitialized = errors.New("drive not initialized")

	ErrAlreadyInitialized = errors.New("drive already initialized")
	ErrIdentityExists     = errors.New("identity already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

var messages = []struct {
	target  error
	message string
}{
	{service.ErrKeysMismatch, MsgKeysMismatch},
	{crypto.ErrWrongPassword, MsgWrongPassword},
	{service.ErrLocked, MsgLocked},
	{ErrNotInitialized, MsgNotInitialized},
	{ErrAlreadyInitialized, MsgAlreadyInitialized},
	{ErrIdentityExists, MsgIdentityExists},
	{ErrPasswordMismatch, MsgPasswordMismatch},
	{ErrSharingUnavailable, MsgSharingUnavailable},
	{service.ErrFileNotFound, MsgFileNotFound},
	{service.ErrFolderNotFound, MsgFolderNotFound},
	{service.ErrManifestNotFound, MsgNotInitialized},
	{store.ErrKeyBackupNotFound, MsgNoIdentity},
	{crypto.ErrMalformedBackup, MsgMalformedBackup},
	{crypto.ErrUnsupportedImage, MsgUnsupportedImage},
	{crypto.ErrMalformedImage, MsgMalformedImage},
	{store.ErrVersionConflict, MsgVersionConflict},
	{store.ErrTransport, MsgStorageUnavailable},
}

// Message returns the text to show for err. Validation errors keep their
// detail since they describe the user's own input.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range messages {
		if errors.Is(err, m.target) {
			return m.message
		}
	}
	if errors.Is(err, service.ErrValidation) {
		return MsgInvalidInput + ": " + err.Error()
	}
	return MsgInternalError
}
