package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sealed-drive/internal/crypto"
	"github.com/MKhiriev/go-sealed-drive/internal/store"
)

var (
	// ErrValidation wraps every rejected user input; the validators error is
	// joined to it.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is the root of every missing-entity error.
	ErrNotFound = errors.New("not found")

	ErrFileNotFound     = fmt.Errorf("file %w", ErrNotFound)
	ErrFolderNotFound   = fmt.Errorf("folder %w", ErrNotFound)
	ErrManifestNotFound = fmt.Errorf("manifest %w", ErrNotFound)

	// ErrLocked is returned by every manifest operation before Initialize or
	// Unlock, and after Lock.
	ErrLocked = errors.New("session is locked")

	// ErrKeysMismatch means the manifest does not open under the supplied
	// key: the storage belongs to a different identity or was tampered with.
	// It is never transient.
	ErrKeysMismatch = fmt.Errorf("manifest does not open with this key: %w", crypto.ErrAuthenticationFailure)

	// ErrVersionConflict is returned by a version-checked write when the
	// stored manifest changed since it was last loaded.
	ErrVersionConflict = fmt.Errorf("manifest changed concurrently: %w", store.ErrVersionConflict)

	ErrDuplicateFile = fmt.Errorf("file id already exists: %w", ErrValidation)
	ErrNoFilesGiven  = fmt.Errorf("no files given: %w", ErrValidation)
	ErrEmptyPassword = fmt.Errorf("share password is required: %w", ErrValidation)
	ErrInvalidLink   = fmt.Errorf("share link is malformed: %w", ErrValidation)

	// ErrForbidden is returned by the blob server for an account outside
	// the configured allow-list.
	ErrForbidden = errors.New("account is not allowed on this server")

	ErrLinkExpired   = errors.New("presigned link has expired")
	ErrLinkSignature = errors.New("presigned link signature is invalid")

	ErrCorruptManifest            = errors.New("manifest document is corrupt")
	ErrUnsupportedManifestVersion = errors.New("manifest version is newer than this build supports")
)

// validationError joins a validators error to ErrValidation.
func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
