package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-sealed-drive/internal/crypto"
	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/internal/store"
	"github.com/MKhiriev/go-sealed-drive/internal/utils"
	"github.com/MKhiriev/go-sealed-drive/internal/validators"
	"github.com/MKhiriev/go-sealed-drive/models"
)

const masterKeySize = 32

// Session is the [ManifestStore] of one authenticated context. The caller
// owns it: create one per unlocked identity and Lock it when done.
//
// Mutations are serialized. Each one is applied to a copy of the manifest,
// sealed and uploaded; the in-memory state changes only after the upload
// succeeds.
type Session struct {
	blobs     store.BlobStore
	versioned store.VersionedBlobStore
	validator validators.Validator
	ids       IDGenerator
	now       func() time.Time
	logger    *logger.Logger

	versionCheck bool

	mu       sync.Mutex
	key      *memguard.Enclave
	manifest *models.Manifest
	etag     string
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithVersionCheck makes every manifest write conditional on the version
// observed at the last load or write. It takes effect only when the blob
// store implements store.VersionedBlobStore; a concurrent change then fails
// the write with ErrVersionConflict instead of overwriting it.
func WithVersionCheck() SessionOption {
	return func(s *Session) { s.versionCheck = true }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithIDGenerator overrides the identifier source for new files and folders.
func WithIDGenerator(ids IDGenerator) SessionOption {
	return func(s *Session) { s.ids = ids }
}

func WithLogger(log *logger.Logger) SessionOption {
	return func(s *Session) { s.logger = log }
}

// NewSession returns a locked Session over blobs.
func NewSession(blobs store.BlobStore, opts ...SessionOption) *Session {
	s := &Session{
		blobs:     blobs,
		validator: validators.NewManifestValidator(),
		ids:       utils.NewUUIDGenerator(),
		now:       time.Now,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.versionCheck {
		if v, ok := blobs.(store.VersionedBlobStore); ok {
			s.versioned = v
		} else {
			s.logger.Warn().Str("func", "NewSession").Msg("blob store has no versioning, manifest writes stay last-write-wins")
		}
	}
	return s
}

func (s *Session) Exists(ctx context.Context) (bool, error) {
	_, err := s.blobs.Get(ctx, models.ManifestBlobKey)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrBlobNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("check manifest: %w", err)
	}
}

func (s *Session) Initialize(ctx context.Context, masterKey []byte) error {
	key, err := newKeyEnclave(masterKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := models.NewManifest(s.nowMillis())
	sealed, err := sealManifest(key, m)
	if err != nil {
		return err
	}
	if err = s.blobs.Put(ctx, models.ManifestBlobKey, sealed); err != nil {
		return fmt.Errorf("put initial manifest: %w", err)
	}

	s.key, s.manifest, s.etag = key, m, store.ETag(sealed)
	s.logger.Info().Str("func", "Session.Initialize").Msg("manifest initialized")
	return nil
}

func (s *Session) Unlock(ctx context.Context, masterKey []byte) error {
	key, err := newKeyEnclave(masterKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, etag, err := s.load(ctx, key)
	if err != nil {
		return err
	}

	s.key, s.manifest, s.etag = key, m, etag
	s.logger.Info().Str("func", "Session.Unlock").
		Int("files", len(m.Files)).
		Int("folders", len(m.Folders)).
		Msg("manifest unlocked")
	return nil
}

// Lock forgets the master key and zeroes the file keys of the cached
// manifest. Manifests returned earlier are copies and keep their keys.
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.manifest != nil {
		for i := range s.manifest.Files {
			crypto.Wipe(s.manifest.Files[i].FileKey)
		}
	}
	s.key, s.manifest, s.etag = nil, nil, ""
}

func (s *Session) IsUnlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.manifest != nil
}

func (s *Session) Sync(ctx context.Context) *models.Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.manifest == nil {
		return nil
	}

	m, etag, err := s.load(ctx, s.key)
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "Session.Sync").Msg("manifest refresh failed, keeping cached state")
		return s.manifest.Clone()
	}

	s.manifest, s.etag = m, etag
	return m.Clone()
}

func (s *Session) Manifest() (*models.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.manifest == nil {
		return nil, ErrLocked
	}
	return s.manifest.Clone(), nil
}

// load fetches and opens the stored manifest. It returns the version tag of
// the blob it read.
func (s *Session) load(ctx context.Context, key *memguard.Enclave) (*models.Manifest, string, error) {
	var (
		blob []byte
		etag string
		err  error
	)
	if s.versioned != nil {
		blob, etag, err = s.versioned.GetVersioned(ctx, models.ManifestBlobKey)
	} else {
		blob, err = s.blobs.Get(ctx, models.ManifestBlobKey)
		etag = store.ETag(blob)
	}
	if errors.Is(err, store.ErrBlobNotFound) {
		return nil, "", ErrManifestNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("get manifest: %w", err)
	}

	m, err := openManifest(key, blob)
	if err != nil {
		return nil, "", err
	}
	return m, etag, nil
}

// mutate applies one logical change under the session lock. apply works on a
// copy; the copy is stamped, sealed and written, and only then becomes the
// session state.
func (s *Session) mutate(ctx context.Context, op string, apply func(m *models.Manifest) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.manifest == nil {
		return ErrLocked
	}

	next := s.manifest.Clone()
	if err := apply(next); err != nil {
		return err
	}
	next.UpdatedAt = max(s.nowMillis(), s.manifest.UpdatedAt+1)

	if err := s.persist(ctx, next); err != nil {
		s.logger.Error().Err(err).Str("func", "Session."+op).Msg("manifest write failed")
		return fmt.Errorf("%s: %w", op, err)
	}

	s.manifest = next
	s.logger.Debug().Str("func", "Session."+op).Int64("updated_at", next.UpdatedAt).Msg("manifest updated")
	return nil
}

func (s *Session) persist(ctx context.Context, m *models.Manifest) error {
	sealed, err := sealManifest(s.key, m)
	if err != nil {
		return err
	}

	if s.versioned != nil {
		etag, err := s.versioned.PutIfMatch(ctx, models.ManifestBlobKey, sealed, s.etag)
		if errors.Is(err, store.ErrVersionConflict) {
			return ErrVersionConflict
		}
		if err != nil {
			return fmt.Errorf("put manifest: %w", err)
		}
		s.etag = etag
		return nil
	}

	if err = s.blobs.Put(ctx, models.ManifestBlobKey, sealed); err != nil {
		return fmt.Errorf("put manifest: %w", err)
	}
	s.etag = store.ETag(sealed)
	return nil
}

// view runs read under the session lock against the live manifest. read
// must not retain or modify it.
func (s *Session) view(read func(m *models.Manifest) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.manifest == nil {
		return ErrLocked
	}
	return read(s.manifest)
}

func (s *Session) nowMillis() int64 {
	return s.now().UnixMilli()
}

// newKeyEnclave moves a copy of masterKey into locked memory. The caller's
// slice is left untouched.
func newKeyEnclave(masterKey []byte) (*memguard.Enclave, error) {
	if len(masterKey) != masterKeySize {
		return nil, crypto.ErrInvalidKey
	}
	return memguard.NewEnclave(slices.Clone(masterKey)), nil
}

func sealManifest(key *memguard.Enclave, m *models.Manifest) ([]byte, error) {
	plain, err := encodeManifest(m)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(plain)

	buf, err := key.Open()
	if err != nil {
		return nil, fmt.Errorf("open master key: %w", err)
	}
	defer buf.Destroy()

	sealed, err := crypto.Seal(buf.Bytes(), plain)
	if err != nil {
		return nil, fmt.Errorf("seal manifest: %w", err)
	}
	return sealed, nil
}

func openManifest(key *memguard.Enclave, blob []byte) (*models.Manifest, error) {
	buf, err := key.Open()
	if err != nil {
		return nil, fmt.Errorf("open master key: %w", err)
	}
	defer buf.Destroy()

	plain, err := crypto.Open(buf.Bytes(), blob)
	if errors.Is(err, crypto.ErrAuthenticationFailure) {
		return nil, ErrKeysMismatch
	}
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer crypto.Wipe(plain)

	return decodeManifest(plain)
}
