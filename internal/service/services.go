package service

import (
	"github.com/MKhiriev/go-sealed-drive/internal/crypto"
	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/internal/store"
	"github.com/MKhiriev/go-sealed-drive/internal/utils"
)

// Services bundles everything the client needs once a blob store is chosen.
type Services struct {
	Keys     crypto.KeyManager
	Deriver  crypto.MasterKeyDeriver
	Session  *Session
	Transfer TransferService
	Share    ShareService
}

// RemoteBlobs is what a blob store must offer for share links to work.
type RemoteBlobs interface {
	Presigner
	SharedBlobFetcher
}

// NewServices wires the services over blobs. remote may be nil when the
// store cannot presign; share links are then unavailable.
func NewServices(blobs store.BlobStore, remote RemoteBlobs, shareBaseURL string, log *logger.Logger, opts ...SessionOption) *Services {
	ids := utils.NewUUIDGenerator()
	cipher := crypto.NewFileCipher()

	opts = append([]SessionOption{WithLogger(log), WithIDGenerator(ids)}, opts...)
	session := NewSession(blobs, opts...)

	svcs := &Services{
		Keys:     crypto.NewKeyManager(),
		Deriver:  crypto.NewMasterKeyDeriver(),
		Session:  session,
		Transfer: NewTransferService(session, blobs, cipher, ids, log),
	}
	if remote != nil {
		svcs.Share = NewShareService(session, crypto.NewShareCodec(), cipher, remote, remote, shareBaseURL, log)
	}
	return svcs
}
