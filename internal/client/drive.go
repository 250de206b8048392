package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sealed-drive/internal/adapter"
	"github.com/MKhiriev/go-sealed-drive/internal/app"
	"github.com/MKhiriev/go-sealed-drive/internal/config"
	"github.com/MKhiriev/go-sealed-drive/internal/crypto"
	"github.com/MKhiriev/go-sealed-drive/internal/service"
	"github.com/MKhiriev/go-sealed-drive/internal/store"
	"github.com/MKhiriev/go-sealed-drive/models"
)

func (a *App) keyStoreFor() (store.KeyStore, error) {
	if a.keyStore != nil {
		return a.keyStore, nil
	}
	ks, err := store.NewKeyStore(a.cfg.App)
	if err != nil {
		return nil, err
	}
	a.keyStore = ks
	return ks, nil
}

// decodeBackup opens a backup document, asking for its password only when
// the document is encrypted.
func (a *App) decodeBackup(doc []byte) (models.KeyPair, error) {
	pair, err := a.keys.ImportBackup(doc, "")
	if !errors.Is(err, crypto.ErrWrongPassword) {
		return pair, err
	}

	password, err := a.passwords.ReadPassword("Identity password: ")
	if err != nil {
		return models.KeyPair{}, err
	}
	return a.keys.ImportBackup(doc, password)
}

// identity loads the stored keypair.
func (a *App) identity() (models.KeyPair, error) {
	ks, err := a.keyStoreFor()
	if err != nil {
		return models.KeyPair{}, err
	}
	doc, err := ks.Load()
	if err != nil {
		return models.KeyPair{}, err
	}
	return a.decodeBackup(doc)
}

// blobStore returns the configured store, and the same store as a remote
// when it can presign.
func (a *App) blobStore(ctx context.Context, pair models.KeyPair) (store.BlobStore, service.RemoteBlobs, error) {
	if a.blobs != nil {
		remote, _ := a.blobs.(service.RemoteBlobs)
		return a.blobs, remote, nil
	}

	if a.cfg.Storage.Backend == config.BackendHTTP {
		tokens := adapter.NewKeyPairTokenSource(a.keys, pair, a.cfg.App.TokenDuration)
		httpStore, err := adapter.NewHTTPBlobStore(a.cfg.Adapter, tokens, a.logger)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, httpStore.Close)
		return httpStore, httpStore, nil
	}

	backend, err := store.NewBlobStore(ctx, a.cfg.Storage, a.logger)
	if err != nil {
		return nil, nil, err
	}
	a.closers = append(a.closers, backend.Close)
	return backend, nil, nil
}

// newServices wires the services for pair and returns them with the
// derived master key. The caller wipes the key.
func (a *App) newServices(ctx context.Context) (*service.Services, []byte, error) {
	pair, err := a.identity()
	if err != nil {
		return nil, nil, err
	}

	blobs, remote, err := a.blobStore(ctx, pair)
	if err != nil {
		return nil, nil, fmt.Errorf("open blob store: %w", err)
	}

	var opts []service.SessionOption
	if a.cfg.App.VersionCheck {
		opts = append(opts, service.WithVersionCheck())
	}
	svcs := service.NewServices(blobs, remote, a.cfg.App.ShareBaseURL, a.logger, opts...)

	masterKey, err := svcs.Deriver.DeriveMasterKey(pair.PrivateKey)
	if err != nil {
		return nil, nil, err
	}

	a.services = svcs
	return svcs, masterKey, nil
}

// drive returns unlocked services.
func (a *App) drive(ctx context.Context) (*service.Services, error) {
	if a.services != nil && a.services.Session.IsUnlocked() {
		return a.services, nil
	}

	svcs, masterKey, err := a.newServices(ctx)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(masterKey)

	exists, err := svcs.Session.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, app.ErrNotInitialized
	}

	if err = svcs.Session.Unlock(ctx, masterKey); err != nil {
		return nil, err
	}
	return svcs, nil
}

// noTokens is used by share recipients, who only fetch presigned URLs.
type noTokens struct{}

func (noTokens) Token(context.Context) (string, error) {
	return "", errors.New("no identity loaded")
}

// shareOpener returns a share service that can only open links.
func (a *App) shareOpener() (service.ShareService, error) {
	if a.blobs != nil {
		if remote, ok := a.blobs.(service.RemoteBlobs); ok {
			return service.NewServices(a.blobs, remote, a.cfg.App.ShareBaseURL, a.logger).Share, nil
		}
	}

	httpStore, err := adapter.NewHTTPBlobStore(a.cfg.Adapter, noTokens{}, a.logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, httpStore.Close)
	return service.NewServices(httpStore, httpStore, a.cfg.App.ShareBaseURL, a.logger).Share, nil
}
