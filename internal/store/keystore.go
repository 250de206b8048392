// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"

	"github.com/MKhiriev/go-sealed-drive/internal/config"
)

// keyringService is the service name under which backups are filed in the
// OS keychain.
const keyringService = "sealed-drive"

// KeyStore persists the user's keypair backup document on the device.
type KeyStore interface {
	// Save stores backup, replacing any earlier one.
	Save(backup []byte) error
	// Load returns the stored backup or [ErrKeyBackupNotFound].
	Load() ([]byte, error)
	// Delete forgets the stored backup.
	Delete() error
}

// NewKeyStore returns the [KeyStore] selected by cfg.KeyStore.
func NewKeyStore(cfg config.ClientApp) (KeyStore, error) {
	switch cfg.KeyStore {
	case config.KeyStoreKeyring:
		return NewKeyringKeyStore(cfg.Account), nil
	case config.KeyStoreFile:
		return NewFileKeyStore(cfg.KeyFile), nil
	default:
		return nil, fmt.Errorf("unknown key store %q", cfg.KeyStore)
	}
}

type keyringKeyStore struct {
	account string
}

// NewKeyringKeyStore keeps the backup in the OS keychain under account.
func NewKeyringKeyStore(account string) KeyStore {
	return &keyringKeyStore{account: account}
}

func (k *keyringKeyStore) Save(backup []byte) error {
	if err := keyring.Set(keyringService, k.account, string(backup)); err != nil {
		return fmt.Errorf("save key backup to keyring: %w", err)
	}
	return nil
}

func (k *keyringKeyStore) Load() ([]byte, error) {
	secret, err := keyring.Get(keyringService, k.account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, ErrKeyBackupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load key backup from keyring: %w", err)
	}
	return []byte(secret), nil
}

func (k *keyringKeyStore) Delete() error {
	err := keyring.Delete(keyringService, k.account)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrKeyBackupNotFound
	}
	return err
}

type fileKeyStore struct {
	path string
}

// NewFileKeyStore keeps the backup in a file readable only by its owner.
func NewFileKeyStore(path string) KeyStore {
	return &fileKeyStore{path: path}
}

func (f *fileKeyStore) Save(backup []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create key directory: %w", err)
	}
	if err := os.WriteFile(f.path, backup, 0o600); err != nil {
		return fmt.Errorf("write key backup: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	return os.Chmod(f.path, 0o600)
}

func (f *fileKeyStore) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrKeyBackupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read key backup: %w", err)
	}
	return data, nil
}

func (f *fileKeyStore) Delete() error {
	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrKeyBackupNotFound
	}
	return err
}
