// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/MKhiriev/go-sealed-drive/internal/config"
)

func TestKeyringKeyStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	ks := NewKeyringKeyStore("alice")

	_, err := ks.Load()
	assert.ErrorIs(t, err, ErrKeyBackupNotFound)

	require.NoError(t, ks.Save([]byte(`{"privateKey":"aa","publicKey":"bb"}`)))

	got, err := ks.Load()
	require.NoError(t, err)
	assert.JSONEq(t, `{"privateKey":"aa","publicKey":"bb"}`, string(got))

	require.NoError(t, ks.Delete())
	assert.ErrorIs(t, ks.Delete(), ErrKeyBackupNotFound)
}

func TestKeyringKeyStore_AccountsAreSeparate(t *testing.T) {
	keyring.MockInit()

	require.NoError(t, NewKeyringKeyStore("alice").Save([]byte("a")))
	_, err := NewKeyringKeyStore("bob").Load()
	assert.ErrorIs(t, err, ErrKeyBackupNotFound)
}

func TestFileKeyStore_RoundTripAndPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "key.json")
	ks := NewFileKeyStore(path)

	_, err := ks.Load()
	assert.ErrorIs(t, err, ErrKeyBackupNotFound)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	require.NoError(t, ks.Save([]byte("backup")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := ks.Load()
	require.NoError(t, err)
	assert.Equal(t, []byte("backup"), got)

	require.NoError(t, ks.Delete())
	assert.ErrorIs(t, ks.Delete(), ErrKeyBackupNotFound)
}

func TestNewKeyStore(t *testing.T) {
	ks, err := NewKeyStore(config.ClientApp{KeyStore: config.KeyStoreFile, KeyFile: "/tmp/k"})
	require.NoError(t, err)
	assert.IsType(t, &fileKeyStore{}, ks)

	ks, err = NewKeyStore(config.ClientApp{KeyStore: config.KeyStoreKeyring, Account: "a"})
	require.NoError(t, err)
	assert.IsType(t, &keyringKeyStore{}, ks)

	_, err = NewKeyStore(config.ClientApp{KeyStore: "vault"})
	assert.Error(t, err)
}
