// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Flag names shared by the drive CLI and the blob server.
const (
	flagConfig         = "config"
	flagBackend        = "backend"
	flagDSN            = "dsn"
	flagDir            = "dir"
	flagBoltPath       = "bolt-path"
	flagServerAddress  = "address"
	flagRemote         = "remote"
	flagRequestTimeout = "request-timeout"
	flagSyncInterval   = "sync-interval"
	flagKeyStore       = "key-store"
	flagKeyFile        = "key-file"
	flagAccount        = "account"
	flagShareBaseURL   = "share-base-url"
	flagVersionCheck   = "version-check"
	flagHashKey        = "hash-key"
	flagPresignTTL     = "presign-ttl"
	flagAllowedKeys    = "allowed-keys"
)

// NetAddress holds structured network address data for host and port.
// It implements [pflag.Value].
type NetAddress struct {
	Host string
	Port int
}

// RegisterFlags declares every configuration flag on fs. Values are read back
// by [GetStructuredConfig] after fs has been parsed.
//
// Flags:
//
//	-c/--config       JSON file path with configs
//	--backend         blob backend: memory, fs, bolt, sqlite, postgres, http
//	--dsn             database DSN for sqlite/postgres
//	--dir             blob directory for the fs backend
//	--bolt-path       bbolt file for the bolt backend
//	-a/--address      blob server listen address host:port
//	--remote          blob server base URL for the http backend
//	--request-timeout request timeout (e.g. "30s")
//	--sync-interval   watch refresh interval (e.g. "30s")
//	--key-store       keyring or file
//	--key-file        backup file for the file key store
//	--account         keyring account name
//	--share-base-url  origin used in share links
//	--version-check   enable conditional manifest writes
//	--hash-key        presigned URL signing key
//	--presign-ttl     presigned URL lifetime
//	--allowed-keys    comma separated hex public keys allowed on the server
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(flagConfig, "c", "", "JSON config file path")
	fs.String(flagBackend, "", "Blob backend (memory, fs, bolt, sqlite, postgres, http)")
	fs.String(flagDSN, "", "Database DSN")
	fs.String(flagDir, "", "Blob directory for the fs backend")
	fs.String(flagBoltPath, "", "bbolt database path")
	fs.VarP(&NetAddress{}, flagServerAddress, "a", "Net address host:port")
	fs.String(flagRemote, "", "Blob server base URL")
	fs.Duration(flagRequestTimeout, 0, "Request timeout (e.g., 30s, 1m)")
	fs.Duration(flagSyncInterval, 0, "Manifest refresh interval (e.g., 30s)")
	fs.String(flagKeyStore, "", "Key backup store (keyring, file)")
	fs.String(flagKeyFile, "", "Key backup file path")
	fs.String(flagAccount, "", "Keyring account name")
	fs.String(flagShareBaseURL, "", "Share link base URL")
	fs.Bool(flagVersionCheck, false, "Reject manifest writes when the stored version changed")
	fs.String(flagHashKey, "", "Presigned URL signing key")
	fs.Duration(flagPresignTTL, 0, "Presigned URL lifetime")
	fs.StringSlice(flagAllowedKeys, nil, "Allowed hex public keys")
}

// parseFlags reads the flags declared by [RegisterFlags]. Flags that were
// never registered on fs are left at their zero value.
func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	var errs []error
	str := func(name string) string {
		if fs.Lookup(name) == nil {
			return ""
		}
		v, err := fs.GetString(name)
		errs = append(errs, err)
		return v
	}

	cfg := &StructuredConfig{
		JSONFilePath: str(flagConfig),
		App: App{
			KeyStore:     str(flagKeyStore),
			KeyFile:      str(flagKeyFile),
			Account:      str(flagAccount),
			ShareBaseURL: str(flagShareBaseURL),
			HashKey:      str(flagHashKey),
		},
		Storage: Storage{
			Backend: str(flagBackend),
			DB:      DB{DSN: str(flagDSN)},
			Files:   Files{Dir: str(flagDir)},
			Bolt:    Bolt{Path: str(flagBoltPath)},
		},
		Adapter: Adapter{HTTPAddress: str(flagRemote)},
	}

	if f := fs.Lookup(flagServerAddress); f != nil {
		cfg.Server.HTTPAddress = f.Value.String()
	}
	if fs.Lookup(flagRequestTimeout) != nil {
		d, err := fs.GetDuration(flagRequestTimeout)
		errs = append(errs, err)
		cfg.Server.RequestTimeout = d
		cfg.Adapter.RequestTimeout = d
	}
	if fs.Lookup(flagSyncInterval) != nil {
		d, err := fs.GetDuration(flagSyncInterval)
		errs = append(errs, err)
		cfg.Workers.SyncInterval = d
	}
	if fs.Lookup(flagPresignTTL) != nil {
		d, err := fs.GetDuration(flagPresignTTL)
		errs = append(errs, err)
		cfg.App.PresignTTL = d
	}
	if fs.Lookup(flagVersionCheck) != nil {
		v, err := fs.GetBool(flagVersionCheck)
		errs = append(errs, err)
		cfg.App.VersionCheck = v
	}
	if fs.Lookup(flagAllowedKeys) != nil {
		v, err := fs.GetStringSlice(flagAllowedKeys)
		errs = append(errs, err)
		cfg.App.AllowedKeys = v
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("error reading flags: %w", err)
	}
	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// It returns an empty string when neither Host nor Port are set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements [pflag.Value].
func (a *NetAddress) Type() string {
	return "address"
}
