// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and string
// durations.
type StructuredJSONConfig struct {
	App struct {
		KeyStore      string   `json:"key_store"`
		KeyFile       string   `json:"key_file"`
		Account       string   `json:"account"`
		ShareBaseURL  string   `json:"share_base_url"`
		VersionCheck  bool     `json:"version_check"`
		HashKey       string   `json:"hash_key"`
		PresignTTL    Duration `json:"presign_ttl"`
		TokenDuration Duration `json:"token_duration"`
		AllowedKeys   []string `json:"allowed_keys"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		Backend string `json:"backend"`
		DB      struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		Files struct {
			Dir string `json:"dir"`
		} `json:"files,omitempty"`
		Bolt struct {
			Path string `json:"path"`
		} `json:"bolt,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			KeyStore:      jsonCfg.App.KeyStore,
			KeyFile:       jsonCfg.App.KeyFile,
			Account:       jsonCfg.App.Account,
			ShareBaseURL:  jsonCfg.App.ShareBaseURL,
			VersionCheck:  jsonCfg.App.VersionCheck,
			HashKey:       jsonCfg.App.HashKey,
			PresignTTL:    time.Duration(jsonCfg.App.PresignTTL),
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			AllowedKeys:   jsonCfg.App.AllowedKeys,
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			Backend: jsonCfg.Storage.Backend,
			DB:      DB{DSN: jsonCfg.Storage.DB.DSN},
			Files:   Files{Dir: jsonCfg.Storage.Files.Dir},
			Bolt:    Bolt{Path: jsonCfg.Storage.Bolt.Path},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
