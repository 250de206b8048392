package service

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-sealed-drive/models"
)

// manifestMigration upgrades a decoded document by exactly one version.
type manifestMigration func(doc map[string]json.RawMessage) error

// manifestMigrations is keyed by the version a migration starts from.
var manifestMigrations = map[int]manifestMigration{
	0: migrateManifestV0,
}

func encodeManifest(m *models.Manifest) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return data, nil
}

// decodeManifest parses a plaintext manifest of any known version and
// returns it at models.ManifestVersion.
func decodeManifest(data []byte) (*models.Manifest, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrCorruptManifest)
	}

	version := 0
	if raw, ok := doc["version"]; ok {
		if err := json.Unmarshal(raw, &version); err != nil {
			return nil, fmt.Errorf("%w: version: %w", ErrCorruptManifest, err)
		}
	}
	if version > models.ManifestVersion || version < 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedManifestVersion, version)
	}

	for v := version; v < models.ManifestVersion; v++ {
		migrate, ok := manifestMigrations[v]
		if !ok {
			return nil, fmt.Errorf("%w: no migration from version %d", ErrUnsupportedManifestVersion, v)
		}
		if err := migrate(doc); err != nil {
			return nil, fmt.Errorf("migrate manifest from version %d: %w", v, err)
		}
	}

	if version != models.ManifestVersion {
		migrated, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("re-encode migrated manifest: %w", err)
		}
		data = migrated
	}

	m := &models.Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptManifest, err)
	}
	if m.Files == nil {
		m.Files = []models.FileEntry{}
	}
	if m.Folders == nil {
		m.Folders = []models.Folder{}
	}
	return m, nil
}

// migrateManifestV0 tags an untagged document with version 1. Untagged
// documents may carry null lists and lack createdAt.
func migrateManifestV0(doc map[string]json.RawMessage) error {
	for _, list := range []string{"files", "folders"} {
		if raw, ok := doc[list]; !ok || string(raw) == "null" {
			doc[list] = json.RawMessage("[]")
		}
	}
	if _, ok := doc["createdAt"]; !ok {
		if updated, ok := doc["updatedAt"]; ok {
			doc["createdAt"] = updated
		}
	}
	doc["version"] = json.RawMessage("1")
	return nil
}
