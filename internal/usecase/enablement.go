package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// enablementDocument is the wire shape written to data/enablement.json.
type enablementDocument struct {
	SchemaVersion int             `json:"schema_version"`
	UpdatedAt     string          `json:"updated_at"`
	Entries       map[string]bool `json:"entries"`
}

func encodeKey(key AssetKey) string { return string(key.Kind) + ":" + key.Path }

func decodeKey(s string) (AssetKey, error) {
	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		return AssetKey{}, fmt.Errorf("malformed entry key %q", s)
	}
	return AssetKey{Kind: AssetKind(s[:idx]), Path: s[idx+1:]}, nil
}

// LoadEnablement reads and validates the persisted record at path. A missing
// file returns an empty record, per spec. A present-but-invalid file fails
// with ErrEnablement and leaves the caller's in-memory state untouched.
func LoadEnablement(ctx context.Context, fs FileSystemPort, schema SchemaPort, path string) (EnablementRecord, error) {
	data, err := fs.ReadFile(ctx, path)
	if err != nil {
		if fs.IsNotExist(err) {
			return NewEnablementRecord(), nil
		}
		return EnablementRecord{}, fmt.Errorf("read enablement file: %w: %w", ErrEnablement, err)
	}

	if schema != nil {
		if err := schema.ValidateEnablement(ctx, data); err != nil {
			return EnablementRecord{}, fmt.Errorf("validate enablement schema: %w: %w", ErrEnablement, err)
		}
	}

	var doc enablementDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return EnablementRecord{}, fmt.Errorf("decode enablement document: %w: %w", ErrEnablement, err)
	}

	rec := EnablementRecord{SchemaVersion: doc.SchemaVersion, Entries: make(map[AssetKey]bool, len(doc.Entries))}
	if doc.UpdatedAt != "" {
		t, err := time.Parse(time.RFC3339, doc.UpdatedAt)
		if err != nil {
			return EnablementRecord{}, fmt.Errorf("decode updated_at: %w: %w", ErrEnablement, err)
		}
		rec.UpdatedAt = t
	}
	for k, v := range doc.Entries {
		key, err := decodeKey(k)
		if err != nil {
			return EnablementRecord{}, fmt.Errorf("decode entries: %w: %w", ErrEnablement, err)
		}
		rec.Entries[key] = v
	}
	return rec, nil
}

// SaveEnablement stamps rec with the current time and schema version, then
// writes it via a sibling temp file and atomic rename. On failure the
// temporary file is removed and the on-disk target is untouched.
func SaveEnablement(ctx context.Context, fs FileSystemPort, now time.Time, path string, rec EnablementRecord) (EnablementRecord, error) {
	stamped := rec.clone()
	stamped.UpdatedAt = now
	stamped.SchemaVersion = EnablementSchemaVersion

	doc := enablementDocument{
		SchemaVersion: stamped.SchemaVersion,
		UpdatedAt:     stamped.UpdatedAt.UTC().Format(time.RFC3339),
		Entries:       make(map[string]bool, len(stamped.Entries)),
	}
	for k, v := range stamped.Entries {
		doc.Entries[encodeKey(k)] = v
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return rec, fmt.Errorf("encode enablement document: %w: %w", ErrEnablement, err)
	}

	dir := fs.Dir(path)
	if err := fs.CreateDir(ctx, dir, 0o755); err != nil {
		return rec, fmt.Errorf("create enablement directory: %w: %w", ErrEnablement, err)
	}

	tmp := fs.Join(dir, ".enablement.json.tmp")
	if err := fs.WriteFile(ctx, tmp, data, 0o644); err != nil {
		_ = fs.Remove(ctx, tmp)
		return rec, fmt.Errorf("write temp enablement file: %w: %w", ErrEnablement, err)
	}
	if err := fs.Move(ctx, tmp, path); err != nil {
		_ = fs.Remove(ctx, tmp)
		return rec, fmt.Errorf("rename enablement file: %w: %w", ErrEnablement, err)
	}
	return stamped, nil
}
