package usecase

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
)

// ScanLocal hashes every local install path claimed by a catalog entry and
// also walks the install directories to surface orphan files that no catalog
// entry claims. It never fails on a missing install directory.
func ScanLocal(ctx context.Context, fs FileSystemPort, paths Paths, cat *Catalog) (LocalScan, error) {
	scan := NewLocalScan()

	claimed := make(map[string]bool)
	for _, kind := range FileKinds {
		entries := entriesForKind(cat, kind)
		dir := paths.InstallDir(kind)
		for _, e := range entries {
			key := e.Key()
			installPath := fs.Join(dir, installRelPath(kind, e.Path))
			claimed[installPath] = true

			data, err := fs.ReadFile(ctx, installPath)
			if err != nil {
				if fs.IsNotExist(err) {
					scan.Present[key] = false
					continue
				}
				return scan, fmt.Errorf("scan %s: %w", installPath, err)
			}
			scan.Present[key] = true
			scan.Hashes[key] = sha256.Sum256(data)
		}

		err := fs.Walk(ctx, dir, func(path string, info FileInfo, err error) error {
			if err != nil {
				if fs.IsNotExist(err) {
					return nil
				}
				return err
			}
			if info == nil || info.IsDir() {
				return nil
			}
			if claimed[path] {
				return nil
			}
			rel, relErr := fs.Rel(dir, path)
			if relErr != nil {
				return relErr
			}
			scan.Orphans = append(scan.Orphans, fs.Join(KindDir(kind), toSlash(rel)))
			return nil
		})
		if err != nil && !fs.IsNotExist(err) {
			return scan, fmt.Errorf("walk install dir %s: %w", dir, err)
		}
	}

	return scan, nil
}

func entriesForKind(cat *Catalog, kind AssetKind) []CatalogEntry {
	switch kind {
	case KindInstruction:
		return cat.Instructions
	case KindPrompt:
		return cat.Prompts
	case KindChatMode:
		return cat.ChatModes
	}
	return nil
}

// installRelPath returns path below its kind's install directory: the
// catalog path with a leading kind directory (e.g. "prompts/") removed.
func installRelPath(kind AssetKind, path string) string {
	return strings.TrimPrefix(path, KindDir(kind)+"/")
}

// LocalStatusFor classifies a file asset's local status against the scan,
// comparing content hashes when both sides are present.
func LocalStatusFor(entry CatalogEntry, scan LocalScan) LocalStatus {
	key := entry.Key()
	if !scan.Present[key] {
		return StatusMissing
	}
	if scan.Hashes[key] == entry.ContentHash {
		return StatusSame
	}
	return StatusDiff
}
