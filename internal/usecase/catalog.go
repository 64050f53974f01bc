package usecase

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// kindSpec pairs a file-asset kind with the snapshot-relative directory it is
// enumerated under and the filename suffix that selects it.
type kindSpec struct {
	kind   AssetKind
	dir    string
	suffix string
}

var fileKindSpecs = []kindSpec{
	{kind: KindInstruction, dir: "instructions", suffix: ".instructions.md"},
	{kind: KindPrompt, dir: "prompts", suffix: ".prompt.md"},
	{kind: KindChatMode, dir: "chatmodes", suffix: ".chatmode.md"},
}

const collectionsDir = "collections"
const collectionSuffix = ".collection.yml"

// yamlCollectionFile is the whole-file shape of a *.collection.yml document.
type yamlCollectionFile struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Tags        []string        `yaml:"tags"`
	Items       []yamlItemEntry `yaml:"items"`
}

type yamlItemEntry struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
}

// BuildCatalog walks a snapshot root and produces the four asset lists plus
// lookup indexes. It never fails outright on a malformed individual file;
// defects are recorded as warnings on the returned Catalog.
func BuildCatalog(ctx context.Context, fs FileSystemPort, snapshotRoot string) (*Catalog, error) {
	cat := &Catalog{
		byKey:      make(map[AssetKey]entryRef),
		Membership: make(map[AssetKey][]string),
	}

	for _, spec := range fileKindSpecs {
		entries, warnings, err := walkFileKind(ctx, fs, snapshotRoot, spec)
		if err != nil {
			return nil, err
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
		for i, e := range entries {
			cat.byKey[e.Key()] = entryRef{kind: spec.kind, idx: i}
		}
		switch spec.kind {
		case KindInstruction:
			cat.Instructions = entries
		case KindPrompt:
			cat.Prompts = entries
		case KindChatMode:
			cat.ChatModes = entries
		}
		cat.Warnings = append(cat.Warnings, warnings...)
	}

	collections, warnings, err := walkCollections(ctx, fs, snapshotRoot, cat)
	if err != nil {
		return nil, err
	}
	sort.Slice(collections, func(i, j int) bool { return collections[i].ID < collections[j].ID })
	cat.Collections = collections
	cat.Warnings = append(cat.Warnings, warnings...)

	for _, col := range cat.Collections {
		for _, item := range col.Items {
			key := AssetKey{Kind: item.Kind, Path: item.Path}
			cat.Membership[key] = append(cat.Membership[key], col.ID)
		}
	}
	for key := range cat.Membership {
		sort.Strings(cat.Membership[key])
	}

	return cat, nil
}

func walkFileKind(ctx context.Context, fs FileSystemPort, snapshotRoot string, spec kindSpec) ([]CatalogEntry, []error, error) {
	dirPath := fs.Join(snapshotRoot, spec.dir)
	var entries []CatalogEntry
	var warnings []error

	err := fs.Walk(ctx, dirPath, func(path string, info FileInfo, err error) error {
		if err != nil {
			if fs.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info == nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(info.Name(), spec.suffix) {
			return nil
		}

		rel, relErr := fs.Rel(snapshotRoot, path)
		if relErr != nil {
			return relErr
		}
		rel = toSlash(rel)

		data, readErr := fs.ReadFile(ctx, path)
		if readErr != nil {
			return readErr
		}

		entry := CatalogEntry{
			Kind:        spec.kind,
			Path:        rel,
			SourcePath:  path,
			Slug:        slugFromPath(rel, spec.suffix),
			ContentHash: sha256.Sum256(data),
		}
		entry.Name = titleCaseSlug(entry.Slug)

		block, hasHeader := splitFrontMatter(data)
		header, parseErr := parseHeader(block)
		if !hasHeader || parseErr != nil {
			switch {
			case parseErr != nil:
				warnings = append(warnings, MetadataWarning{Kind: spec.kind, Path: rel, Err: parseErr})
			default:
				warnings = append(warnings, MetadataWarning{Kind: spec.kind, Path: rel, Err: errors.New("missing front matter")})
			}
		} else {
			entry.Description = header.Description
			entry.Tags = append([]string(nil), header.Tags...)
			switch spec.kind {
			case KindInstruction:
				entry.Instruction.ApplyTo = header.ApplyTo
			case KindPrompt:
				entry.Prompt.Mode = header.Mode
			case KindChatMode:
				entry.ChatMode.Tools = append([]string(nil), header.Tools...)
			}
		}

		entries = append(entries, entry)
		return nil
	})
	if err != nil && !fs.IsNotExist(err) {
		return nil, nil, fmt.Errorf("walk %s: %w", dirPath, err)
	}
	return entries, warnings, nil
}

func walkCollections(ctx context.Context, fs FileSystemPort, snapshotRoot string, cat *Catalog) ([]CollectionEntry, []error, error) {
	dirPath := fs.Join(snapshotRoot, collectionsDir)
	var out []CollectionEntry
	var warnings []error

	err := fs.Walk(ctx, dirPath, func(path string, info FileInfo, err error) error {
		if err != nil {
			if fs.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info == nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(info.Name(), collectionSuffix) {
			return nil
		}

		rel, relErr := fs.Rel(snapshotRoot, path)
		if relErr != nil {
			return relErr
		}
		rel = toSlash(rel)

		data, readErr := fs.ReadFile(ctx, path)
		if readErr != nil {
			return readErr
		}

		var raw yamlCollectionFile
		if err := yaml.Unmarshal(data, &raw); err != nil {
			warnings = append(warnings, MetadataWarning{Kind: KindCollection, Path: rel, Err: err})
			return nil
		}

		col := CollectionEntry{
			ID:          raw.ID,
			Path:        rel,
			Name:        raw.Name,
			Description: raw.Description,
			Tags:        append([]string(nil), raw.Tags...),
		}

		for _, item := range raw.Items {
			kind := AssetKind(item.Kind)
			valid := kind == KindInstruction || kind == KindPrompt || kind == KindChatMode
			if valid {
				if _, ok := cat.Entry(AssetKey{Kind: kind, Path: item.Path}); ok {
					col.Items = append(col.Items, MemberRef{Kind: kind, Path: item.Path})
					continue
				}
			}
			reason := "unknown kind"
			if valid {
				reason = "no matching catalog entry"
			}
			warnings = append(warnings, CollectionWarning{
				CollectionID: raw.ID,
				Item:         MemberRef{Kind: kind, Path: item.Path},
				Reason:       reason,
			})
		}

		out = append(out, col)
		return nil
	})
	if err != nil && !fs.IsNotExist(err) {
		return nil, nil, fmt.Errorf("walk %s: %w", dirPath, err)
	}
	return out, warnings, nil
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
