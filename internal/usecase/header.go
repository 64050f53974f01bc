package usecase

import (
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// frontMatterHeader is the raw decoded structured header block shared by all
// three file-asset kinds; kind-specific fields are picked out by the caller.
type frontMatterHeader struct {
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	ApplyTo     string   `yaml:"applyTo"`
	Mode        string   `yaml:"mode"`
	Tools       []string `yaml:"tools"`
}

// splitFrontMatter extracts the leading "---"-delimited YAML block from a
// file's raw bytes, if present. ok is false when no header block is found.
func splitFrontMatter(data []byte) (block []byte, ok bool) {
	text := string(data)
	text = strings.TrimPrefix(text, "\xef\xbb\xbf") // BOM
	if !strings.HasPrefix(text, "---") {
		return nil, false
	}
	rest := text[3:]
	// Require the opening delimiter to be alone on its line.
	if len(rest) > 0 && rest[0] != '\n' && rest[0] != '\r' {
		return nil, false
	}
	rest = strings.TrimPrefix(rest, "\r\n")
	rest = strings.TrimPrefix(rest, "\n")

	idx := indexClosingDelimiter(rest)
	if idx < 0 {
		return nil, false
	}
	return []byte(rest[:idx]), true
}

// indexClosingDelimiter finds the byte offset of a line containing only
// "---" (optionally "...") that closes a YAML front-matter block.
func indexClosingDelimiter(s string) int {
	lines := strings.Split(s, "\n")
	offset := 0
	for _, line := range lines {
		trimmed := strings.TrimRight(line, "\r")
		if trimmed == "---" || trimmed == "..." {
			return offset
		}
		offset += len(line) + 1
	}
	return -1
}

// parseHeader decodes a front-matter block into the shared header shape. An
// empty block returns a zero-value header and a nil error; a decode failure
// returns a zero-value header and the error, for which callers record a
// MetadataWarning and proceed with defaults.
func parseHeader(block []byte) (frontMatterHeader, error) {
	var h frontMatterHeader
	if len(block) == 0 {
		return h, nil
	}
	if err := yaml.Unmarshal(block, &h); err != nil {
		return frontMatterHeader{}, err
	}
	return h, nil
}

// slugFromPath derives the filename stem with the kind-specific dotted
// suffix stripped, e.g. "security.instructions.md" -> "security".
func slugFromPath(path string, suffixes ...string) string {
	base := path
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	for _, suffix := range suffixes {
		if strings.HasSuffix(base, suffix) {
			return strings.TrimSuffix(base, suffix)
		}
	}
	return base
}

// titleCaseSlug replaces hyphens/underscores with spaces and title-cases
// each word, used as the default display name when none is supplied.
func titleCaseSlug(slug string) string {
	fields := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, f := range fields {
		if f == "" {
			continue
		}
		runes := []rune(f)
		runes[0] = unicode.ToUpper(runes[0])
		fields[i] = string(runes)
	}
	return strings.Join(fields, " ")
}
