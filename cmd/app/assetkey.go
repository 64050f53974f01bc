package main

import (
	"fmt"
	"strings"

	"github.com/astrosteveo/awesome-copilot-tui/internal/usecase"
)

// parseAssetKey parses a "Kind:path" argument as produced by AssetKey.String,
// the form the list command prints alongside every row.
func parseAssetKey(arg string) (usecase.AssetKey, error) {
	kindStr, path, ok := strings.Cut(arg, ":")
	if !ok || path == "" {
		return usecase.AssetKey{}, fmt.Errorf("expected KIND:PATH (e.g. Prompt:prompts/foo.prompt.md), got %q: %w", arg, usecase.ErrUsage)
	}
	kind := usecase.AssetKind(kindStr)
	switch kind {
	case usecase.KindInstruction, usecase.KindPrompt, usecase.KindChatMode, usecase.KindCollection:
		return usecase.AssetKey{Kind: kind, Path: path}, nil
	default:
		return usecase.AssetKey{}, fmt.Errorf("unknown asset kind %q: %w", kindStr, usecase.ErrUsage)
	}
}
