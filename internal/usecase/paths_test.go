package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestResolvePaths_ValidRoot(t *testing.T) {
	fs := newTestFileSystem()
	root := t.TempDir()

	paths, err := ResolvePaths(context.Background(), fs, root)
	if err != nil {
		t.Fatalf("ResolvePaths: %v", err)
	}

	want := filepath.Join(root, ".github", "instructions")
	if paths.InstructionsDir != want {
		t.Errorf("InstructionsDir = %q, want %q", paths.InstructionsDir, want)
	}
	if paths.EnablementFile != filepath.Join(root, "data", "enablement.json") {
		t.Errorf("unexpected EnablementFile %q", paths.EnablementFile)
	}
	if paths.LockDir != filepath.Join(root, ".awesome-copilot-tui", "lock") {
		t.Errorf("unexpected LockDir %q", paths.LockDir)
	}
}

func TestResolvePaths_MissingRootFailsWithErrStartup(t *testing.T) {
	fs := newTestFileSystem()
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := ResolvePaths(context.Background(), fs, missing)
	if !errors.Is(err, ErrStartup) {
		t.Fatalf("expected ErrStartup, got %v", err)
	}
}

func TestPaths_InstallDirAndKindDir(t *testing.T) {
	paths := Paths{InstructionsDir: "i", PromptsDir: "p", ChatModesDir: "c"}
	cases := []struct {
		kind AssetKind
		dir  string
	}{
		{KindInstruction, "i"},
		{KindPrompt, "p"},
		{KindChatMode, "c"},
		{KindCollection, ""},
	}
	for _, tc := range cases {
		if got := paths.InstallDir(tc.kind); got != tc.dir {
			t.Errorf("InstallDir(%s) = %q, want %q", tc.kind, got, tc.dir)
		}
	}

	if KindDir(KindInstruction) != "instructions" {
		t.Errorf("unexpected KindDir for instruction")
	}
	if KindDir(KindCollection) != "" {
		t.Errorf("expected empty KindDir for collection")
	}
}
