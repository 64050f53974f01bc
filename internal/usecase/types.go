package usecase

import "time"

// FileInfo represents file information, decoupled from os.FileInfo so adapters
// can be swapped in tests.
type FileInfo interface {
	Name() string
	Size() int64
	Mode() int
	ModTime() time.Time
	IsDir() bool
	IsSymlink() bool
	IsRegular() bool
	Sys() interface{}
}

// WalkFunc is called for each file/directory during Walk.
type WalkFunc func(path string, info FileInfo, err error) error

// DirEntry represents a directory entry.
type DirEntry interface {
	Name() string
	IsDir() bool
}

// LockInfo is the JSON body written inside a held cache/enablement guard lock.
type LockInfo struct {
	PID         int       `json:"pid"`
	StartTime   time.Time `json:"start_time"`
	ProjectRoot string    `json:"project_root"`
	CacheRoot   string    `json:"cache_root"`
	Hostname    string    `json:"hostname"`
}

// AssetKind identifies one of the four catalog asset kinds.
type AssetKind string

const (
	KindInstruction AssetKind = "Instruction"
	KindPrompt      AssetKind = "Prompt"
	KindChatMode    AssetKind = "ChatMode"
	KindCollection  AssetKind = "Collection"
)

// FileKinds lists the asset kinds mirrored from upstream as individual files.
var FileKinds = []AssetKind{KindInstruction, KindPrompt, KindChatMode}

// LocalStatus is the relation of a locally installed file to its upstream entry.
type LocalStatus string

const (
	StatusMissing       LocalStatus = "Missing"
	StatusSame          LocalStatus = "Same"
	StatusDiff          LocalStatus = "Diff"
	StatusNotApplicable LocalStatus = "NotApplicable"
)

// AssetKey identifies a catalog entry by kind and path, independent of position.
type AssetKey struct {
	Kind AssetKind
	Path string
}

func (k AssetKey) String() string { return string(k.Kind) + ":" + k.Path }

// InstructionMeta holds instruction-specific header fields.
type InstructionMeta struct {
	ApplyTo string
}

// PromptMeta holds prompt-specific header fields.
type PromptMeta struct {
	Mode string
}

// ChatModeMeta holds chat-mode-specific header fields.
type ChatModeMeta struct {
	Tools []string
}

// CatalogEntry is a file asset mirrored from the active snapshot.
type CatalogEntry struct {
	Kind        AssetKind
	Path        string // relative to snapshot root, forward-slash separated
	SourcePath  string // absolute path inside the active snapshot
	Slug        string
	Name        string
	Description string
	Tags        []string
	Instruction InstructionMeta
	Prompt      PromptMeta
	ChatMode    ChatModeMeta
	ContentHash [32]byte
}

func (e CatalogEntry) Key() AssetKey { return AssetKey{Kind: e.Kind, Path: e.Path} }

// MemberRef is one line of a collection's item list.
type MemberRef struct {
	Kind AssetKind
	Path string
}

// CollectionEntry is a logical asset grouping file assets by reference.
type CollectionEntry struct {
	ID          string
	Path        string // relative path of the collection file itself
	Name        string
	Description string
	Tags        []string
	Items       []MemberRef // resolved members only, in declared order
}

// MetadataWarning records a recoverable header-parse defect on a file asset.
type MetadataWarning struct {
	Kind AssetKind
	Path string
	Err  error
}

func (w MetadataWarning) Error() string {
	return "metadata warning: " + string(w.Kind) + ":" + w.Path + ": " + w.Err.Error()
}

func (w MetadataWarning) Unwrap() error { return w.Err }

// CollectionWarning records an item in a collection file that could not be resolved.
type CollectionWarning struct {
	CollectionID string
	Item         MemberRef
	Reason       string
}

func (w CollectionWarning) Error() string {
	return "collection warning: " + w.CollectionID + ": unresolved item " + string(w.Item.Kind) + ":" + w.Item.Path + ": " + w.Reason
}

// entryRef locates a file-asset entry within its kind-specific slice.
type entryRef struct {
	kind AssetKind
	idx  int
}

// Catalog is the full output of the catalog builder: the four asset lists plus
// auxiliary lookup indexes.
type Catalog struct {
	Instructions []CatalogEntry
	Prompts      []CatalogEntry
	ChatModes    []CatalogEntry
	Collections  []CollectionEntry

	byKey map[AssetKey]entryRef

	// Membership maps a file asset's key to the sorted collection ids that reference it.
	Membership map[AssetKey][]string

	Warnings []error
}

// Entry returns the catalog entry for a file-asset key, if present.
func (c *Catalog) Entry(key AssetKey) (CatalogEntry, bool) {
	if c.byKey == nil {
		return CatalogEntry{}, false
	}
	ref, ok := c.byKey[key]
	if !ok {
		return CatalogEntry{}, false
	}
	switch ref.kind {
	case KindInstruction:
		return c.Instructions[ref.idx], true
	case KindPrompt:
		return c.Prompts[ref.idx], true
	case KindChatMode:
		return c.ChatModes[ref.idx], true
	}
	return CatalogEntry{}, false
}

// FileEntriesSorted returns every file-asset entry, grouped by kind in
// instructions/prompts/chatmodes order, lexicographic by path within each kind.
func (c *Catalog) FileEntriesSorted() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(c.Instructions)+len(c.Prompts)+len(c.ChatModes))
	out = append(out, c.Instructions...)
	out = append(out, c.Prompts...)
	out = append(out, c.ChatModes...)
	return out
}

// EnablementRecord is the persisted user-intent document.
type EnablementRecord struct {
	SchemaVersion int
	UpdatedAt     time.Time
	Entries       map[AssetKey]bool
}

// EnablementSchemaVersion is the current on-disk schema version written by Save.
const EnablementSchemaVersion = 1

// NewEnablementRecord returns an empty record at the current schema version.
func NewEnablementRecord() EnablementRecord {
	return EnablementRecord{SchemaVersion: EnablementSchemaVersion, Entries: make(map[AssetKey]bool)}
}

// Get returns the explicit value for key, and whether one is present.
func (r EnablementRecord) Get(key AssetKey) (bool, bool) {
	v, ok := r.Entries[key]
	return v, ok
}

// SetExplicit returns a copy of r with key set to value.
func (r EnablementRecord) SetExplicit(key AssetKey, value bool) EnablementRecord {
	out := r.clone()
	out.Entries[key] = value
	return out
}

// Clear returns a copy of r with key's explicit entry removed.
func (r EnablementRecord) Clear(key AssetKey) EnablementRecord {
	out := r.clone()
	delete(out.Entries, key)
	return out
}

func (r EnablementRecord) clone() EnablementRecord {
	entries := make(map[AssetKey]bool, len(r.Entries))
	for k, v := range r.Entries {
		entries[k] = v
	}
	return EnablementRecord{SchemaVersion: r.SchemaVersion, UpdatedAt: r.UpdatedAt, Entries: entries}
}

// LocalScan maps an install-relative asset key to its content hash, or absence.
type LocalScan struct {
	Hashes  map[AssetKey][32]byte
	Present map[AssetKey]bool
	Orphans []string // install-relative paths claimed by no catalog entry
}

// NewLocalScan returns an empty scan result.
func NewLocalScan() LocalScan {
	return LocalScan{Hashes: map[AssetKey][32]byte{}, Present: map[AssetKey]bool{}}
}

// AssetView is a derived, never-persisted presentation of one catalog entry.
type AssetView struct {
	Kind        AssetKind
	Path        string
	Slug        string
	Name        string
	Description string
	Tags        []string
	Instruction InstructionMeta
	Prompt      PromptMeta
	ChatMode    ChatModeMeta

	EffectiveEnabled bool
	Explicit         *bool
	Inherited        *bool
	LocalStatus      LocalStatus
	Collections      []string

	// Collection-only rollups; zero for file assets.
	MemberCount  int
	EnabledCount int
	DiffCount    int
}

// Key returns the (kind, path) identity of the view.
func (v AssetView) Key() AssetKey { return AssetKey{Kind: v.Kind, Path: v.Path} }

// Snapshot describes one extracted upstream archive pinned to a commit id.
type Snapshot struct {
	CommitID      string
	RootDir       string
	FetchedAt     time.Time
	ArchiveSHA256 [32]byte
}

// Fresh reports whether the snapshot was fetched within the freshness window.
func (s Snapshot) Fresh(now time.Time, window time.Duration) bool {
	return now.Sub(s.FetchedAt) < window
}

// Paths is the deterministic set of filesystem locations derived from a project root.
type Paths struct {
	Root            string
	InstructionsDir string
	PromptsDir      string
	ChatModesDir    string
	CacheRoot       string
	BackupRoot      string
	EnablementFile  string
	LockDir         string
}

// InstallDir returns the install directory for a file-asset kind.
func (p Paths) InstallDir(kind AssetKind) string {
	switch kind {
	case KindInstruction:
		return p.InstructionsDir
	case KindPrompt:
		return p.PromptsDir
	case KindChatMode:
		return p.ChatModesDir
	}
	return ""
}

// KindDir returns the install-directory leaf name for a file-asset kind.
func KindDir(kind AssetKind) string {
	switch kind {
	case KindInstruction:
		return "instructions"
	case KindPrompt:
		return "prompts"
	case KindChatMode:
		return "chatmodes"
	}
	return ""
}

// AppConfig is the resolved, ready-to-use runtime configuration, analogous to
// the teacher's runtime Config produced from its on-disk ConfigFile.
type AppConfig struct {
	ProjectRoot       string
	UpstreamRepo      string // "owner/repo" slug of the upstream asset repository
	FreshnessWindow   time.Duration
	SnapshotRetain    int
	UseColor          bool
	Verbose           bool
	NotifyOnReload    bool
	NotificationSound string
}
