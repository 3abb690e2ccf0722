package config

// The host site generator's config loader case-folds keys and historically
// accepted several spellings for the same concept. Everything below is the
// raw, shape-tolerant view of the descriptor; Loader.normalize converts it
// into the one canonical domain.Manifest and nothing past the loader ever
// branches on input shape again.

// document is the raw descriptor. Entries may appear under "entries" or as
// a bare top-level list; the whole document may be nested under a
// "collector-cache" wrapper key.
type document struct {
	Component string     `yaml:"component"`
	CacheDir  string     `yaml:"cache-dir"`
	Entries   []entryDTO `yaml:"entries"`
}

// entryDTO is one raw cache entry.
type entryDTO struct {
	Run  runDTO    `yaml:"run"`
	Scan []scanDTO `yaml:"scan"`
}

// runDTO declares the cacheable command. CacheDir is where the command
// writes its output, relative to the worktree.
type runDTO struct {
	Key      string   `yaml:"key"`
	Sources  []string `yaml:"sources"`
	CacheDir string   `yaml:"cache-dir"`
	Command  string   `yaml:"command"`
}

// scanDTO declares one ingest rule, passed through to the site generator.
type scanDTO struct {
	Dir   string `yaml:"dir"`
	Files string `yaml:"files"`
	Into  string `yaml:"into"`
}
