// Package config provides the collector descriptor loader.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/collector/internal/core/domain"
	"go.trai.ch/collector/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the descriptor looked up in the worktree.
const DefaultFilename = "collector.yaml"

// DefaultCacheDir is used when the descriptor does not name one.
const DefaultCacheDir = ".cache/collector"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader for YAML descriptors.
type Loader struct {
	Filename string
	logger   ports.Logger
}

// NewLoader creates a Loader reading DefaultFilename.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Filename: DefaultFilename, logger: logger}
}

// Load reads the descriptor from the given working directory and returns the
// normalized manifest. Entries missing required fields are skipped with a
// warning; the remaining entries still load.
func (l *Loader) Load(cwd string) (*domain.Manifest, error) {
	path := filepath.Join(cwd, l.Filename)

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read descriptor"), "path", path)
	}

	doc, err := decode(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	m := &domain.Manifest{
		Namespace: doc.Component,
		CacheDir:  doc.CacheDir,
	}
	if m.Namespace == "" {
		m.Namespace = defaultNamespace(cwd)
	}
	if m.CacheDir == "" {
		m.CacheDir = DefaultCacheDir
	}

	for i, e := range doc.Entries {
		unit, err := toUnit(e)
		if err != nil {
			l.logger.Warn("skipping invalid collector entry", "index", i, "error", err.Error())
			continue
		}
		m.Units = append(m.Units, unit)
	}

	return m, nil
}

// decode parses the raw YAML and normalizes its shape in one step: the
// optional collector-cache wrapper, a bare entry list at the top level, and
// the host loader's alternate field spellings all collapse into the one
// canonical document. Nothing past this function branches on input shape.
func decode(data []byte) (*document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, zerr.Wrap(err, "failed to parse descriptor")
	}

	raw = canonicalize(raw)

	if m, ok := raw.(map[string]any); ok {
		if inner, ok := m["collector-cache"]; ok {
			raw = inner
		}
	}
	if list, ok := raw.([]any); ok {
		raw = map[string]any{"entries": list}
	}

	// Round-trip through YAML into the typed document. The keys are
	// canonical at this point, so the struct tags are authoritative.
	canon, err := yaml.Marshal(raw)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to re-encode descriptor")
	}
	var doc document
	if err := yaml.Unmarshal(canon, &doc); err != nil {
		return nil, zerr.Wrap(err, "failed to decode descriptor")
	}
	return &doc, nil
}

// canonicalize rewrites every map key to its canonical spelling, recursing
// into nested maps and lists.
func canonicalize(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, val := range vv {
			out[canonicalKey(k)] = canonicalize(val)
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, val := range vv {
			out[i] = canonicalize(val)
		}
		return out
	default:
		return v
	}
}

// canonicalKey folds case and separator noise introduced by the host config
// loader, then maps historical aliases onto the canonical field name.
func canonicalKey(k string) string {
	folded := strings.ToLower(k)
	folded = strings.ReplaceAll(folded, "-", "")
	folded = strings.ReplaceAll(folded, "_", "")

	switch folded {
	case "cachedir":
		return "cache-dir"
	case "collectorcache":
		return "collector-cache"
	case "cmd", "command":
		return "command"
	case "pattern", "files":
		return "files"
	case "destination", "into":
		return "into"
	case "namespace", "component":
		return "component"
	default:
		return folded
	}
}

func toUnit(e entryDTO) (domain.WorkUnit, error) {
	switch {
	case e.Run.Key == "":
		return domain.WorkUnit{}, zerr.Wrap(domain.ErrConfigInvalid, "missing key")
	case len(e.Run.Sources) == 0:
		return domain.WorkUnit{}, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "missing sources"), "key", e.Run.Key)
	case e.Run.CacheDir == "":
		return domain.WorkUnit{}, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "missing cache-dir"), "key", e.Run.Key)
	}

	unit := domain.WorkUnit{
		Key:       e.Run.Key,
		Sources:   e.Run.Sources,
		OutputDir: filepath.Clean(e.Run.CacheDir),
		Command:   e.Run.Command,
	}
	for _, s := range e.Scan {
		unit.Scan = append(unit.Scan, domain.ScanRule{
			Dir:   filepath.Clean(s.Dir),
			Files: s.Files,
			Into:  s.Into,
		})
	}
	return unit, nil
}

func defaultNamespace(cwd string) string {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return filepath.Base(cwd)
	}
	return filepath.Base(abs)
}
