package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/quillx/quill/internal/config/registry"
)

// EnvPrefix is the environment variable prefix Quill overlays onto config,
// e.g. QUILL_EDITOR_TABSIZE overrides "editor.tabSize".
const EnvPrefix = "QUILL"

// Config is Quill's resolved configuration: a JSON document validated
// against the settings registry, with typed accessors for the paths the
// editor core actually reads.
type Config struct {
	registry *registry.Registry
	raw      map[string]any
}

// Defaults returns the zero-config editor behavior: every registered
// setting at its default value. This is what a freshly-launched Quill
// with no config file and no environment overrides uses.
func Defaults() *Config {
	r := registry.NewWithDefaults()
	return &Config{registry: r, raw: flattenDefaults(r)}
}

// flattenDefaults expands the registry's dot-path defaults into a nested
// map matching the shape a JSON document would parse into.
func flattenDefaults(r *registry.Registry) map[string]any {
	out := make(map[string]any)
	for path, val := range r.Defaults() {
		setNested(out, path, val)
	}
	return out
}

func setNested(m map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	cur := m
	for i := 0; i < len(parts)-1; i++ {
		next, ok := cur[parts[i]].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[parts[i]] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}

// Load reads a JSON config document from path via gjson, overlaying it on
// top of the registry defaults. A missing file is not an error: Load then
// behaves exactly like Defaults(). Unknown keys in the document are kept
// verbatim in Config's raw form so Save round-trips them untouched.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("config: %s is not valid JSON", path)
	}

	parsed := gjson.ParseBytes(data)
	parsed.ForEach(func(key, value gjson.Result) bool {
		overlaySection(cfg.raw, key.String(), value)
		return true
	})

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlaySection recursively merges a gjson.Result into dst under the
// given dotted prefix, so a document need only specify the paths it wants
// to override.
func overlaySection(dst map[string]any, prefix string, value gjson.Result) {
	if value.IsObject() {
		value.ForEach(func(key, v gjson.Result) bool {
			overlaySection(dst, prefix+"."+key.String(), v)
			return true
		})
		return
	}
	setNested(dst, prefix, value.Value())
}

// validate checks every raw value the registry knows about against its
// Setting's rules, returning the first violation found.
func (c *Config) validate() error {
	for _, s := range c.registry.All() {
		val, ok := getNested(c.raw, s.Path)
		if !ok {
			continue
		}
		if err := s.Validate(val); err != nil {
			return fmt.Errorf("config: %s: %w", s.Path, err)
		}
	}
	return nil
}

func getNested(m map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	cur := any(m)
	for _, part := range parts {
		asMap, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		val, exists := asMap[part]
		if !exists {
			return nil, false
		}
		cur = val
	}
	return cur, true
}

// Save writes cfg back to path as pretty-printed JSON, via tidwall/sjson.
// Building the document key-by-key rather than marshaling a struct means
// keys Load never recognized (future settings, a newer Quill's additions)
// survive a load-modify-save round trip untouched.
func (c *Config) Save(path string) error {
	doc, err := c.marshal()
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	if err := os.WriteFile(path, pretty.Pretty(doc), 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}

func (c *Config) marshal() ([]byte, error) {
	doc := []byte("{}")
	var err error
	for _, path := range sortedPaths(c.raw, "") {
		val, _ := getNested(c.raw, path)
		doc, err = sjson.SetBytes(doc, path, val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return doc, nil
}

// sortedPaths walks a nested map and returns every leaf's dotted path, in
// a stable (alphabetical, depth-first) order so Save output is diffable.
func sortedPaths(m map[string]any, prefix string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortStrings(keys)

	var out []string
	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if nested, ok := m[k].(map[string]any); ok {
			out = append(out, sortedPaths(nested, path)...)
			continue
		}
		out = append(out, path)
	}
	return out
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// FromEnv overlays environment variables prefixed with prefix (use
// EnvPrefix for "QUILL") onto cfg, mutating and returning it. A setting
// path "editor.tabSize" is overridden by QUILL_EDITOR_TABSIZE, matching
// the section.path, uppercased and dot-to-underscore translated.
func (c *Config) FromEnv(prefix string) *Config {
	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		path, ok := envNameToPath(prefix, name, c.registry)
		if !ok {
			continue
		}
		setting := c.registry.Get(path)
		parsed := parseEnvValue(setting.Type, value)
		setNested(c.raw, path, parsed)
	}
	return c
}

// envNameToPath matches an environment variable name against every
// registered setting path, since the dotted-to-underscore mapping is
// ambiguous to reverse in general (both "editor.tabSize" and a
// hypothetical "editor.tab.size" upper-case to segments joined by "_").
func envNameToPath(prefix, envName string, r *registry.Registry) (string, bool) {
	if !strings.HasPrefix(envName, prefix+"_") {
		return "", false
	}
	suffix := strings.TrimPrefix(envName, prefix+"_")
	for _, s := range r.All() {
		if strings.EqualFold(pathToEnvSuffix(s.Path), suffix) {
			return s.Path, true
		}
	}
	return "", false
}

func pathToEnvSuffix(path string) string {
	return strings.ToUpper(strings.ReplaceAll(path, ".", "_"))
}

func parseEnvValue(t registry.SettingType, raw string) any {
	switch t {
	case registry.TypeInt:
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	case registry.TypeFloat:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case registry.TypeBool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	case registry.TypeDuration:
		if d, err := time.ParseDuration(raw); err == nil {
			return d.String()
		}
	case registry.TypeArray:
		return strings.Split(raw, ",")
	}
	return raw
}

// accessor returns a registry.Accessor bound to this config's current raw
// values, for the typed Get* helpers below.
func (c *Config) accessor() *registry.Accessor {
	return registry.NewAccessor(c.registry, registry.NewMapValueStore(c.raw))
}

// TabWidth returns editor.tabSize, the number of columns a tab stop
// advances and the width TabIn/TabOut use for soft-tab insertion.
func (c *Config) TabWidth() int {
	n, _ := c.accessor().GetInt("editor.tabSize")
	return n
}

// TabStr returns TabWidth() spaces when editor.insertSpaces is set,
// otherwise a literal tab character.
func (c *Config) TabStr() string {
	useSpaces, _ := c.accessor().GetBool("editor.insertSpaces")
	if !useSpaces {
		return "\t"
	}
	return strings.Repeat(" ", c.TabWidth())
}

// MaxUndoEntries returns history.maxUndoEntries, the per-buffer undo
// history cap.
func (c *Config) MaxUndoEntries() int {
	n, _ := c.accessor().GetInt("history.maxUndoEntries")
	return n
}

// RecoveryDirectory returns recovery.directory, or "" to mean the OS
// default (cmd/quill resolves that default itself).
func (c *Config) RecoveryDirectory() string {
	s, _ := c.accessor().GetString("recovery.directory")
	return s
}

// LoggingLevel returns logging.level ("debug", "info", "warn", "error").
func (c *Config) LoggingLevel() string {
	s, _ := c.accessor().GetString("logging.level")
	return s
}

// LoggingFile returns logging.file, or "" to mean stderr-only logging.
func (c *Config) LoggingFile() string {
	s, _ := c.accessor().GetString("logging.file")
	return s
}
