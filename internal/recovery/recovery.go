package recovery

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// EntryKind distinguishes a path-backed buffer from a scratch buffer in
// the index file.
type EntryKind uint8

const (
	KindPath EntryKind = iota
	KindScratch
)

// Entry is one parsed (or about-to-be-written) index-file line.
type Entry struct {
	ID            string
	Kind          EntryKind
	Path          string
	ScratchNumber uint32
}

// Buffer is the minimal view of an open buffer recovery needs: its
// display name (either a filesystem path or "Scratch N") and its current
// text. cmd/quill builds one from each of the editor's open buffers.
type Buffer struct {
	Name string
	Text string
}

const indexFileName = "index"

var scratchNamePattern = regexp.MustCompile(`^Scratch (\d+)$`)

// NewUUID returns a 32-hex-digit UUID-shaped identifier. Generated with
// crypto/rand rather than a UUID library: no example repo in the pack
// pulls one in, so there is nothing to ground a third-party choice on.
func NewUUID() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("recovery: generate uuid: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}

// Save writes one content file per buffer plus an index file into dir,
// overwriting any existing recovery state there. It does not replace dir
// atomically — that's preferred but not required, since Quill only ever
// calls Save between input dispatches, with no reader racing it.
func Save(dir string, buffers []Buffer) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("recovery: create directory: %w", err)
	}

	if err := clearContentFiles(dir); err != nil {
		return err
	}

	var lines []string
	for _, b := range buffers {
		id, err := NewUUID()
		if err != nil {
			return err
		}

		entry := entryForName(b.Name, id)

		contentPath := filepath.Join(dir, contentFileName(b.Name, id))
		if err := os.WriteFile(contentPath, []byte(b.Text), 0o644); err != nil {
			return fmt.Errorf("recovery: write buffer content: %w", err)
		}

		lines = append(lines, encodeEntry(entry))
	}

	indexPath := filepath.Join(dir, indexFileName)
	if err := os.WriteFile(indexPath, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("recovery: write index: %w", err)
	}
	return nil
}

// clearContentFiles removes every file in dir except the index file, so a
// Save that persists fewer buffers than last time doesn't leave orphaned
// content files behind.
func clearContentFiles(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("recovery: list directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || e.Name() == indexFileName {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("recovery: remove stale content file: %w", err)
		}
	}
	return nil
}

func entryForName(name, id string) Entry {
	if m := scratchNamePattern.FindStringSubmatch(name); m != nil {
		if n, err := strconv.ParseUint(m[1], 10, 32); err == nil {
			return Entry{ID: id, Kind: KindScratch, ScratchNumber: uint32(n)}
		}
	}
	return Entry{ID: id, Kind: KindPath, Path: name}
}

func encodeEntry(e Entry) string {
	switch e.Kind {
	case KindScratch:
		return fmt.Sprintf("Scratch:%s,%d", e.ID, e.ScratchNumber)
	default:
		return fmt.Sprintf("Path:%s,%s", e.ID, e.Path)
	}
}

func contentFileName(name, id string) string {
	return slug(name) + "_" + id
}

// slug converts name into the ascii-slug content files are named with:
// letters, digits, '-' and '_' pass through; everything else (path
// separators, spaces, unicode) becomes '-'.
func slug(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "buffer"
	}
	return b.String()
}

// Load reads dir's index file and the content file for each entry it
// names, skipping (rather than failing on) unparseable index lines or
// entries whose content file is missing, to stay forward-compatible with
// unknown future prefix lines.
func Load(dir string) ([]Buffer, error) {
	f, err := os.Open(filepath.Join(dir, indexFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("recovery: open index: %w", err)
	}
	defer f.Close()

	var buffers []Buffer
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		entry, name, ok := decodeLine(scanner.Text())
		if !ok {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, contentFileName(name, entry.ID)))
		if err != nil {
			continue
		}
		buffers = append(buffers, Buffer{Name: name, Text: string(content)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("recovery: scan index: %w", err)
	}
	return buffers, nil
}

func decodeLine(line string) (Entry, string, bool) {
	prefix, rest, ok := strings.Cut(line, ":")
	if !ok {
		return Entry{}, "", false
	}

	id, value, ok := strings.Cut(rest, ",")
	if !ok || id == "" {
		return Entry{}, "", false
	}

	switch prefix {
	case "Path":
		return Entry{ID: id, Kind: KindPath, Path: value}, value, true
	case "Scratch":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return Entry{}, "", false
		}
		name := fmt.Sprintf("Scratch %d", n)
		return Entry{ID: id, Kind: KindScratch, ScratchNumber: uint32(n)}, name, true
	default:
		return Entry{}, "", false
	}
}
