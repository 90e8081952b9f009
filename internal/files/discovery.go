package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// tableExtensions lists the extensions picked up from a directory
var tableExtensions = map[string]struct{}{
	".csv":  {},
	".tsv":  {},
	".txt":  {},
	".xlsx": {},
}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery finds input tables relative to a base path
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance. An empty basePath
// resolves relative arguments against the working directory.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

func (d *Discovery) resolve(path string) string {
	if d.basePath == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(d.basePath, path)
}

// IsTableFile reports whether name has an extension the reader understands
func IsTableFile(name string) bool {
	_, ok := tableExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// FindTableFiles lists the table files directly inside dir, sorted by name.
// Files written by earlier runs (*_cleaned.csv) are left out.
func (d *Discovery) FindTableFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !IsTableFile(name) || isOutput(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// FindFilesByPattern finds regular files matching a glob pattern
func (d *Discovery) FindFilesByPattern(pattern string) ([]FileInfo, error) {
	matches, err := filepath.Glob(d.resolve(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	var files []FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, FileInfo{
			Path:    match,
			Name:    filepath.Base(match),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return files, nil
}

// ExpandInputs turns arguments into input paths. Directories and glob
// patterns are expanded; duplicates are dropped, keeping the first.
func (d *Discovery) ExpandInputs(args []string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}

	for _, arg := range args {
		switch {
		case isDir(d.resolve(arg)):
			found, err := d.FindTableFiles(arg)
			if err != nil {
				return nil, err
			}
			if len(found) == 0 {
				return nil, fmt.Errorf("no table files in directory %s", arg)
			}
			for _, f := range found {
				add(f.Path)
			}
		case strings.ContainsAny(arg, "*?["):
			found, err := d.FindFilesByPattern(arg)
			if err != nil {
				return nil, err
			}
			if len(found) == 0 {
				return nil, fmt.Errorf("no files match %s", arg)
			}
			for _, f := range found {
				add(f.Path)
			}
		default:
			add(d.resolve(arg))
		}
	}
	return out, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isOutput(name string) bool {
	return strings.HasSuffix(strings.TrimSuffix(name, filepath.Ext(name)), "_cleaned")
}
