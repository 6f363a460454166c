package source

import (
	"os"
	"path/filepath"
	"sort"
)

// Scan resolves path into the import files it names. A file is returned as-is;
// a directory is walked for *.jsonl files, sorted by path so imports apply in a
// stable order.
func Scan(path string) ([]DiscoveredFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []DiscoveredFile{{Path: path, Name: filepath.Base(path)}}, nil
	}

	var files []DiscoveredFile
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() || filepath.Ext(p) != ".jsonl" {
			return nil
		}
		files = append(files, DiscoveredFile{Path: p, Name: d.Name()})
		return nil
	})
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}
