package models

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discovery finds industry directories and their documents on the filesystem
type Discovery struct {
	root string
}

// NewDiscovery creates a discovery rooted at the sources directory
func NewDiscovery(root string) *Discovery {
	return &Discovery{root: root}
}

// Industries returns the industry directories directly below the root, sorted by name
func (d *Discovery) Industries() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, err
	}

	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(d.root, entry.Name()))
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

// Documents returns every YAML file below dir in lexical order
func Documents(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}
