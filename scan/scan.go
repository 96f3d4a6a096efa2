// Package scan lists the wallpaper candidates in a directory.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/quietmisdreavus/qmwc/logger"
)

// Extensions are the file extensions accepted as wallpapers. Matching is
// case-sensitive.
var Extensions = []string{"jpg", "jpeg", "png", "bmp"}

// DirectoryError is returned when the wallpaper directory itself cannot
// be listed.
type DirectoryError struct {
	Dir string
	Err error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("could not read wallpaper directory %q: %v", e.Dir, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// Images returns the candidates in dir using the default Extensions.
func Images(ctx context.Context, dir string) ([]string, error) {
	return Dir(ctx, dir, Extensions)
}

// Dir returns the regular files directly inside dir whose extension is in
// allowed, sorted by byte order. Each path is filepath.Join(dir, name), so
// it is cleaned: "./walls/" yields "walls/a.png". Symlinks are followed.
// Entries that can't be inspected are skipped.
func Dir(ctx context.Context, dir string, allowed []string) ([]string, error) {
	log := logger.FromContext(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DirectoryError{Dir: dir, Err: err}
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()

		ext, ok := extension(name)
		if !ok || !slices.Contains(allowed, ext) {
			continue
		}

		path := filepath.Join(dir, name)

		// os.Stat follows symlinks; DirEntry.Info does not
		info, err := os.Stat(path)
		if err != nil {
			log.DebugContext(ctx, "skipping unreadable entry", "path", path, "err", err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		files = append(files, path)
	}

	slices.Sort(files)
	return files, nil
}

// extension returns the text after the final dot in name.
func extension(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", false
	}
	return name[i+1:], true
}
