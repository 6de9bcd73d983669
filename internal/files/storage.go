// Package files is the local upload store. It hands out stable /uploads/...
// references; callers persist the reference, never the disk path.
package files

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const refPrefix = "/uploads/"

type Storage struct {
	root string
}

func New(root string) (*Storage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Storage{root: root}, nil
}

// Save streams src to disk under category (e.g. "documents",
// "car_thumbnails") and returns the reference. Names carry a timestamp plus
// a uuid fragment, so saving the same filename twice yields distinct
// references.
func (s *Storage) Save(category, vehicleID, filename string, src io.Reader) (string, error) {
	dir := filepath.Join(s.root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s_%s_%s",
		sanitize(vehicleID),
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8],
		sanitize(filename))
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return refPrefix + category + "/" + name, nil
}

// Resolve maps a reference back to the disk path, rejecting anything that
// would escape the root.
func (s *Storage) Resolve(ref string) (string, error) {
	if !strings.HasPrefix(ref, refPrefix) {
		return "", errors.New("not an upload reference")
	}
	rel := path.Clean(strings.TrimPrefix(ref, refPrefix))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") || path.IsAbs(rel) {
		return "", errors.New("invalid upload reference")
	}
	p := filepath.Join(s.root, filepath.FromSlash(rel))
	if _, err := os.Stat(p); err != nil {
		return "", err
	}
	return p, nil
}

// sanitize keeps letters, digits, dot, dash and underscore; everything else
// (path separators included) becomes an underscore.
func sanitize(name string) string {
	name = path.Base(filepath.ToSlash(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" || out == "." || out == ".." {
		out = "file"
	}
	return out
}
