package storage

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Storer is read access to a set of validated records keyed by id.
type Storer[T ValidatingSpec] interface {
	Get(string) T
	GetAll() map[string]T
}

// FileStore holds the records of every *.json asset below a directory. It is
// filled once by NewFileStore and never written afterwards, so it is safe for
// concurrent use.
type FileStore[T ValidatingSpec] struct {
	records map[string]T
}

// NewFileStore loads and validates every asset below root. Any unreadable,
// invalid or duplicated asset fails the whole load.
func NewFileStore[T ValidatingSpec](root string) (*FileStore[T], error) {
	records := map[string]T{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		name, relErr := filepath.Rel(root, path)
		if relErr != nil {
			name = filepath.Base(path)
		}

		asset, err := readAsset[T](path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", name, err)
		}
		if err := asset.Validate(); err != nil {
			return fmt.Errorf("validating %s: %w", name, err)
		}
		if _, ok := records[asset.Id()]; ok {
			return fmt.Errorf("loading %s: duplicate id %s", name, asset.Id())
		}

		records[asset.Id()] = asset.Spec
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded assets", "path", root, "count", len(records))
	return &FileStore[T]{records: records}, nil
}

func readAsset[T ValidatingSpec](path string) (*Asset[T], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	asset := &Asset[T]{}
	if err := json.Unmarshal(data, asset); err != nil {
		return nil, fmt.Errorf("decoding asset: %w", err)
	}
	return asset, nil
}

// Get returns the record for id, or the zero value when it is unknown.
func (s *FileStore[T]) Get(id string) T {
	return s.records[id]
}

// GetAll returns a copy of every record keyed by id.
func (s *FileStore[T]) GetAll() map[string]T {
	out := make(map[string]T, len(s.records))
	for id, v := range s.records {
		out[id] = v
	}
	return out
}
