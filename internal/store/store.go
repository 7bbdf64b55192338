package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tmarlow/kith/internal/contact"
)

// Load reads and validates the contact collection from path.
//
// It fails with a StoreError if the file is missing, unreadable, not a
// top-level mapping, contains duplicate names, or carries a malformed
// frequency. Update ordering is normalized by stable sort on load, so
// hand-edited files need not keep updates sorted themselves.
func Load(path string) (*contact.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &StoreError{Code: ErrCodeNotFound, Path: path, Message: "store file does not exist", Err: err}
		}
		return nil, &StoreError{Code: ErrCodeReadFailed, Path: path, Message: "failed to read store file", Err: err}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &StoreError{Code: ErrCodeDecodeFailed, Path: path, Message: "failed to parse YAML", Err: err}
	}

	col := contact.NewCollection()
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// Empty file: an empty collection, not an error.
		return col, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &StoreError{
			Code:    ErrCodeDecodeFailed,
			Path:    path,
			Message: "top level must be a mapping from contact name to fields",
		}
	}

	// Mapping nodes hold alternating key/value children.
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		name := keyNode.Value

		ct := contact.New(name)
		if valNode.Kind != 0 && valNode.Tag != "!!null" {
			if err := valNode.Decode(ct); err != nil {
				var fe *contact.FrequencyError
				if errors.As(err, &fe) {
					return nil, &StoreError{
						Code:    ErrCodeBadFrequency,
						Path:    path,
						Message: fmt.Sprintf("contact %q: %v", name, fe),
					}
				}
				return nil, &StoreError{
					Code:    ErrCodeDecodeFailed,
					Path:    path,
					Message: fmt.Sprintf("contact %q (line %d)", name, keyNode.Line),
					Err:     err,
				}
			}
		}
		ct.Name = name
		ct.SortUpdates()

		if err := col.Add(ct); err != nil {
			return nil, &StoreError{
				Code:    ErrCodeDuplicateName,
				Path:    path,
				Message: fmt.Sprintf("duplicate contact %q (line %d)", name, keyNode.Line),
			}
		}
	}

	return col, nil
}

// Save atomically rewrites the store file with the full collection.
//
// The collection is marshalled to a temp file in the destination
// directory, synced, then renamed over the target. On any failure the
// prior file is left intact.
func Save(path string, col *contact.Collection) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, ct := range col.All() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: ct.Name}
		val := &yaml.Node{}
		if err := val.Encode(ct); err != nil {
			return &StoreError{Code: ErrCodeWriteFailed, Path: path, Message: fmt.Sprintf("failed to encode contact %q", ct.Name), Err: err}
		}
		root.Content = append(root.Content, key, val)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".contacts-*.yaml")
	if err != nil {
		return &StoreError{Code: ErrCodeWriteFailed, Path: path, Message: "failed to create temp file", Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	enc := yaml.NewEncoder(tmp)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		tmp.Close()
		return &StoreError{Code: ErrCodeWriteFailed, Path: path, Message: "failed to encode collection", Err: err}
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		return &StoreError{Code: ErrCodeWriteFailed, Path: path, Message: "failed to flush encoder", Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &StoreError{Code: ErrCodeWriteFailed, Path: path, Message: "failed to sync temp file", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &StoreError{Code: ErrCodeWriteFailed, Path: path, Message: "failed to close temp file", Err: err}
	}

	// The store file is meant to be opened in an editor.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return &StoreError{Code: ErrCodeWriteFailed, Path: path, Message: "failed to set permissions", Err: err}
	}

	if err := os.Rename(tmpName, path); err != nil {
		return &StoreError{Code: ErrCodeWriteFailed, Path: path, Message: "failed to replace store file", Err: err}
	}
	return nil
}
