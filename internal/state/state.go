// Package state persists the active session pointer outside the database,
// in a small YAML file that survives restarts.
package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File is a durable scalar store backed by a YAML file
type File struct {
	path string
}

type fileData struct {
	ActiveSessionID string `yaml:"active_session_id"`
}

// NewFile creates a state file handle. The file itself is created lazily
// on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

// DefaultPath returns the state file location under the user's home directory
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".questlog", "state.yaml"), nil
}

// ActiveSessionID reads the stored pointer. A missing file means no
// session is active and is not an error.
func (f *File) ActiveSessionID() (string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read state file: %w", err)
	}

	var data fileData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("parse state file: %w", err)
	}
	return data.ActiveSessionID, nil
}

// SetActiveSessionID durably records the pointer
func (f *File) SetActiveSessionID(id string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	raw, err := yaml.Marshal(fileData{ActiveSessionID: id})
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// Clear removes the pointer
func (f *File) Clear() error {
	return f.SetActiveSessionID("")
}
