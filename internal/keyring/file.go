package keyring

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const keyFileMode = 0o600

// FileKeyStore stores the hex encoded key in a single file.
type FileKeyStore struct {
	path string
}

func NewFileKeyStore(path string) *FileKeyStore {
	return &FileKeyStore{path: path}
}

func (f *FileKeyStore) Name() string {
	return "key file " + f.path
}

func (f *FileKeyStore) GetKey() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoKey
		}
		return nil, err
	}
	return decodeKey(string(data))
}

// SetKey writes through a temp file and rename so a crash never leaves a
// truncated key behind.
func (f *FileKeyStore) SetKey(key []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create key dir: %w", err)
	}
	tmpPath := filepath.Join(dir, ".master.key."+uuid.NewString())
	if err := os.WriteFile(tmpPath, []byte(fmt.Sprintf("%x", key)), keyFileMode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write key: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename key file: %w", err)
	}
	return nil
}
