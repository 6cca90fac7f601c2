package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrCorruptFile is returned when a FileStore file is not a JSON object.
var ErrCorruptFile = errors.New("persist: store file is not a JSON object")

// FileStore keeps entries as string members of one JSON object on disk.
// Writes replace the file atomically. A missing file is an empty store.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return "", false, err
	}
	v := gjson.GetBytes(data, gjson.Escape(key))
	if !v.Exists() {
		return "", false, nil
	}
	if v.Type != gjson.String {
		return v.Raw, true, nil
	}
	return v.String(), true, nil
}

func (f *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return err
	}
	next, err := sjson.SetBytes(data, gjson.Escape(key), value)
	if err != nil {
		return fmt.Errorf("persist: set %q: %w", key, err)
	}
	return f.write(next)
}

// read returns the file content, "{}" when the file does not exist yet.
func (f *FileStore) read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []byte("{}"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist: read %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return []byte("{}"), nil
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("%w: %s", ErrCorruptFile, f.path)
	}
	return data, nil
}

func (f *FileStore) write(data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persist: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("persist: write %s: %w", f.path, err)
	}
	name := tmp.Name()
	defer os.Remove(name)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("persist: write %s: %w", f.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("persist: sync %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("persist: write %s: %w", f.path, err)
	}
	if err := os.Rename(name, f.path); err != nil {
		return fmt.Errorf("persist: replace %s: %w", f.path, err)
	}
	return nil
}
