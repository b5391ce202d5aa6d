// Package store holds the state-store mailbox shared by every shell on the
// host: one always-refreshed session context file and one failure record file,
// each replaced wholesale on write and read asynchronously by consumers.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	ErrNoContext = errors.New("no session context recorded")
	ErrNoFailure = errors.New("no failure recorded")

	// ErrTransient marks a read that caught a file mid-rewrite. Callers
	// should retry instead of treating the store as corrupt.
	ErrTransient = errors.New("record is being rewritten")
)

const (
	contextFileName = "session_context.json"
	failureFileName = "last_session.json"
)

type ContextStore interface {
	RootDir() string
	EnsureDir() error
	WriteContext(record Record) error
	WriteFailure(record Record) error
	LoadContext() (Record, error)
	LoadFailure() (Record, error)
}

type FileStore struct {
	rootPath    string
	contextPath string
	failurePath string
}

// DefaultRootDir resolves the well-known store location. AETHER_STATE_DIR
// overrides it, otherwise the per-host temporary directory is used so every
// shell dialect agrees on the path.
func DefaultRootDir() string {
	if override := os.Getenv("AETHER_STATE_DIR"); override != "" {
		return override
	}
	return filepath.Join(os.TempDir(), "aether")
}

func NewFileStore(rootPath string) *FileStore {
	return &FileStore{
		rootPath:    rootPath,
		contextPath: filepath.Join(rootPath, contextFileName),
		failurePath: filepath.Join(rootPath, failureFileName),
	}
}

func (s *FileStore) RootDir() string {
	return s.rootPath
}

func (s *FileStore) ContextPath() string {
	return s.contextPath
}

func (s *FileStore) FailurePath() string {
	return s.failurePath
}

func (s *FileStore) EnsureDir() error {
	if err := os.MkdirAll(s.rootPath, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	return nil
}

func (s *FileStore) WriteContext(record Record) error {
	return s.writeRecordAtomic(s.contextPath, record)
}

func (s *FileStore) WriteFailure(record Record) error {
	return s.writeRecordAtomic(s.failurePath, record)
}

func (s *FileStore) LoadContext() (Record, error) {
	return s.readRecord(s.contextPath, ErrNoContext)
}

func (s *FileStore) LoadFailure() (Record, error) {
	return s.readRecord(s.failurePath, ErrNoFailure)
}

func (s *FileStore) readRecord(path string, missing error) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, missing
		}
		return Record{}, fmt.Errorf("read record: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return Record{}, fmt.Errorf("decode %s: %w", filepath.Base(path), ErrTransient)
	}
	return record, nil
}

func (s *FileStore) writeRecordAtomic(path string, record Record) error {
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if err := s.EnsureDir(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmpFile, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(payload); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace record file: %w", err)
	}
	return nil
}
