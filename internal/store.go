package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	sessionFileName    = "session.yaml"
	sessionTempPattern = ".session-*.yaml.tmp"
	storeVersion       = "1.0"
)

// SessionStore persists the active session between CLI invocations
type SessionStore struct {
	dir string
}

// sessionFile is the on-disk layout of session.yaml
type sessionFile struct {
	Version string   `yaml:"version"`
	Session *Session `yaml:"session"`
}

// NewSessionStore creates a store rooted at dir
func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{dir: dir}
}

// Dir returns the state directory
func (s *SessionStore) Dir() string {
	return s.dir
}

// Path returns the session state file path
func (s *SessionStore) Path() string {
	return filepath.Join(s.dir, sessionFileName)
}

// Exists reports whether a session has been saved
func (s *SessionStore) Exists() bool {
	_, err := os.Stat(s.Path())
	return err == nil
}

// Load reads the active session
func (s *SessionStore) Load() (*Session, error) {
	path := s.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoActiveSession
		}
		return nil, &StorageError{Path: path, Op: "read", Err: err}
	}

	var file sessionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &StorageError{Path: path, Op: "parse", Err: err}
	}
	if file.Version != storeVersion {
		return nil, &StorageError{Path: path, Op: "parse", Err: fmt.Errorf("unsupported state version %q", file.Version)}
	}
	if file.Session == nil || file.Session.Roster == nil {
		return nil, &StorageError{Path: path, Op: "parse", Err: errors.New("state file has no session")}
	}
	if file.Session.History == nil {
		file.Session.History = NewHistory()
	}
	if file.Session.Roster.Devices == nil {
		file.Session.Roster.Devices = make(map[string]string)
	}
	return file.Session, nil
}

// Save writes the session atomically
func (s *SessionStore) Save(session *Session) error {
	path := s.Path()
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return &StorageError{Path: s.dir, Op: "mkdir", Err: err}
	}

	data, err := yaml.Marshal(sessionFile{Version: storeVersion, Session: session})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := WriteFileAtomic(path, sessionTempPattern, data); err != nil {
		return &StorageError{Path: path, Op: "write", Err: err}
	}
	LogDebug("Saved session %s to %s", session.ID, path)
	return nil
}

// Clear removes the active session
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return &StorageError{Path: s.Path(), Op: "remove", Err: err}
	}
	return nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place.
func WriteFileAtomic(path, pattern string, data []byte) error {
	return WriteAtomic(path, pattern, func(tmp *os.File) error {
		_, err := tmp.Write(data)
		return err
	})
}

// WriteAtomic calls write with a temporary file in the target directory and
// renames it to path only if write and close both succeed.
func WriteAtomic(path, pattern string, write func(tmp *os.File) error) error {
	tempFile, err := os.CreateTemp(filepath.Dir(path), pattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if err := write(tempFile); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Chmod(0644); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}

	cleanup = false
	return nil
}
