package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const credentialFile = "credential"

// CredentialStore holds the session token: an in-memory copy of one durable
// file under the config dir. It is a plain key-value holder; identity and
// validation logic live in the session service, which is the only writer.
type CredentialStore struct {
	dir string

	mu  sync.Mutex
	tok string
}

// OpenCredentialStore loads the persisted credential (if any) from dir.
func OpenCredentialStore(dir string) (*CredentialStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("credential store dir is empty")
	}
	s := &CredentialStore{dir: dir}
	b, err := os.ReadFile(s.path())
	if err == nil {
		s.tok = strings.TrimSpace(string(b))
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return s, nil
}

func (s *CredentialStore) path() string {
	return filepath.Join(s.dir, credentialFile)
}

// Get returns the current credential, or "" when there is none.
func (s *CredentialStore) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tok
}

// Set replaces the credential and persists it. Mode 0600: the token proves
// identity and must not be readable by other users.
func (s *CredentialStore) Set(tok string) error {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return errors.New("refusing to store an empty credential")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	if err := atomicWriteFile(s.dir, credentialFile+".*.tmp", s.path(), []byte(tok+"\n"), 0o600); err != nil {
		return err
	}
	s.mu.Lock()
	s.tok = tok
	s.mu.Unlock()
	return nil
}

// Clear drops the credential and removes the persisted file.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	s.tok = ""
	s.mu.Unlock()
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
