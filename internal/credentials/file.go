package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/MubeenKhalid10/SwiftCare/internal/models"
)

// fileFormat is the on-disk layout of the credentials file. Both entries are
// optional; a file with only one of them is valid and the session restore
// logic treats it as unauthenticated.
type fileFormat struct {
	AccessToken string       `json:"accessToken,omitempty"`
	User        *models.User `json:"user,omitempty"`
}

// FileStore persists credentials as a JSON file, typically under the user
// config directory. Writes go through a temp file and rename so a crash
// mid-write never leaves a truncated credentials file behind.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the file at path. The parent
// directory is created on first write, not here; constructing a store for a
// missing file is valid and reads as empty.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// AccessToken returns the persisted bearer token, or "" when the file is
// missing or unreadable.
func (s *FileStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().AccessToken
}

// SetAccessToken overwrites the persisted bearer token.
func (s *FileStore) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.read()
	data.AccessToken = token
	s.write(data)
}

// ClearAccessToken removes the persisted bearer token.
func (s *FileStore) ClearAccessToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.read()
	if data.AccessToken == "" && data.User == nil {
		// Nothing stored at all; avoid creating an empty file.
		return
	}
	data.AccessToken = ""
	s.write(data)
}

// User returns the persisted identity snapshot.
func (s *FileStore) User() (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.read()
	if data.User == nil {
		return nil, false
	}
	u := *data.User
	return &u, true
}

// SetUser overwrites the persisted identity snapshot.
func (s *FileStore) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.read()
	if user == nil {
		data.User = nil
	} else {
		u := *user
		data.User = &u
	}
	s.write(data)
}

// ClearUser removes the persisted identity snapshot.
func (s *FileStore) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.read()
	if data.AccessToken == "" && data.User == nil {
		return
	}
	data.User = nil
	s.write(data)
}

// read loads the current file contents. Missing or corrupt files read as
// empty: a client that cannot parse its own credentials is simply signed out.
func (s *FileStore) read() fileFormat {
	var data fileFormat

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.path).Msg("Failed to read credentials file")
		}
		return data
	}

	if err := json.Unmarshal(raw, &data); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Corrupt credentials file, treating as empty")
		return fileFormat{}
	}

	return data
}

// write persists data atomically. Failures are logged and swallowed per the
// Store contract; the in-flight operation continues with in-memory state.
func (s *FileStore) write(data fileFormat) {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal credentials")
		return
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("Failed to create credentials directory")
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		log.Warn().Err(err).Str("path", tmp).Msg("Failed to write credentials file")
		return
	}

	if err := os.Rename(tmp, s.path); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Failed to replace credentials file")
		_ = os.Remove(tmp)
	}
}
