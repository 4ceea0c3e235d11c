// Package credentials persists the EventHub session between runs: the bearer
// token, a cached user snapshot, and the UI direction flag. The transport
// layer reads its token from here, so every process shares one session.
package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/agentstation/eventhub/pkg/constants"
	"github.com/agentstation/eventhub/pkg/errors"
	"github.com/agentstation/eventhub/pkg/types"
)

// Credentials is the on-disk session snapshot.
type Credentials struct {
	Token string      `json:"token,omitempty"`
	User  *types.User `json:"user,omitempty"`
	RTL   bool        `json:"isRtl,omitempty"`
}

// Store reads and writes the credentials file. All methods are safe for
// concurrent use.
type Store struct {
	mu    sync.RWMutex
	path  string
	creds Credentials
}

// DefaultPath returns the standard credentials location under the user's
// home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapIO("resolve", "home directory", err)
	}
	return filepath.Join(home, constants.ConfigDirName, constants.CredentialsFileName), nil
}

// NewStore creates a store backed by the file at path and loads whatever
// session it currently holds. A missing file is not an error; it simply
// means no session is stored.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.WrapIO("read", s.path, err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		// A corrupt file is treated as no session rather than a fatal
		// error; the next save rewrites it.
		return nil
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()
	return nil
}

// Token implements the transport token provider. Empty means anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Token
}

// User returns the cached user snapshot, or nil.
func (s *Store) User() *types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds.User == nil {
		return nil
	}
	user := *s.creds.User
	return &user
}

// RTL returns the persisted UI direction flag.
func (s *Store) RTL() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.RTL
}

// SetSession stores the token and user snapshot and persists them.
func (s *Store) SetSession(token string, user *types.User) error {
	s.mu.Lock()
	s.creds.Token = token
	s.creds.User = user
	s.mu.Unlock()
	return s.save()
}

// SetUser updates only the cached user snapshot.
func (s *Store) SetUser(user *types.User) error {
	s.mu.Lock()
	s.creds.User = user
	s.mu.Unlock()
	return s.save()
}

// SetRTL updates the persisted UI direction flag.
func (s *Store) SetRTL(rtl bool) error {
	s.mu.Lock()
	s.creds.RTL = rtl
	s.mu.Unlock()
	return s.save()
}

// Clear removes the stored session. The direction flag is a display
// preference, not a credential, so it survives a logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.creds.Token = ""
	s.creds.User = nil
	s.mu.Unlock()
	return s.save()
}

func (s *Store) save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.creds, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return errors.WrapIO("encode", s.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), constants.SecureDirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(s.path), err)
	}
	if err := os.WriteFile(s.path, data, constants.SecureFilePermissions); err != nil {
		return errors.WrapIO("write", s.path, err)
	}
	return nil
}

// TokenExpired reports whether the stored token carries an exp claim in the
// past. The signature is not verified; the server stays authoritative. A
// token without an exp claim, or one this parser cannot read, is reported
// as not expired so the session endpoint gets the final say.
func (s *Store) TokenExpired(now time.Time) bool {
	token := s.Token()
	if token == "" {
		return false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
