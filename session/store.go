package session

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	log "github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v4"

	"github.com/anyang-health/triage-app/schema"
)

const logPrefix = "session"

var (
	ErrNoSession      = fmt.Errorf("no session stored")
	ErrSessionExpired = fmt.Errorf("stored session is expired")
	ErrEmptyToken     = fmt.Errorf("session has no access token")
)

// Store persists the current session across process restarts. Save
// replaces any previous session wholesale; Read returns ErrNoSession when
// nothing is stored and ErrSessionExpired (together with the session)
// when the stored access token is already past its expiry claim.
type Store interface {
	Save(schema.Session) error
	Read() (schema.Session, error)
	Clear() error
}

// FileStore keeps the session as a msgpack record in a single file with
// owner-only permissions. Writes go through a temp file plus rename so a
// crashed write never leaves a truncated record behind.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
	}
}

func (s *FileStore) Save(sess schema.Session) error {
	if sess.AccessToken == "" {
		return ErrEmptyToken
	}

	sess.SavedAt = time.Now()
	if exp, ok := tokenExpiry(sess.AccessToken); ok {
		sess.ExpiresAt = exp
	}

	data, err := msgpack.Marshal(&sess)
	if nil != err {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); nil != err {
		return err
	}

	tmp := s.path + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0600); nil != err {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Read() (schema.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := ioutil.ReadFile(s.path)
	if os.IsNotExist(err) {
		return schema.Session{}, ErrNoSession
	}
	if nil != err {
		return schema.Session{}, err
	}

	var sess schema.Session
	if err := msgpack.Unmarshal(data, &sess); nil != err {
		// An unreadable record is treated the same as an absent one; the
		// user just logs in again.
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Warn("discarding unreadable session record")
		return schema.Session{}, ErrNoSession
	}

	if sess.Expired(time.Now()) {
		return sess, ErrSessionExpired
	}
	return sess, nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryStore holds the session in process memory only. Test setups use
// it in place of the file store.
type MemoryStore struct {
	mu   sync.Mutex
	sess *schema.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(sess schema.Session) error {
	if sess.AccessToken == "" {
		return ErrEmptyToken
	}
	sess.SavedAt = time.Now()
	if exp, ok := tokenExpiry(sess.AccessToken); ok {
		sess.ExpiresAt = exp
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = &sess
	return nil
}

func (s *MemoryStore) Read() (schema.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil {
		return schema.Session{}, ErrNoSession
	}
	if s.sess.Expired(time.Now()) {
		return *s.sess, ErrSessionExpired
	}
	return *s.sess, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	return nil
}

// tokenExpiry extracts the registered expiry claim from a JWT access
// token without verifying its signature; the client only needs the
// timestamp, verification is the server's job.
func tokenExpiry(token string) (time.Time, bool) {
	var claims jwt.StandardClaims
	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(token, &claims); nil != err {
		return time.Time{}, false
	}
	if claims.ExpiresAt == 0 {
		return time.Time{}, false
	}
	return time.Unix(claims.ExpiresAt, 0), true
}
