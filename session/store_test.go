package session

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/suite"

	"github.com/anyang-health/triage-app/schema"
)

type FileStoreTestSuite struct {
	suite.Suite
	dir string
}

func TestFileStoreTestSuite(t *testing.T) {
	suite.Run(t, new(FileStoreTestSuite))
}

func (s *FileStoreTestSuite) SetupTest() {
	dir, err := ioutil.TempDir("", "session-store-test")
	if nil != err {
		s.T().Fatal(err)
	}
	s.dir = dir
}

func (s *FileStoreTestSuite) TearDownTest() {
	os.RemoveAll(s.dir)
}

func (s *FileStoreTestSuite) storePath() string {
	return filepath.Join(s.dir, "session")
}

func signedToken(s *FileStoreTestSuite, expiresAt time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   "abc",
		ExpiresAt: expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if nil != err {
		s.T().Fatal(err)
	}
	return signed
}

func (s *FileStoreTestSuite) TestSaveAndReadRoundTrip() {
	store := NewFileStore(s.storePath())

	err := store.Save(schema.Session{
		AccessToken:  "opaque-token",
		RefreshToken: "refresh-token",
		UserID:       "abc",
	})
	s.NoError(err)

	sess, err := store.Read()
	s.NoError(err)
	s.Equal("opaque-token", sess.AccessToken)
	s.Equal("refresh-token", sess.RefreshToken)
	s.Equal("abc", sess.UserID)
	s.False(sess.SavedAt.IsZero())
}

func (s *FileStoreTestSuite) TestReadMissingFile() {
	store := NewFileStore(s.storePath())

	_, err := store.Read()
	s.Equal(ErrNoSession, err)
}

func (s *FileStoreTestSuite) TestSaveRejectsEmptyToken() {
	store := NewFileStore(s.storePath())

	err := store.Save(schema.Session{})
	s.Equal(ErrEmptyToken, err)

	_, err = store.Read()
	s.Equal(ErrNoSession, err)
}

func (s *FileStoreTestSuite) TestSaveSurfacesWriteFailure() {
	// Parent of the session directory is a file, so MkdirAll must fail.
	blocked := filepath.Join(s.dir, "blocked")
	if err := ioutil.WriteFile(blocked, []byte("x"), 0600); nil != err {
		s.T().Fatal(err)
	}
	store := NewFileStore(filepath.Join(blocked, "nested", "session"))

	err := store.Save(schema.Session{AccessToken: "token"})
	s.Error(err)
}

func (s *FileStoreTestSuite) TestClearIsIdempotent() {
	store := NewFileStore(s.storePath())

	s.NoError(store.Save(schema.Session{AccessToken: "token"}))
	s.NoError(store.Clear())
	s.NoError(store.Clear())

	_, err := store.Read()
	s.Equal(ErrNoSession, err)
}

func (s *FileStoreTestSuite) TestExpiredJWTIsReportedExpired() {
	store := NewFileStore(s.storePath())

	s.NoError(store.Save(schema.Session{
		AccessToken: signedToken(s, time.Now().Add(-time.Hour)),
	}))

	sess, err := store.Read()
	s.Equal(ErrSessionExpired, err)
	s.NotEmpty(sess.AccessToken)
}

func (s *FileStoreTestSuite) TestLiveJWTCarriesExpiry() {
	store := NewFileStore(s.storePath())
	expiry := time.Now().Add(time.Hour)

	s.NoError(store.Save(schema.Session{
		AccessToken: signedToken(s, expiry),
	}))

	sess, err := store.Read()
	s.NoError(err)
	s.WithinDuration(expiry, sess.ExpiresAt, time.Second)
}

func (s *FileStoreTestSuite) TestCorruptRecordTreatedAsAbsent() {
	if err := ioutil.WriteFile(s.storePath(), []byte("not msgpack at all"), 0600); nil != err {
		s.T().Fatal(err)
	}
	store := NewFileStore(s.storePath())

	_, err := store.Read()
	s.Equal(ErrNoSession, err)
}

func (s *FileStoreTestSuite) TestSaveReplacesWholesale() {
	store := NewFileStore(s.storePath())

	s.NoError(store.Save(schema.Session{AccessToken: "first", RefreshToken: "r1"}))
	s.NoError(store.Save(schema.Session{AccessToken: "second"}))

	sess, err := store.Read()
	s.NoError(err)
	s.Equal("second", sess.AccessToken)
	s.Empty(sess.RefreshToken)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Read(); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	if err := store.Save(schema.Session{AccessToken: "token"}); err != nil {
		t.Fatal(err)
	}
	sess, err := store.Read()
	if err != nil {
		t.Fatal(err)
	}
	if sess.AccessToken != "token" {
		t.Fatalf("unexpected token %q", sess.AccessToken)
	}

	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Read(); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession after clear, got %v", err)
	}
}
