// Package secrets keeps the per-server workspace tokens so reopening codepad
// joins the same workspace as last time.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const fileName = "tokens.json"

// ErrNoToken is returned when no token is stored for a server.
var ErrNoToken = errors.New("no token stored")

type tokenFile struct {
	Tokens map[string]string `json:"tokens"` // server -> base64(ciphertext)
}

// Store is a small file (0600) of AES-GCM sealed tokens. It keeps tokens out
// of the plain-text config but is no substitute for an OS keychain.
type Store struct {
	mu  sync.Mutex
	dir string
}

// Open returns the store under dir, or under the user config dir when dir
// is empty.
func Open(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "codepad")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create secrets dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path() string { return filepath.Join(s.dir, fileName) }

// Token returns the token stored for server.
func (s *Store) Token(server string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token(server)
}

func (s *Store) token(server string) (string, error) {
	tf, err := load(s.path())
	if err != nil {
		return "", err
	}
	enc, ok := tf.Tokens[norm(server)]
	if !ok {
		return "", ErrNoToken
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", err
	}
	pt, err := decrypt(raw)
	if err != nil {
		return "", fmt.Errorf("decrypt token: %w", err)
	}
	return string(pt), nil
}

// Ensure returns the stored token for server, minting and saving a new one
// the first time.
func (s *Store) Ensure(server string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, err := s.token(server)
	if err == nil {
		return tok, nil
	}
	if !errors.Is(err, ErrNoToken) {
		return "", err
	}
	tok = uuid.NewString()
	if err := s.put(server, tok); err != nil {
		return "", err
	}
	return tok, nil
}

// Forget drops the token for server.
func (s *Store) Forget(server string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tf, err := load(s.path())
	if err != nil {
		return err
	}
	delete(tf.Tokens, norm(server))
	return save(s.path(), tf)
}

func (s *Store) put(server, tok string) error {
	if norm(server) == "" {
		return fmt.Errorf("server required")
	}
	tf, err := load(s.path())
	if err != nil {
		return err
	}
	if tf.Tokens == nil {
		tf.Tokens = map[string]string{}
	}
	ct, err := encrypt([]byte(tok))
	if err != nil {
		return err
	}
	tf.Tokens[norm(server)] = base64.StdEncoding.EncodeToString(ct)
	return save(s.path(), tf)
}

func load(path string) (tokenFile, error) {
	var tf tokenFile
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tokenFile{}, nil
		}
		return tf, err
	}
	if err := json.Unmarshal(data, &tf); err != nil {
		return tf, fmt.Errorf("parse %s: %w", path, err)
	}
	return tf, nil
}

func save(path string, tf tokenFile) error {
	data, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func norm(s string) string {
	return strings.TrimRight(strings.TrimSpace(strings.ToLower(s)), "/")
}

func sealer() (cipher.AEAD, error) {
	key := sha256.Sum256([]byte(fmt.Sprintf("codepad-%s-%s", runtime.GOOS, os.Getenv("USER"))))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func encrypt(plain []byte) ([]byte, error) {
	gcm, err := sealer()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	gcm, err := sealer()
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, body := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}
