package repository

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const scryptSaltSize = 16

// FileCredentials хранит состояние клиента в JSON файле с правами 0600.
// Это бэкенд по умолчанию для устройства с одним пользователем.
// Если задан secret, содержимое шифруется на диске: ключ выводится через
// scrypt, шифрование — XChaCha20-Poly1305.
type FileCredentials struct {
	path   string
	secret []byte
	mu     sync.Mutex
}

type credentialsFile struct {
	AccessToken  string          `json:"access_token,omitempty"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	DeviceID     string          `json:"device_id,omitempty"`
	Trusted      bool            `json:"trusted,omitempty"`
	Profile      json.RawMessage `json:"profile,omitempty"`
}

func NewFileCredentials(path string, secret string) *FileCredentials {
	store := &FileCredentials{path: path}
	if secret != "" {
		store.secret = []byte(secret)
	}
	return store
}

func (r *FileCredentials) AccessToken(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, err := r.load()
	if err != nil {
		return "", err
	}
	return state.AccessToken, nil
}

func (r *FileCredentials) RefreshToken(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, err := r.load()
	if err != nil {
		return "", err
	}
	return state.RefreshToken, nil
}

// SetPair записывает оба токена одной заменой файла: читатель никогда
// не увидит access токен в паре с устаревшим refresh токеном
func (r *FileCredentials) SetPair(ctx context.Context, accessToken, refreshToken string) error {
	return r.update(func(state *credentialsFile) {
		state.AccessToken = accessToken
		state.RefreshToken = refreshToken
	})
}

func (r *FileCredentials) Clear(ctx context.Context) error {
	return r.update(func(state *credentialsFile) {
		state.AccessToken = ""
		state.RefreshToken = ""
		state.Profile = nil
	})
}

func (r *FileCredentials) DeviceID(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, err := r.load()
	if err != nil {
		return "", err
	}
	if state.DeviceID != "" {
		return state.DeviceID, nil
	}

	state.DeviceID = uuid.New().String()
	if err := r.save(state); err != nil {
		return "", err
	}
	return state.DeviceID, nil
}

func (r *FileCredentials) Trusted(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, err := r.load()
	if err != nil {
		return false, err
	}
	return state.Trusted, nil
}

func (r *FileCredentials) SetTrusted(ctx context.Context, trusted bool) error {
	return r.update(func(state *credentialsFile) {
		state.Trusted = trusted
	})
}

func (r *FileCredentials) ProfileSnapshot(ctx context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, err := r.load()
	if err != nil {
		return nil, err
	}
	return state.Profile, nil
}

func (r *FileCredentials) SetProfileSnapshot(ctx context.Context, snapshot []byte) error {
	return r.update(func(state *credentialsFile) {
		state.Profile = snapshot
	})
}

func (r *FileCredentials) update(mutate func(state *credentialsFile)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.load()
	if err != nil {
		return err
	}
	mutate(state)
	return r.save(state)
}

func (r *FileCredentials) load() (*credentialsFile, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return &credentialsFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла учётных данных: %w", err)
	}

	if r.secret != nil {
		raw, err = r.decrypt(raw)
		if err != nil {
			return nil, err
		}
	}

	state := &credentialsFile{}
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("ошибка разбора файла учётных данных: %w", err)
	}
	return state, nil
}

// save пишет во временный файл и заменяет его атомарным переименованием
func (r *FileCredentials) save(state *credentialsFile) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("ошибка сериализации учётных данных: %w", err)
	}

	if r.secret != nil {
		raw, err = r.encrypt(raw)
		if err != nil {
			return err
		}
	}

	tmp := r.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("ошибка создания каталога учётных данных: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("ошибка записи файла учётных данных: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("ошибка замены файла учётных данных: %w", err)
	}
	return nil
}

func (r *FileCredentials) encrypt(plain []byte) ([]byte, error) {
	salt := make([]byte, scryptSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("ошибка генерации соли: %w", err)
	}

	aead, err := r.aead(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("ошибка генерации nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, plain, nil)
	out := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, sealed...)
	return out, nil
}

func (r *FileCredentials) decrypt(raw []byte) ([]byte, error) {
	if len(raw) < scryptSaltSize+chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("файл учётных данных поврежден")
	}

	salt := raw[:scryptSaltSize]
	nonce := raw[scryptSaltSize : scryptSaltSize+chacha20poly1305.NonceSizeX]
	sealed := raw[scryptSaltSize+chacha20poly1305.NonceSizeX:]

	aead, err := r.aead(salt)
	if err != nil {
		return nil, err
	}

	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка расшифровки файла учётных данных: %w", err)
	}
	return plain, nil
}

func (r *FileCredentials) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(r.secret, salt, 1<<15, 8, 1, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("ошибка вывода ключа: %w", err)
	}
	return chacha20poly1305.NewX(key)
}
