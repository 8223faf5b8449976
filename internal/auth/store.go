// Package auth is the operator credential store. Credentials live in one
// JSON object blob (username -> bcrypt hash) sharing the durable mirror
// mechanism with the student collection.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/studenthub-io/studenthub/constants"
	"github.com/studenthub-io/studenthub/internal/common"
	"github.com/studenthub-io/studenthub/internal/storage"
)

var (
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Store struct {
	mu     sync.Mutex
	kv     storage.KV
	logger *slog.Logger
}

func NewStore(kv storage.KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// Register adds a new username with a bcrypt hash of the password.
func (s *Store) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return common.WrapError(common.ErrInvalidInput, "username and password are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	if _, ok := users[username]; ok {
		return ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return common.WrapError(err, "hash password")
	}
	users[username] = string(hash)
	if err := s.saveLocked(ctx, users); err != nil {
		return err
	}
	s.logger.Info("auth.registered", "username", username)
	return nil
}

// Login verifies a username/password pair. Failure is ErrInvalidCredentials
// regardless of whether the username or the password was wrong.
func (s *Store) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	hash, ok := users[username]
	if !ok {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *Store) loadLocked(ctx context.Context) (map[string]string, error) {
	blob, ok, err := s.kv.Get(ctx, constants.UsersKey)
	if err != nil {
		return nil, common.WrapError(err, "load users")
	}
	if !ok {
		return map[string]string{}, nil
	}
	var users map[string]string
	if err := json.Unmarshal(blob, &users); err != nil {
		return nil, common.WrapError(err, "decode users")
	}
	if users == nil {
		users = map[string]string{}
	}
	return users, nil
}

func (s *Store) saveLocked(ctx context.Context, users map[string]string) error {
	blob, err := json.Marshal(users)
	if err != nil {
		return common.WrapError(err, "encode users")
	}
	if err := s.kv.Put(ctx, constants.UsersKey, blob); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistenceFailure, err)
	}
	return nil
}
