// Copyright (c) 2024 RoseLoverX

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Session is the per-login bookkeeping the cache persists between runs:
// the application version that completed its post-login sequence and the
// id of the logged-in user. Entity state itself is never persisted, it is
// rebuilt from the update stream on every login.
type Session struct {
	Version string `json:"version"`
	UserID  int64  `json:"user_id"`
}

type Storage interface {
	Path() string
	Load() (*Session, error)
	Store(*Session) error
	Delete() error
}

type fileStorage struct {
	mu         sync.Mutex
	path       string
	lastEdited time.Time
	cached     *Session
}

var _ Storage = (*fileStorage)(nil)

func NewFromFile(path string) Storage {
	return &fileStorage{path: path}
}

func (l *fileStorage) Path() string {
	return l.path
}

func (l *fileStorage) Load() (*Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, err := os.Stat(l.path)
	if err != nil {
		return nil, err
	}

	if info.ModTime().Equal(l.lastEdited) && l.cached != nil {
		return l.cached, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, errors.Wrap(err, "reading session file")
	}

	s := new(Session)
	if err := json.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "parsing session file")
	}

	l.cached = s
	l.lastEdited = info.ModTime()

	return s, nil
}

func (l *fileStorage) Store(s *Session) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	dir, _ := filepath.Split(l.path)
	if dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return errors.Wrap(err, "creating session directory")
		}
	}

	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}

	if err := os.WriteFile(l.path, data, 0o600); err != nil {
		return errors.Wrap(err, "writing session file")
	}

	l.cached = s
	if info, err := os.Stat(l.path); err == nil {
		l.lastEdited = info.ModTime()
	}

	return nil
}

func (l *fileStorage) Delete() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cached = nil
	err := os.Remove(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
