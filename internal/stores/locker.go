package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"timelog/internal/shared/filestorages"
)

// Locker is a named mutual-exclusion flag shared by every process using the same backend.
// A lock never expires on its own; whoever acquires it must release it.
//
//go:generate mockgen -source=locker.go -destination=./mocks/locker_mock.go -package=mocks
type Locker interface {
	// Acquire sets the lock if nobody holds it. It returns false, without error, when it is already held.
	Acquire(ctx context.Context, name string) (bool, error)
	// Release clears the lock. Releasing a lock that is not held is not an error.
	Release(ctx context.Context, name string) error
}

type lockRecord struct {
	Name       string    `json:"name"`
	AcquiredAt time.Time `json:"acquiredAt"`
}

// fileLocker relies on the storage's create-if-not-exists Put: when two processes race for
// the same lock, exactly one Put succeeds and the other sees ErrFileAlreadyExists.
type fileLocker struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewFileLocker(fileStorage filestorages.FileStorage) Locker {
	return &fileLocker{fileStorage: fileStorage, dir: "locks"}
}

func (l *fileLocker) Acquire(ctx context.Context, name string) (bool, error) {
	jsonData, err := json.Marshal(lockRecord{Name: name, AcquiredAt: time.Now().UTC()})
	if err != nil {
		return false, fmt.Errorf("failed to marshal lock: %w", err)
	}

	_, err = l.fileStorage.Put(ctx, l.getKey(name), bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to put lock: %w", err)
	}
	return true, nil
}

func (l *fileLocker) Release(ctx context.Context, name string) error {
	err := l.fileStorage.Delete(ctx, l.getKey(name))
	if err != nil && !errors.Is(err, filestorages.ErrFileNotFound) {
		return fmt.Errorf("failed to delete lock: %w", err)
	}
	return nil
}

func (l *fileLocker) getKey(name string) string {
	return fmt.Sprintf("%s/%s.lock", l.dir, name)
}
