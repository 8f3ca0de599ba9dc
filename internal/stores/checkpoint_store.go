package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"timelog/internal/shared/filestorages"
)

// CheckpointStore keeps a single instant: the last time a job completed.
//
//go:generate mockgen -source=checkpoint_store.go -destination=./mocks/checkpoint_store_mock.go -package=mocks
type CheckpointStore interface {
	// Get returns nil when no checkpoint was ever set.
	Get(ctx context.Context) (*time.Time, error)
	Set(ctx context.Context, checkpoint time.Time) error
}

type checkpointRecord struct {
	Checkpoint time.Time `json:"checkpoint"`
}

type fileCheckpointStore struct {
	fileStorage filestorages.FileStorage
	key         string
}

func NewFileCheckpointStore(fileStorage filestorages.FileStorage, name string) CheckpointStore {
	return &fileCheckpointStore{fileStorage: fileStorage, key: fmt.Sprintf("checkpoints/%s.json", name)}
}

func (s *fileCheckpointStore) Get(ctx context.Context) (*time.Time, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get checkpoint: %w", err)
	}

	defer readCloser.Close()
	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}
	var record checkpointRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkpoint: %w", err)
	}
	return &record.Checkpoint, nil
}

func (s *fileCheckpointStore) Set(ctx context.Context, checkpoint time.Time) error {
	jsonData, err := json.Marshal(checkpointRecord{Checkpoint: checkpoint.UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}
	_, err = s.fileStorage.Put(ctx, s.key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return fmt.Errorf("failed to put checkpoint: %w", err)
	}
	return nil
}
