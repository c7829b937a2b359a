package prediction

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Store is the contract for the persistent prediction collection. There is no
// partial update: callers read-modify-write the whole collection.
type Store interface {
	// Load returns the stored collection. A missing or malformed store is
	// treated as "no data" and yields an empty result.
	Load() []Prediction

	// SaveAll overwrites the entire collection in a single atomic write.
	SaveAll(predictions []Prediction) error
}

// FileStore persists the collection as a JSON file, the desk's analog of the
// browser's local storage. Single-writer usage is expected; concurrent
// processes writing the same file can lose updates.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger zerolog.Logger
}

func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger.With().Str("component", "prediction_store").Logger(),
	}
}

func (s *FileStore) Load() []Prediction {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("failed to read prediction store")
		}
		return nil
	}

	var predictions []Prediction
	if err := json.Unmarshal(data, &predictions); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("prediction store is malformed; treating as empty")
		return nil
	}
	return predictions
}

func (s *FileStore) SaveAll(predictions []Prediction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(predictions, "", "  ")
	if err != nil {
		return err
	}

	// Write to a temp file in the same directory and rename so readers never
	// observe a partially written collection.
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
