package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"lottie-studio/api/internal/activity"
)

var ErrNotFound = errors.New("not found")

const (
	blueprintFile = "activity_blueprint.json"
	activityFile  = "activity.json"
	historyFile   = "history.json"
)

// FileStore keeps the three persisted records under one directory: the staged
// blueprint, the latest final activity and the append-only history array.
// Single-writer by external scheduling discipline; no locking here.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) SaveBlueprint(a *activity.Activity) error {
	return s.write(blueprintFile, a)
}

func (s *FileStore) LoadBlueprint() (*activity.Activity, error) {
	b, err := os.ReadFile(filepath.Join(s.Dir, blueprintFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, blueprintFile)
	}
	if err != nil {
		return nil, err
	}
	var a activity.Activity
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("parse %s: %w", blueprintFile, err)
	}
	if a.ID == "" {
		return nil, fmt.Errorf("%s holds no staged blueprint", blueprintFile)
	}
	return &a, nil
}

func (s *FileStore) SaveActivity(a *activity.Activity) error {
	return s.write(activityFile, a)
}

// AppendHistory rewrites the history array with the new record at the end.
// A missing history file starts an empty array.
func (s *FileStore) AppendHistory(a *activity.Activity) error {
	path := filepath.Join(s.Dir, historyFile)
	var history []activity.Activity
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	default:
		if err := json.Unmarshal(b, &history); err != nil {
			return fmt.Errorf("parse %s: %w", historyFile, err)
		}
	}
	history = append(history, *a)
	return s.write(historyFile, history)
}

func (s *FileStore) write(name string, v any) error {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.Dir, name), b, 0o644)
}
