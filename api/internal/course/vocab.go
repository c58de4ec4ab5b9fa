package course

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lottie-studio/api/internal/util"
)

// ErrVocabNotFound means no vocabulary file in the store matches a coursework
// title. Callers decide whether that is fatal; the resolver skips the material.
var ErrVocabNotFound = errors.New("no vocabulary file for title")

// VocabularySet is one vocabulary document, one per coursework title.
type VocabularySet struct {
	Words []string `json:"words"`
}

// VocabStore is a directory of JSON vocabulary files matched to coursework
// titles by normalized (alphanumeric, lower-case) file name.
type VocabStore struct {
	Dir string
}

func NewVocabStore(dir string) *VocabStore {
	return &VocabStore{Dir: dir}
}

func (s *VocabStore) Lookup(title string) (*VocabularySet, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("vocab store: %w", err)
	}
	want := util.NormalizeTitle(title)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if util.NormalizeTitle(name) != want {
			continue
		}
		b, err := os.ReadFile(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("vocab store: read %s: %w", e.Name(), err)
		}
		var set VocabularySet
		if err := json.Unmarshal(b, &set); err != nil {
			return nil, fmt.Errorf("vocab store: parse %s: %w", e.Name(), err)
		}
		return &set, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrVocabNotFound, title)
}
