package itoken

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrTokenNotFound means no interest-token document exists for a student
// alias. The blueprint builder recovers from this per student; everything else
// propagates.
var ErrTokenNotFound = errors.New("no interest token for student")

// Store reads per-student interest-token documents, one JSON file per alias.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// GetToken loads the personalization tree for one student alias.
func (s *Store) GetToken(alias string) (any, error) {
	b, err := os.ReadFile(filepath.Join(s.Dir, alias+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrTokenNotFound, alias)
	}
	if err != nil {
		return nil, fmt.Errorf("itoken store: %w", err)
	}
	var tree any
	if err := json.Unmarshal(b, &tree); err != nil {
		return nil, fmt.Errorf("itoken store: parse %s: %w", alias, err)
	}
	return tree, nil
}
