package itoken

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetToken(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "st1.json"),
		[]byte(`{"hobbies": ["chess", "swimming"], "pets": {"dog": "Rex"}}`), 0o644))

	s := NewStore(dir)
	tree, err := s.GetToken("st1")
	require.NoError(t, err)
	m, ok := tree.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, m, "hobbies")
}

func TestStoreGetToken_Missing(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.GetToken("ghost")
	require.ErrorIs(t, err, ErrTokenNotFound)
}

func TestStoreGetToken_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "st1.json"), []byte(`{broken`), 0o644))

	s := NewStore(dir)
	_, err := s.GetToken("st1")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrTokenNotFound)
}

// A tree with exactly one path must yield its single leaf no matter how the
// rng is seeded.
func TestPickRandomDatum_SinglePathIsDeterministic(t *testing.T) {
	tokens := map[string]any{
		"st1": map[string]any{
			"hobbies": map[string]any{
				"outdoor": []any{"kayaking"},
			},
		},
	}
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		assert.Equal(t, "kayaking", PickRandomDatum("st1", tokens, rng), "seed=%d", seed)
	}
}

func TestPickRandomDatum_UnknownAlias(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Nil(t, PickRandomDatum("ghost", map[string]any{}, rng))
}

func TestPickRandomDatum_LeafIsAlwaysFromTree(t *testing.T) {
	tokens := map[string]any{
		"st1": map[string]any{
			"sports": []any{"tennis", "football"},
			"food":   map[string]any{"sweet": "chocolate", "salty": "crisps"},
		},
	}
	leaves := map[string]bool{"tennis": true, "football": true, "chocolate": true, "crisps": true}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		got := PickRandomDatum("st1", tokens, rng)
		s, ok := got.(string)
		require.True(t, ok)
		assert.True(t, leaves[s], "unexpected leaf %q", s)
	}
}

func TestPickRandomDatum_EmptyContainers(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Nil(t, PickRandomDatum("st1", map[string]any{"st1": map[string]any{}}, rng))
	assert.Nil(t, PickRandomDatum("st2", map[string]any{"st2": []any{}}, rng))
}
