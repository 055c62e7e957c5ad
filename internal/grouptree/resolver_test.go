package grouptree_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avieira/cardbox/internal/grouptree"
)

// childMap is an in-memory ChildSource.
type childMap map[int64][]int64

func (m childMap) ChildGroupIDs(_ context.Context, groupID int64) ([]int64, error) {
	return m[groupID], nil
}

type failingSource struct{}

func (failingSource) ChildGroupIDs(context.Context, int64) ([]int64, error) {
	return nil, errors.New("storage down")
}

func TestDescendants_LeafContainsItself(t *testing.T) {
	tree := childMap{}

	ids, err := grouptree.Descendants(context.Background(), tree, 7)

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, ids)
}

func TestDescendants_NestedTree(t *testing.T) {
	//        1
	//       / \
	//      2   3
	//     / \    \
	//    4   5    6
	tree := childMap{
		1: {2, 3},
		2: {4, 5},
		3: {6},
	}

	ids, err := grouptree.Descendants(context.Background(), tree, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 3, 4, 5, 6}, ids)

	// A subtree is a superset of every direct child's subtree.
	for _, child := range tree[1] {
		childIDs, err := grouptree.Descendants(context.Background(), tree, child)
		require.NoError(t, err)
		assert.Subset(t, ids, childIDs)
	}
}

func TestDescendants_MidTreeRoot(t *testing.T) {
	tree := childMap{
		1: {2},
		2: {3, 4},
		4: {5},
	}

	ids, err := grouptree.Descendants(context.Background(), tree, 2)

	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{2, 3, 4, 5}, ids)
	assert.NotContains(t, ids, int64(1), "a parent is never part of its child's subtree")
}

func TestDescendants_CycleTerminates(t *testing.T) {
	// Corrupt parent relation: 3 points back at 1.
	tree := childMap{
		1: {2},
		2: {3},
		3: {1},
	}

	ids, err := grouptree.Descendants(context.Background(), tree, 1)

	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 3}, ids, "each node is visited exactly once")
}

func TestDescendants_SourceError(t *testing.T) {
	_, err := grouptree.Descendants(context.Background(), failingSource{}, 1)

	assert.Error(t, err)
}
