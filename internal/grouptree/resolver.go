package grouptree

import "context"

// ChildSource lists the direct children of a group. *db.DB satisfies this.
type ChildSource interface {
	ChildGroupIDs(ctx context.Context, groupID int64) ([]int64, error)
}

// Descendants returns the ids of every group in the subtree rooted at
// groupID, including groupID itself, in breadth-first order. The parent
// relation is expected to be acyclic; a visited set guards against corrupt
// data so a cycle yields each node once instead of looping forever.
func Descendants(ctx context.Context, src ChildSource, groupID int64) ([]int64, error) {
	visited := map[int64]bool{groupID: true}
	ids := []int64{groupID}

	for queue := []int64{groupID}; len(queue) > 0; {
		id := queue[0]
		queue = queue[1:]

		children, err := src.ChildGroupIDs(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if visited[child] {
				continue
			}
			visited[child] = true
			ids = append(ids, child)
			queue = append(queue, child)
		}
	}
	return ids, nil
}
