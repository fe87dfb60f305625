package domain

import "github.com/google/uuid"

// TopicCluster groups items judged to be reporting on the same real-world
// event. Clusters are transient: they are rebuilt every ranking cycle and
// only the selection outcome is persisted.
type TopicCluster struct {
	ID        uuid.UUID
	Tokens    map[string]struct{}
	Items     []ContentItem
	SourceIDs map[uuid.UUID]struct{}
	// Theme is the dominant theme across the cluster's items.
	Theme string
}

// MultiSource reports whether the cluster aggregates at least two
// distinct sources.
func (c *TopicCluster) MultiSource() bool {
	return len(c.SourceIDs) >= 2
}
