package id

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	mu   sync.Mutex
	node *snowflake.Node
)

// Init sets the Snowflake node ID. The first successful call wins; an
// invalid node ID returns an error and leaves the node unset.
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("initializing snowflake node %d: %w", nodeID, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if node == nil {
		node = n
	}
	return nil
}

// New generates a new globally unique int64 ID using the Snowflake algorithm.
// IDs are time-ordered, so sorting order log entries by ID preserves append order.
// Without a successful Init the node defaults to 0.
func New() int64 {
	return current().Generate().Int64()
}

func current() *snowflake.Node {
	mu.Lock()
	defer mu.Unlock()
	if node == nil {
		// node 0 is always within range
		node, _ = snowflake.NewNode(0)
	}
	return node
}

// Time returns the creation time encoded in a Snowflake ID.
func Time(v int64) time.Time {
	ms := snowflake.ParseInt64(v).Time()
	return time.UnixMilli(ms).UTC()
}
