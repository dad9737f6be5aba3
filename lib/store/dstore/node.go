package dstore

import (
	"context"
	"fmt"
	"github.com/ValentinKolb/tKV/lib/store"
	"github.com/lni/dragonboat/v4"
	"github.com/lni/dragonboat/v4/config"
	"path/filepath"
	"time"
)

// Dragonboat uses RTT (Round Trip Time) to determine the timing of elections and heartbeats.
// These default values are selected according to the RAFT Paper
const (
	electionRTTFactor  = 10
	heartbeatRTTFactor = 1
)

// NodeConfig holds the parameters to run a single-replica RAFT shard in this process
type NodeConfig struct {
	DataDir            string        // Directory for the WAL and snapshots
	RaftAddress        string        // Address of the node host (e.g. localhost:63001)
	ShardID            uint64        // ID of the shard
	ReplicaID          uint64        // ID of the replica
	RTTMillisecond     uint64        // Average round trip time between node hosts
	SnapshotEntries    uint64        // Snapshot every n applied entries (0 = disabled)
	CompactionOverhead uint64        // Log entries to keep after compaction
	Timeout            time.Duration // Timeout for proposals, reads and leader election
}

// DefaultNodeConfig returns a configuration for a single node under dataDir
func DefaultNodeConfig(dataDir string) NodeConfig {
	return NodeConfig{
		DataDir:            dataDir,
		RaftAddress:        "localhost:63001",
		ShardID:            1,
		ReplicaID:          1,
		RTTMillisecond:     10,
		SnapshotEntries:    100,
		CompactionOverhead: 50,
		Timeout:            5 * time.Second,
	}
}

// ToDragonboatConfig converts the NodeConfig to a Dragonboat Config
func (c NodeConfig) ToDragonboatConfig() config.Config {
	return config.Config{
		ReplicaID:          c.ReplicaID,
		ShardID:            c.ShardID,
		ElectionRTT:        electionRTTFactor,
		HeartbeatRTT:       heartbeatRTTFactor,
		CheckQuorum:        true,
		SnapshotEntries:    c.SnapshotEntries,
		CompactionOverhead: c.CompactionOverhead,
	}
}

// ToNodeHostConfig creates a NodeHostConfig for Dragonboat
func (c NodeConfig) ToNodeHostConfig() config.NodeHostConfig {
	return config.NodeHostConfig{
		WALDir:         filepath.Join(c.DataDir, "wal"),
		NodeHostDir:    filepath.Join(c.DataDir, "nodehost"),
		RTTMillisecond: c.RTTMillisecond,
		RaftAddress:    c.RaftAddress,
	}
}

// StartSingleNode starts a node host with a single replica of a shard whose state machine
// holds a database created by dbFactory. It blocks until the replica is leader (or the
// context is done). The returned store stops the node host when it is closed.
func StartSingleNode(ctx context.Context, cfg NodeConfig, dbFactory store.DBFactory) (store.IStore, error) {
	nh, err := dragonboat.NewNodeHost(cfg.ToNodeHostConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create node host: %w", err)
	}

	members := map[uint64]string{cfg.ReplicaID: cfg.RaftAddress}
	if err := nh.StartConcurrentReplica(members, false, CreateStateMachineFactory(dbFactory), cfg.ToDragonboatConfig()); err != nil {
		nh.Close()
		return nil, fmt.Errorf("failed to start shard %d: %w", cfg.ShardID, err)
	}

	if err := waitForLeader(ctx, nh, cfg.ShardID, cfg.Timeout); err != nil {
		nh.Close()
		return nil, err
	}

	log.Infof("shard %d ready (replica %d, %s)", cfg.ShardID, cfg.ReplicaID, cfg.RaftAddress)
	return newStore(nh, cfg.ShardID, cfg.Timeout, nh.Close), nil
}

// waitForLeader polls the node host until the shard has elected a leader
func waitForLeader(ctx context.Context, nh *dragonboat.NodeHost, shardID uint64, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		if _, _, ok, err := nh.GetLeaderID(shardID); err == nil && ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("shard %d has no leader: %w", shardID, ctx.Err())
		case <-ticker.C:
		}
	}
}
