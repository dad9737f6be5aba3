package util

import (
	"math"
)

// ShardDistribution describes how the entries of a sharded engine are spread over its shards
type ShardDistribution struct {
	Min          int     `json:"min"`
	Max          int     `json:"max"`
	Mean         float64 `json:"mean"`
	StdDeviation float64 `json:"std_deviation"`
	// Quality is 1 for a perfectly even spread and approaches 0 when one shard holds everything
	Quality float64 `json:"quality"`
}

// NewShardDistribution computes the distribution of the given per shard entry counts.
// An empty engine counts as perfectly distributed.
func NewShardDistribution(entriesPerShard []int) ShardDistribution {
	if len(entriesPerShard) == 0 {
		return ShardDistribution{Quality: 1}
	}

	d := ShardDistribution{Min: entriesPerShard[0], Max: entriesPerShard[0]}
	total := 0
	for _, n := range entriesPerShard {
		total += n
		d.Min = min(d.Min, n)
		d.Max = max(d.Max, n)
	}
	d.Mean = float64(total) / float64(len(entriesPerShard))

	var variance float64
	for _, n := range entriesPerShard {
		diff := float64(n) - d.Mean
		variance += diff * diff
	}
	d.StdDeviation = math.Sqrt(variance / float64(len(entriesPerShard)))

	if d.Max == 0 {
		d.Quality = 1
		return d
	}

	// half from the coefficient of variation, half from the smallest to largest shard ratio
	cv := math.Min(1, d.StdDeviation/d.Mean)
	d.Quality = (1-cv)*0.5 + float64(d.Min)/float64(d.Max)*0.5
	return d
}
