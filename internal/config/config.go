package config

import (
	"errors"
	"fmt"
	"sync"
)

// GridSettings holds the tunables of the voxel grid.
type GridSettings struct {
	// Voxel record layout, in bytes per field (1, 2 or 4).
	MaterialBytes int `yaml:"material_bytes"`
	AuxBytes      int `yaml:"aux_bytes"`

	// Neighbor links a pointer may walk per move before falling back to a lookup.
	MaxChunkHops int `yaml:"max_chunk_hops"`

	// Longest ray the probe casts, in voxels.
	RayMaxDistance float64 `yaml:"ray_max_distance"`

	// Chunk radius loaded around the origin.
	LoadRadius int `yaml:"load_radius"`
}

// Default returns the built-in settings.
func Default() GridSettings {
	return GridSettings{
		MaterialBytes:  2,
		AuxBytes:       2,
		MaxChunkHops:   2,
		RayMaxDistance: 64,
		LoadRadius:     4,
	}
}

// Validate checks the settings for values the grid cannot use.
func (s GridSettings) Validate() error {
	if !validWidth(s.MaterialBytes) {
		return fmt.Errorf("material_bytes: %d not in {1,2,4}", s.MaterialBytes)
	}
	if !validWidth(s.AuxBytes) {
		return fmt.Errorf("aux_bytes: %d not in {1,2,4}", s.AuxBytes)
	}
	if s.MaxChunkHops < 0 {
		return errors.New("max_chunk_hops: must not be negative")
	}
	if s.RayMaxDistance <= 0 {
		return errors.New("ray_max_distance: must be positive")
	}
	if s.LoadRadius < 0 {
		return errors.New("load_radius: must not be negative")
	}
	return nil
}

func validWidth(n int) bool {
	return n == 1 || n == 2 || n == 4
}

var (
	mu      sync.RWMutex
	current = Default()
)

// GetSettings returns the process-wide settings.
func GetSettings() GridSettings {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Apply replaces the process-wide settings after validating them.
func Apply(s GridSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	mu.Lock()
	current = s
	mu.Unlock()
	return nil
}

// GetMaxChunkHops returns the pointer hop budget.
func GetMaxChunkHops() int {
	mu.RLock()
	defer mu.RUnlock()
	return current.MaxChunkHops
}

// SetMaxChunkHops sets the pointer hop budget
func SetMaxChunkHops(hops int) {
	mu.Lock()
	defer mu.Unlock()

	// Clamp to reasonable values
	if hops < 0 {
		hops = 0
	}
	if hops > 16 {
		hops = 16
	}

	current.MaxChunkHops = hops
}

// GetLoadRadius returns the chunk load radius.
func GetLoadRadius() int {
	mu.RLock()
	defer mu.RUnlock()
	return current.LoadRadius
}

// GetEvictRadius returns radius for chunk eviction (larger than load radius)
func GetEvictRadius() int {
	return GetLoadRadius() * 2
}
