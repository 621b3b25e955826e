package sim

import (
	"sync"

	"github.com/google/uuid"
)

// Obstacle is a fixed point obstacle in the world frame. Obstacles have no
// size or shape; proximity is judged against the clearance distance.
type Obstacle struct {
	ObstacleID string
	Position   Vec3
}

// ObstacleRegistry holds the known obstacles for the duration of a scenario.
type ObstacleRegistry struct {
	obstacles []Obstacle

	mu sync.RWMutex
}

// NewObstacleRegistry creates an empty registry.
func NewObstacleRegistry() *ObstacleRegistry {
	return &ObstacleRegistry{
		obstacles: make([]Obstacle, 0),
	}
}

// Add registers a point obstacle and returns it with its assigned ID.
func (r *ObstacleRegistry) Add(position Vec3) Obstacle {
	r.mu.Lock()
	defer r.mu.Unlock()

	obs := Obstacle{
		ObstacleID: uuid.NewString(),
		Position:   position,
	}
	r.obstacles = append(r.obstacles, obs)
	return obs
}

// Obstacles returns a copy of all registered obstacles.
func (r *ObstacleRegistry) Obstacles() []Obstacle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Obstacle, len(r.obstacles))
	copy(out, r.obstacles)
	return out
}

// Count returns the number of registered obstacles.
func (r *ObstacleRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.obstacles)
}

// Clear removes all obstacles.
func (r *ObstacleRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obstacles = r.obstacles[:0]
}
