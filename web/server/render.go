package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/df07/fermion/pkg/renderer"
	"github.com/df07/fermion/pkg/scene"
)

// RenderJob is one render owned by the server
type RenderJob struct {
	ID        string
	Scene     string
	Context   *renderer.RenderContext
	Console   *Console
	StartedAt time.Time
}

// RenderManager tracks renders by id. Finished renders beyond the retention
// limit are forgotten oldest first; running renders are never dropped.
type RenderManager struct {
	mu      sync.Mutex
	jobs    map[string]*RenderJob
	order   []string
	nextID  int
	maxJobs int
}

// NewRenderManager creates a manager that retains up to maxJobs renders
func NewRenderManager(maxJobs int) *RenderManager {
	if maxJobs <= 0 {
		maxJobs = 16
	}
	return &RenderManager{
		jobs:    make(map[string]*RenderJob),
		maxJobs: maxJobs,
	}
}

// Start begins rendering s in the background and registers the job
func (m *RenderManager) Start(name string, s *scene.Scene, concurrency int, seed int64) (*RenderJob, error) {
	m.mu.Lock()
	m.nextID++
	id := fmt.Sprintf("render-%d", m.nextID)
	m.mu.Unlock()

	console := NewConsole(200)
	rc, err := renderer.Render(s, renderer.Config{
		Concurrency: concurrency,
		BatchSize:   renderer.DefaultBatchSize,
		Seed:        seed,
		Logger:      NewWebLogger(id, console),
	})
	if err != nil {
		return nil, err
	}

	job := &RenderJob{
		ID:        id,
		Scene:     name,
		Context:   rc,
		Console:   console,
		StartedAt: time.Now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[id] = job
	m.order = append(m.order, id)
	m.evictLocked()
	return job, nil
}

// Get looks up a render by id
func (m *RenderManager) Get(id string) (*RenderJob, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	return job, ok
}

// Len returns the number of retained renders
func (m *RenderManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs)
}

func (m *RenderManager) evictLocked() {
	for i := 0; len(m.jobs) > m.maxJobs && i < len(m.order); {
		id := m.order[i]
		select {
		case <-m.jobs[id].Context.Done():
			delete(m.jobs, id)
			m.order = append(m.order[:i], m.order[i+1:]...)
		default:
			i++
		}
	}
}
