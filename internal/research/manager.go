package research

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Handle is one live run as tracked by the Manager.
type Handle struct {
	ID    string
	Steps <-chan Step

	cancel context.CancelFunc
	done   chan struct{}
}

// Done closes when the run goroutine has finished and its step channel
// is closed.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Manager registers live runs so HTTP handlers can stream and cancel
// them by id. One run per Start call; concurrent runs are allowed but
// each runner invocation is sequential internally.
type Manager struct {
	mu     sync.Mutex
	runs   map[string]*Handle
	latest string
}

func NewManager() *Manager {
	return &Manager{runs: make(map[string]*Handle)}
}

// Start launches a run in the background and returns its handle. The
// step channel is buffered; a consumer that falls behind loses
// intermediate steps rather than stalling the run, but the final
// complete/error step always survives.
func (m *Manager) Start(parent context.Context, r *Runner, p Params, onDone func(Summary)) *Handle {
	if p.RunID == "" {
		p.RunID = uuid.NewString()
	}

	ctx, cancel := context.WithCancel(parent)
	steps := make(chan Step, 64)
	h := &Handle{
		ID:     p.RunID,
		Steps:  steps,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	m.mu.Lock()
	m.runs[h.ID] = h
	m.latest = h.ID
	m.mu.Unlock()

	run := *r
	run.Emit = func(s Step) {
		if s.Type == TypeComplete || s.Type == TypeError {
			// Complete/error steps are never dropped: evict the oldest
			// buffered step until there is room.
			for {
				select {
				case steps <- s:
					return
				default:
					select {
					case <-steps:
					default:
					}
				}
			}
		}
		select {
		case steps <- s:
		default:
			// drop if slow
		}
	}

	go func() {
		defer func() {
			m.mu.Lock()
			delete(m.runs, h.ID)
			m.mu.Unlock()
			cancel()
			close(steps)
			close(h.done)
		}()
		sum := run.Run(ctx, p)
		if onDone != nil {
			onDone(sum)
		}
	}()

	return h
}

// Cancel stops the run with the given id. Reports whether it was live.
func (m *Manager) Cancel(runID string) bool {
	m.mu.Lock()
	h, ok := m.runs[runID]
	m.mu.Unlock()
	if !ok {
		return false
	}
	h.cancel()
	return true
}

// CancelLatest stops the most recently started live run.
func (m *Manager) CancelLatest() (string, bool) {
	m.mu.Lock()
	id := m.latest
	h, ok := m.runs[id]
	m.mu.Unlock()
	if !ok {
		return "", false
	}
	h.cancel()
	return id, true
}

// Active reports the ids of live runs.
func (m *Manager) Active() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.runs))
	for id := range m.runs {
		out = append(out, id)
	}
	return out
}
