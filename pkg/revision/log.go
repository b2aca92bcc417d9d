package revision

import (
	"context"
	"errors"
	"sync"
)

// Log persists and traverses revisions.
type Log interface {
	// Put stores a revision and makes it the head. Storing a revision whose hash already
	// exists is a no-op that returns false.
	Put(ctx context.Context, r *Revision) (bool, error)

	// Get retrieves a revision by its hash. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, hash string) (*Revision, error)

	// Head returns the latest stored revision, or nil before the first save.
	Head() *Revision

	// Ancestry returns the chain from hash back to the first save (newest first).
	Ancestry(ctx context.Context, hash string) ([]*Revision, error)
}

// ErrNotFound is returned when a revision doesn't exist in the log.
type ErrNotFound struct {
	Hash string
}

func (e ErrNotFound) Error() string {
	if e.Hash == "" {
		return "revision not found"
	}

	return "revision not found: " + e.Hash
}

// MemoryLog is an in-memory Log.
type MemoryLog struct {
	mu        sync.RWMutex
	revisions map[string]*Revision
	head      *Revision
}

// NewMemoryLog creates an empty MemoryLog.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{revisions: make(map[string]*Revision)}
}

// Put implements Log.Put
func (l *MemoryLog) Put(_ context.Context, r *Revision) (bool, error) {
	if r == nil {
		return false, errors.New("cannot store nil revision")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.revisions[r.Hash]; ok {
		l.head = existing
		return false, nil
	}

	l.revisions[r.Hash] = r
	l.head = r
	return true, nil
}

// Get implements Log.Get
func (l *MemoryLog) Get(_ context.Context, hash string) (*Revision, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	r, ok := l.revisions[hash]
	if !ok {
		return nil, ErrNotFound{Hash: hash}
	}
	return r, nil
}

// Head implements Log.Head
func (l *MemoryLog) Head() *Revision {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.head
}

// Ancestry implements Log.Ancestry
func (l *MemoryLog) Ancestry(ctx context.Context, hash string) ([]*Revision, error) {
	var chain []*Revision

	current := hash
	for {
		r, err := l.Get(ctx, current)
		if err != nil {
			return nil, err
		}
		chain = append(chain, r)

		if r.ParentHash == nil {
			return chain, nil
		}
		current = *r.ParentHash
	}
}

// Len returns the number of stored revisions.
func (l *MemoryLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.revisions)
}
