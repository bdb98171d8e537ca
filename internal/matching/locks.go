package matching

import (
	"sync"

	"github.com/mmynk/ottshare/internal/models"
)

// typeLocks serialises group formation per service type within one
// process. Different service types never wait on each other.
type typeLocks struct {
	mu    sync.Mutex
	locks map[models.ServiceType]*sync.Mutex
}

func newTypeLocks() *typeLocks {
	return &typeLocks{locks: make(map[models.ServiceType]*sync.Mutex)}
}

// lock acquires the mutex for t and returns its release func.
func (l *typeLocks) lock(t models.ServiceType) func() {
	l.mu.Lock()
	m, ok := l.locks[t]
	if !ok {
		m = &sync.Mutex{}
		l.locks[t] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
