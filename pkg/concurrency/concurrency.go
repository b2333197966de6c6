package concurrency

import (
	"context"
	"sync"
)

// KeyedMutex one mutex per key, idle keys are released
type KeyedMutex struct {
	mux   sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

// NewKeyedMutex new keyed mutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: map[string]*keyLock{}}
}

// Lock acquire key, gives up when ctx is done
func (m *KeyedMutex) Lock(ctx context.Context, key string) (unlock func(), err error) {
	l := m.acquire(key)

	select {
	case l.ch <- struct{}{}:
	case <-ctx.Done():
		m.release(key, l)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-l.ch
			m.release(key, l)
		})
	}, nil
}

func (m *KeyedMutex) acquire(key string) *keyLock {
	m.mux.Lock()
	defer m.mux.Unlock()

	l, ok := m.locks[key]
	if !ok {
		l = &keyLock{ch: make(chan struct{}, 1)}
		m.locks[key] = l
	}

	l.refs++
	return l
}

func (m *KeyedMutex) release(key string, l *keyLock) {
	m.mux.Lock()
	defer m.mux.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(m.locks, key)
	}
}
