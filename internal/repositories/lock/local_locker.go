package lock

import (
	"context"
	"sync"
	"time"

	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
)

// LocalLocker is a keyed mutex for a single process.
type LocalLocker struct {
	mu   sync.Mutex
	keys map[string]*keyLock
}

type keyLock struct {
	held chan struct{}
	refs int
}

// NewLocalLocker creates an in-process ItemLocker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{keys: make(map[string]*keyLock)}
}

var _ portsrepo.ItemLocker = (*LocalLocker)(nil)

func (l *LocalLocker) Lock(ctx context.Context, key string, wait time.Duration) (portsrepo.Unlock, error) {
	l.mu.Lock()
	kl, ok := l.keys[key]
	if !ok {
		kl = &keyLock{held: make(chan struct{}, 1)}
		l.keys[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case kl.held <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-kl.held
				l.release(key, kl)
			})
		}, nil
	case <-ctx.Done():
		l.release(key, kl)
		return nil, ctx.Err()
	case <-timer.C:
		l.release(key, kl)
		return nil, ErrNotObtained
	}
}

func (l *LocalLocker) release(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.keys, key)
	}
}
