// Package dprefs is the entry point to the preference store. A Prefs value
// starts unbound; Initialize binds it to a storage context, after which the
// typed operations are available. Writes are write-once: a put to a key that
// already holds a value fails with ErrKeyAlreadyExists.
package dprefs

import (
	"sync"

	"dprefs/internal/logging"
	"dprefs/internal/prefs"
)

var logger = logging.For("dprefs")

// State is the binding state of a Prefs.
type State int

const (
	Unbound State = iota
	Bound
)

func (s State) String() string {
	if s == Bound {
		return "bound"
	}
	return "unbound"
}

// Option configures a Prefs.
type Option func(*Prefs)

// WithSerializedWrites controls whether the existence check and the write of
// a put run under one lock. When disabled, two concurrent puts of the same
// absent key can both succeed, the later write winning.
func WithSerializedWrites(on bool) Option {
	return func(p *Prefs) { p.serialize = on }
}

// Prefs guards a bound prefs.Manager. It is safe for concurrent use.
// Operations hold a read lock on the binding for their whole duration, so
// Initialize and Close wait for in-flight calls.
type Prefs struct {
	mu        sync.RWMutex
	manager   *prefs.Manager // nil while Unbound
	name      string
	serialize bool
	writeMu   sync.Mutex
}

// New returns an unbound Prefs. Writes are serialized unless disabled.
func New(opts ...Option) *Prefs {
	p := &Prefs{serialize: true}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Initialize binds p to sc. Calling it again rebinds: the previous manager
// is closed first, so the same storage may be reopened. If opening fails p
// is left Unbound.
func (p *Prefs) Initialize(sc StorageContext) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.manager != nil {
		if err := p.manager.Close(); err != nil {
			logger.Warn("closing previous binding", "store", p.name, "err", err)
		}
		p.manager = nil
		logger.Info("rebinding preference store", "store", p.name)
	}

	m, err := sc.open()
	if err != nil {
		return err
	}
	p.manager = m
	p.name = sc.Name
	logger.Debug("preference store bound", "store", sc.Name, "dir", sc.DataDir)
	return nil
}

// State reports whether p is bound.
func (p *Prefs) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.manager == nil {
		return Unbound
	}
	return Bound
}

// Close releases the bound store and returns p to Unbound.
// Closing an unbound Prefs is a no-op.
func (p *Prefs) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.manager == nil {
		return nil
	}
	err := p.manager.Close()
	p.manager = nil
	return err
}

// read runs fn against the bound manager.
func (p *Prefs) read(fn func(m *prefs.Manager) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.manager == nil {
		return ErrNotInitialized
	}
	return fn(p.manager)
}

// write enforces the write-once policy around put.
func (p *Prefs) write(key string, put func(m *prefs.Manager) error) error {
	return p.read(func(m *prefs.Manager) error {
		if key == "" {
			return ErrEmptyKey
		}
		if p.serialize {
			p.writeMu.Lock()
			defer p.writeMu.Unlock()
		}
		exists, err := m.DoesKeyExist(key)
		if err != nil {
			return err
		}
		if exists {
			logger.Debug("rejected write to existing key", "key", key)
			return ErrKeyAlreadyExists
		}
		return put(m)
	})
}
