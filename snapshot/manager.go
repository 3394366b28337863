package snapshot

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/segvec"
	"github.com/hupe1980/segvec/blobstore"
)

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	// Compression is applied to every snapshot the manager writes.
	Compression Compression
	// Logger receives save/load events. Defaults to a noop logger.
	Logger *segvec.Logger
	// Concurrency bounds the number of in-flight blob operations during
	// SaveSet/LoadSet. Defaults to 4.
	Concurrency int
}

// Manager persists named vectors to a blob store.
//
// It is safe for concurrent use as long as callers do not hand the same
// Vector instance to concurrent Save calls.
type Manager struct {
	store       blobstore.Store
	compression Compression
	logger      *segvec.Logger
	concurrency int
}

// NewManager creates a Manager on top of the given store.
func NewManager(store blobstore.Store, optFns ...func(*ManagerOptions)) *Manager {
	opts := ManagerOptions{
		Concurrency: 4,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = segvec.NoopLogger()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Manager{
		store:       store,
		compression: opts.Compression,
		logger:      opts.Logger,
		concurrency: opts.Concurrency,
	}
}

// Save encodes v and writes it to the store under name.
func (m *Manager) Save(ctx context.Context, name string, v *segvec.Vector) error {
	data, err := Encode(v, WithCompression(m.compression))
	if err == nil {
		err = m.store.Put(ctx, name, data)
	}
	m.logger.LogSnapshotSave(ctx, name, v.Dim(), err)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", name, err)
	}
	return nil
}

// Load reads the snapshot stored under name.
func (m *Manager) Load(ctx context.Context, name string) (*segvec.Vector, error) {
	v, err := m.load(ctx, name)
	if err != nil {
		m.logger.LogSnapshotLoad(ctx, name, 0, err)
		return nil, fmt.Errorf("load snapshot %q: %w", name, err)
	}
	m.logger.LogSnapshotLoad(ctx, name, v.Dim(), nil)
	return v, nil
}

func (m *Manager) load(ctx context.Context, name string) (*segvec.Vector, error) {
	rc, err := m.store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rc.Close()
	}()
	return Read(rc)
}

// Delete removes the snapshot stored under name.
func (m *Manager) Delete(ctx context.Context, name string) error {
	return m.store.Delete(ctx, name)
}

// List returns the snapshot names under prefix.
func (m *Manager) List(ctx context.Context, prefix string) ([]string, error) {
	return m.store.List(ctx, prefix)
}

// SaveSet writes a set of named vectors concurrently. It fails fast: the
// first error cancels the remaining uploads, and already-written snapshots
// are left in place.
func (m *Manager) SaveSet(ctx context.Context, set map[string]*segvec.Vector) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)

	for name, v := range set {
		g.Go(func() error {
			return m.Save(ctx, name, v)
		})
	}
	return g.Wait()
}

// LoadSet reads the named snapshots concurrently.
func (m *Manager) LoadSet(ctx context.Context, names []string) (map[string]*segvec.Vector, error) {
	var mu sync.Mutex
	out := make(map[string]*segvec.Vector, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)

	for _, name := range names {
		g.Go(func() error {
			v, err := m.Load(ctx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			out[name] = v
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
