package dice

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/tavern-dice/pkg/geometry"
)

// Registry memoizes per-type geometry, faces and value tables. Everything
// is computed at most once per type and shared by reference.
type Registry struct {
	mu      sync.Mutex
	log     *zap.Logger
	entries map[Type]*registryEntry
}

type registryEntry struct {
	mesh  geometry.Mesh
	faces []geometry.Face
	table Table
	err   error
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		log:     log,
		entries: make(map[Type]*registryEntry),
	}
}

// Warm builds every type eagerly. Failed types are logged and reported in
// the joined error; the others stay usable.
func (r *Registry) Warm() error {
	var errs []error
	for _, t := range AllTypes {
		if _, err := r.Table(t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Table returns the shared value table for t.
func (r *Registry) Table(t Type) (Table, error) {
	e := r.entry(t)
	return e.table, e.err
}

// Faces returns the extracted geometric faces for t.
func (r *Registry) Faces(t Type) []geometry.Face {
	return r.entry(t).faces
}

// Mesh returns the cached mesh for t.
func (r *Registry) Mesh(t Type) geometry.Mesh {
	return r.entry(t).mesh
}

func (r *Registry) entry(t Type) *registryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[t]; ok {
		return e
	}

	e := &registryEntry{}
	if !t.Valid() {
		e.err = fmt.Errorf("registry: unknown die type %v", t)
	} else {
		e.mesh = t.Mesh()
		e.faces = geometry.ExtractFaces(e.mesh, geometry.NormalEpsilon)
		table, err := Bind(t, e.mesh)
		if err != nil {
			e.err = err
		} else {
			e.table = table
		}
	}

	if e.err != nil {
		r.log.Error("failed to bind die table", zap.Stringer("type", t), zap.Error(e.err))
	} else {
		r.log.Debug("bound die table",
			zap.Stringer("type", t),
			zap.Int("faces", len(e.faces)),
			zap.Int("rows", len(e.table.Entries())),
			zap.Int("distinct", DistinctValues(e.table)),
		)
	}

	r.entries[t] = e
	return e
}
