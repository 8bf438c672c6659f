package feature

import (
	"sync"

	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/uid"
)

// Body is a derived B-rep solid published by a successful feature;
// bodies are never persisted (see project package) and are recomputed
// on every rebuild.
type Body struct {
	ID              uid.UID
	Name            string
	Solid           kernel.Solid
	SourceFeatureID uid.UID

	meshMu    sync.Mutex
	meshCache *kernel.Mesh
	meshTol   float64
}

// GetMesh lazily tessellates and caches the body's mesh at the given
// tolerance; subsequent calls with the same tolerance reuse the cache
// until InvalidateCache is called.
func (b *Body) GetMesh(k kernel.Kernel, tolerance float64) (kernel.Mesh, error) {
	b.meshMu.Lock()
	defer b.meshMu.Unlock()
	if b.meshCache != nil && b.meshTol == tolerance {
		return *b.meshCache, nil
	}
	mesh, err := k.Tessellate(b.Solid, tolerance)
	if err != nil {
		return kernel.Mesh{}, err
	}
	b.meshCache = &mesh
	b.meshTol = tolerance
	return mesh, nil
}

// InvalidateCache drops any cached mesh, forcing the next GetMesh to
// re-tessellate.
func (b *Body) InvalidateCache() {
	b.meshMu.Lock()
	defer b.meshMu.Unlock()
	b.meshCache = nil
}
