package render

// Handle identifies an asset in an Assets registry. The zero handle is never issued.
type Handle struct {
	ID uint32
}

// IsZero reports whether h was never assigned.
func (h Handle) IsZero() bool {
	return h.ID == 0
}

// Assets is a registry of values addressed by Handle. IDs are not reused after Remove,
// so a stale handle never aliases a newer asset.
type Assets[T any] struct {
	items  map[uint32]*T
	nextID uint32
}

// NewAssets returns an empty registry.
func NewAssets[T any]() *Assets[T] {
	return &Assets[T]{items: make(map[uint32]*T)}
}

// Add stores v and returns its handle.
func (a *Assets[T]) Add(v T) Handle {
	a.nextID++
	a.items[a.nextID] = &v
	return Handle{ID: a.nextID}
}

// Get returns the asset for h, or nil if it does not exist.
func (a *Assets[T]) Get(h Handle) *T {
	return a.items[h.ID]
}

// Remove deletes the asset. Removing an unknown handle is a no-op.
func (a *Assets[T]) Remove(h Handle) {
	delete(a.items, h.ID)
}

// Len returns the number of stored assets.
func (a *Assets[T]) Len() int {
	return len(a.items)
}

// StandardMaterial is an unlit-color material description; the backend decides how it is shaded.
type StandardMaterial struct {
	BaseColor Color
}

// AssetServer bundles the registries the render systems write to.
type AssetServer struct {
	Meshes    *Assets[MeshData]
	Materials *Assets[StandardMaterial]
}

// NewAssetServer returns empty mesh and material registries.
func NewAssetServer() *AssetServer {
	return &AssetServer{
		Meshes:    NewAssets[MeshData](),
		Materials: NewAssets[StandardMaterial](),
	}
}
