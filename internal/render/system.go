package render

import (
	"collider-render/internal/physics"

	"github.com/mlange-42/arche/ecs"
	"github.com/mlange-42/arche/generic"
	"github.com/rs/zerolog"
)

// Stats summarizes one run of ColliderRenderSystem.
type Stats struct {
	Created     int // entities that received mesh, material and transform
	Skipped     int // collider or parent body not found; retried next run
	Unsupported int // entities newly marked Unsupported
}

// pendingRender is a buffered insertion. The world is locked while a query runs.
type pendingRender struct {
	entity    ecs.Entity
	mesh      Mesh
	material  Material
	transform Transform
}

type pendingUnsupported struct {
	entity ecs.Entity
	kind   physics.ShapeType
}

// ColliderRenderSystem attaches Mesh, Material and Transform to every entity that has a
// ColliderComponent but no Mesh yet.
//
// Static bodies get GroundColor; dynamic bodies cycle through Palette in query order,
// restarting from the same point on every Update. A RenderColor on the entity wins over both.
type ColliderRenderSystem struct {
	log zerolog.Logger

	filter  *generic.Filter2[ColliderComponent, RenderColor]
	physics generic.Resource[physics.World]
	assets  generic.Resource[AssetServer]

	meshID        ecs.ID
	materialID    ecs.ID
	transformID   ecs.ID
	unsupportedID ecs.ID

	primitives map[primitive]Handle
	materials  map[Color]Handle

	pending      []pendingRender
	unsupportedQ []pendingUnsupported
}

// NewColliderRenderSystem prepares the query and component mappers for w.
// w must hold a *physics.World and an *AssetServer resource when Update runs.
func NewColliderRenderSystem(w *ecs.World, log zerolog.Logger) *ColliderRenderSystem {
	filter := generic.NewFilter2[ColliderComponent, RenderColor]().
		Optional(generic.T[RenderColor]()).
		Without(generic.T[Mesh](), generic.T[Unsupported]())
	return &ColliderRenderSystem{
		log:           log.With().Str("system", "collider_render").Logger(),
		filter:        filter,
		physics:       generic.NewResource[physics.World](w),
		assets:        generic.NewResource[AssetServer](w),
		meshID:        ecs.ComponentID[Mesh](w),
		materialID:    ecs.ComponentID[Material](w),
		transformID:   ecs.ComponentID[Transform](w),
		unsupportedID: ecs.ComponentID[Unsupported](w),
		primitives:    make(map[primitive]Handle),
		materials:     make(map[Color]Handle),
	}
}

// Update runs the system once. Missing resources make it a no-op.
func (s *ColliderRenderSystem) Update(w *ecs.World) Stats {
	var stats Stats
	if !s.physics.Has() || !s.assets.Has() {
		return stats
	}
	phys := s.physics.Get()
	assets := s.assets.Get()
	cfg := phys.Config

	var colors colorPicker
	s.pending = s.pending[:0]
	s.unsupportedQ = s.unsupportedQ[:0]

	query := s.filter.Query(w)
	for query.Next() {
		cc, override := query.Get()
		collider, ok := phys.Colliders.Get(cc.Handle)
		if !ok {
			stats.Skipped++
			continue
		}
		body, ok := phys.Bodies.Get(collider.Parent())
		if !ok {
			stats.Skipped++
			continue
		}

		color := resolveColor(colors.next(body.IsStatic()), override)

		shape := collider.Shape
		scale, err := ScaleForShape(shape, cfg.Dimension, cfg.Scale)
		var meshHandle Handle
		if err == nil {
			meshHandle, err = s.meshHandle(assets, shape, cfg.Dimension)
		}
		if err != nil {
			s.log.Warn().
				Err(err).
				Uint32("collider", cc.Handle.Index).
				Stringer("shape", shape.ShapeType()).
				Msg("collider has no mesh representation")
			s.unsupportedQ = append(s.unsupportedQ, pendingUnsupported{entity: query.Entity(), kind: shape.ShapeType()})
			continue
		}
		s.pending = append(s.pending, pendingRender{
			entity:    query.Entity(),
			mesh:      Mesh{Handle: meshHandle},
			material:  Material{Handle: s.materialHandle(assets, color)},
			transform: TransformFromScale(scale),
		})
	}

	for i := range s.pending {
		p := &s.pending[i]
		s.insert(w, p.entity,
			ecs.Component{ID: s.meshID, Comp: &p.mesh},
			ecs.Component{ID: s.materialID, Comp: &p.material},
			ecs.Component{ID: s.transformID, Comp: &p.transform},
		)
	}
	for _, u := range s.unsupportedQ {
		s.insert(w, u.entity, ecs.Component{ID: s.unsupportedID, Comp: &Unsupported{Kind: u.kind}})
	}
	stats.Created = len(s.pending)
	stats.Unsupported = len(s.unsupportedQ)

	if stats.Created > 0 || stats.Unsupported > 0 {
		s.log.Debug().
			Int("created", stats.Created).
			Int("skipped", stats.Skipped).
			Int("unsupported", stats.Unsupported).
			Msg("collider renders attached")
	}
	return stats
}

// insert adds the components the entity lacks in one archetype move and overwrites the ones it has.
func (s *ColliderRenderSystem) insert(w *ecs.World, e ecs.Entity, comps ...ecs.Component) {
	if !w.Alive(e) {
		return
	}
	missing := comps[:0:0]
	for _, c := range comps {
		if w.Has(e, c.ID) {
			w.Set(e, c.ID, c.Comp)
			continue
		}
		missing = append(missing, c)
	}
	if len(missing) > 0 {
		w.Assign(e, missing...)
	}
}

// meshHandle returns the shared unit mesh for primitive shapes, adding it on first use,
// or a new mesh asset for trimeshes.
func (s *ColliderRenderSystem) meshHandle(assets *AssetServer, shape physics.Shape, dim physics.Dimension) (Handle, error) {
	p := primitiveFor(shape.ShapeType(), dim)
	if p == primitiveNone {
		data, err := MeshForShape(shape, dim)
		if err != nil {
			return Handle{}, err
		}
		return assets.Meshes.Add(data), nil
	}
	if h, ok := s.primitives[p]; ok && assets.Meshes.Get(h) != nil {
		return h, nil
	}
	h := assets.Meshes.Add(p.mesh())
	s.primitives[p] = h
	return h, nil
}

// materialHandle returns one material per distinct color.
func (s *ColliderRenderSystem) materialHandle(assets *AssetServer, c Color) Handle {
	if h, ok := s.materials[c]; ok && assets.Materials.Get(h) != nil {
		return h
	}
	h := assets.Materials.Add(StandardMaterial{BaseColor: c})
	s.materials[c] = h
	return h
}

// TransformSyncSystem moves each rendered collider to its parent body's position plus the
// collider offset, in render units. Rotation and scale are left untouched.
type TransformSyncSystem struct {
	filter  *generic.Filter2[ColliderComponent, Transform]
	physics generic.Resource[physics.World]
}

// NewTransformSyncSystem prepares the query for w.
func NewTransformSyncSystem(w *ecs.World) *TransformSyncSystem {
	return &TransformSyncSystem{
		filter:  generic.NewFilter2[ColliderComponent, Transform](),
		physics: generic.NewResource[physics.World](w),
	}
}

// Update copies positions for this tick. Entities whose collider or body is gone keep their last transform.
func (s *TransformSyncSystem) Update(w *ecs.World) {
	if !s.physics.Has() {
		return
	}
	phys := s.physics.Get()
	scale := phys.Config.Scale

	query := s.filter.Query(w)
	for query.Next() {
		cc, tr := query.Get()
		collider, ok := phys.Colliders.Get(cc.Handle)
		if !ok {
			continue
		}
		body, ok := phys.Bodies.Get(collider.Parent())
		if !ok {
			continue
		}
		tr.Translation = body.Position.Add(collider.Offset).Mul(scale)
	}
}
