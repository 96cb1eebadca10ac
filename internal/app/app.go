// Package app hosts the ECS world and runs the per-tick schedule:
// physics step, collider render creation, transform sync, then any extra systems.
package app

import (
	"collider-render/internal/physics"
	"collider-render/internal/render"

	"github.com/mlange-42/arche/ecs"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// System is an extra per-tick step registered with AddSystem.
type System struct {
	Name   string
	Update func(w *ecs.World, dt float32)
}

// Totals accumulates render stats across ticks.
type Totals struct {
	Ticks       uint64
	Created     int
	Unsupported int
	// Skipped is the number of skipped lookups in the most recent tick, not a running sum.
	Skipped int
}

// App owns the ECS world and the resources its systems read.
type App struct {
	World   ecs.World
	Physics *physics.World
	Assets  *render.AssetServer

	log     zerolog.Logger
	renders *render.ColliderRenderSystem
	sync    *render.TransformSyncSystem
	systems []System

	colliderID ecs.ID
	colorID    ecs.ID

	last   render.Stats
	totals Totals
}

// New creates an empty world with the physics and asset resources registered.
func New(cfg physics.Configuration, log zerolog.Logger) *App {
	a := &App{
		World:  ecs.NewWorld(),
		Assets: render.NewAssetServer(),
		log:    log,
	}
	a.Physics = physics.NewWorld(cfg)
	ecs.AddResource(&a.World, a.Physics)
	ecs.AddResource(&a.World, a.Assets)
	a.colliderID = ecs.ComponentID[render.ColliderComponent](&a.World)
	a.colorID = ecs.ComponentID[render.RenderColor](&a.World)
	a.renders = render.NewColliderRenderSystem(&a.World, log)
	a.sync = render.NewTransformSyncSystem(&a.World)
	return a
}

// AddSystem appends s to the schedule. Extra systems run after the built-in ones, in insertion order.
func (a *App) AddSystem(s System) {
	a.systems = append(a.systems, s)
}

// SpawnCollider attaches c to parent in the physics world and creates an entity for it.
// color, when non-nil, overrides the automatic render color.
func (a *App) SpawnCollider(c *physics.Collider, parent physics.BodyHandle, color *render.RenderColor) (ecs.Entity, error) {
	h, err := a.Physics.InsertCollider(c, parent)
	if err != nil {
		return ecs.Entity{}, eris.Wrap(err, "spawn collider")
	}
	comps := []ecs.Component{{ID: a.colliderID, Comp: &render.ColliderComponent{Handle: h}}}
	if color != nil {
		comps = append(comps, ecs.Component{ID: a.colorID, Comp: color})
	}
	return a.World.NewEntityWith(comps...), nil
}

// Tick runs one scheduler step and returns the collider render stats for it.
func (a *App) Tick(dt float32) render.Stats {
	a.Physics.Step(dt)
	stats := a.renders.Update(&a.World)
	a.sync.Update(&a.World)
	for _, s := range a.systems {
		s.Update(&a.World, dt)
	}

	a.last = stats
	a.totals.Ticks++
	a.totals.Created += stats.Created
	a.totals.Unsupported += stats.Unsupported
	a.totals.Skipped = stats.Skipped
	return stats
}

// RunHeadless ticks n times with a fixed dt and returns the totals.
func (a *App) RunHeadless(n int, dt float32) Totals {
	for i := 0; i < n; i++ {
		a.Tick(dt)
	}
	a.log.Info().
		Uint64("ticks", a.totals.Ticks).
		Int("created", a.totals.Created).
		Int("unsupported", a.totals.Unsupported).
		Int("skipped", a.totals.Skipped).
		Int("bodies", a.Physics.Bodies.Len()).
		Int("colliders", a.Physics.Colliders.Len()).
		Msg("headless run finished")
	return a.totals
}

// LastStats returns the stats of the most recent tick.
func (a *App) LastStats() render.Stats {
	return a.last
}

// Totals returns the accumulated stats.
func (a *App) Totals() Totals {
	return a.totals
}
