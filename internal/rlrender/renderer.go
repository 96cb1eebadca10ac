// Package rlrender draws entities carrying render.Mesh, render.Material and render.Transform with raylib.
package rlrender

import (
	"collider-render/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/arche/ecs"
	"github.com/mlange-42/arche/generic"
)

// gpuMesh is an uploaded mesh. The CPU arrays are referenced by mesh and must outlive it.
type gpuMesh struct {
	mesh      rl.Mesh
	vertices  []float32
	normals   []float32
	texcoords []float32
}

// Renderer uploads mesh and material assets on first use, so that GPU resources are
// allocated after the window/OpenGL context exists, and draws every rendered entity.
type Renderer struct {
	filter *generic.Filter3[render.Mesh, render.Material, render.Transform]
	assets generic.Resource[render.AssetServer]

	meshes    map[render.Handle]*gpuMesh
	materials map[render.Handle]rl.Material

	shader       rl.Shader
	shaderLoaded bool
	uniformLocs  map[string]int32

	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
	drawn    int
}

// New returns a renderer for w. Nothing touches the GPU until Draw.
func New(w *ecs.World) *Renderer {
	return &Renderer{
		filter:    generic.NewFilter3[render.Mesh, render.Material, render.Transform](),
		assets:    generic.NewResource[render.AssetServer](w),
		meshes:    make(map[render.Handle]*gpuMesh),
		materials: make(map[render.Handle]rl.Material),
		lightDir:  [3]float32{0.5, 1, 0.5}, // default: from above-right
	}
}

// SetView sets camera position and direction-to-light for this frame.
func (r *Renderer) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

// Drawn returns how many entities the last Draw call rendered.
func (r *Renderer) Drawn() int {
	return r.drawn
}

// Draw renders every entity with Mesh, Material and Transform. Must be called between
// BeginMode3D and EndMode3D. Entities whose assets are missing are skipped.
func (r *Renderer) Draw(w *ecs.World) {
	r.drawn = 0
	if !r.assets.Has() {
		return
	}
	assets := r.assets.Get()
	r.ensureShader()
	r.uploadUniforms()

	// Trimesh winding comes from level data, so draw both sides.
	rl.DisableBackfaceCulling()
	defer rl.EnableBackfaceCulling()

	query := r.filter.Query(w)
	for query.Next() {
		m, mat, tr := query.Get()
		gm := r.ensureMesh(assets, m.Handle)
		if gm == nil {
			continue
		}
		material, ok := r.ensureMaterial(assets, mat.Handle)
		if !ok {
			continue
		}
		rl.DrawMesh(gm.mesh, material, toMatrix(tr.Matrix()))
		r.drawn++
	}
}

// Unload releases GPU resources. Call before closing the window.
func (r *Renderer) Unload() {
	for h, gm := range r.meshes {
		// The CPU arrays are Go memory; only the GPU buffers are raylib's to free.
		gm.mesh.Vertices = nil
		gm.mesh.Normals = nil
		gm.mesh.Texcoords = nil
		rl.UnloadMesh(&gm.mesh)
		delete(r.meshes, h)
	}
	for h := range r.materials {
		delete(r.materials, h)
	}
	if r.shaderLoaded && rl.IsShaderValid(r.shader) {
		rl.UnloadShader(r.shader)
	}
	r.shaderLoaded = false
	r.uniformLocs = nil
}

func (r *Renderer) ensureShader() {
	if r.shaderLoaded {
		return
	}
	r.shader = rl.LoadShaderFromMemory(colliderVS, colliderFS)
	r.shaderLoaded = true
}

// ensureMesh uploads the mesh asset on first use. Indexed data is expanded to a flat
// triangle list: raylib indices are 16-bit and trimesh colliders may exceed that.
func (r *Renderer) ensureMesh(assets *render.AssetServer, h render.Handle) *gpuMesh {
	if gm, ok := r.meshes[h]; ok {
		return gm
	}
	data := assets.Meshes.Get(h)
	if data == nil || len(data.Indices) < 3 {
		return nil
	}
	n := len(data.Indices) - len(data.Indices)%3
	gm := &gpuMesh{
		vertices:  make([]float32, 0, n*3),
		normals:   make([]float32, 0, n*3),
		texcoords: make([]float32, 0, n*2),
	}
	for i := 0; i < n; i += 3 {
		tri := [3]uint32{data.Indices[i], data.Indices[i+1], data.Indices[i+2]}
		a, b, c := data.Positions[tri[0]], data.Positions[tri[1]], data.Positions[tri[2]]
		flat := b.Sub(a).Cross(c.Sub(a))
		if flat.Len() > 0 {
			flat = flat.Normalize()
		}
		for _, idx := range tri {
			p := data.Positions[idx]
			gm.vertices = append(gm.vertices, p[0], p[1], p[2])
			nrm := flat
			if int(idx) < len(data.Normals) {
				nrm = data.Normals[idx]
			}
			gm.normals = append(gm.normals, nrm[0], nrm[1], nrm[2])
			var uv mgl32.Vec2
			if int(idx) < len(data.UVs) {
				uv = data.UVs[idx]
			}
			gm.texcoords = append(gm.texcoords, uv[0], uv[1])
		}
	}
	gm.mesh = rl.Mesh{
		VertexCount:   int32(n),
		TriangleCount: int32(n / 3),
		Vertices:      &gm.vertices[0],
		Normals:       &gm.normals[0],
		Texcoords:     &gm.texcoords[0],
	}
	rl.UploadMesh(&gm.mesh, false)
	r.meshes[h] = gm
	return gm
}

// ensureMaterial builds a lit material tinted with the asset's base color.
func (r *Renderer) ensureMaterial(assets *render.AssetServer, h render.Handle) (rl.Material, bool) {
	if m, ok := r.materials[h]; ok {
		return m, true
	}
	sm := assets.Materials.Get(h)
	if sm == nil {
		return rl.Material{}, false
	}
	mtl := rl.LoadMaterialDefault()
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		c := sm.BaseColor
		albedo.Color = rl.ColorFromNormalized(rl.NewVector4(c.R, c.G, c.B, c.A))
	}
	if rl.IsShaderValid(r.shader) {
		mtl.Shader = r.shader
	}
	r.materials[h] = mtl
	return mtl, true
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}
