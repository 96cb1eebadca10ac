package scene

import (
	"collider-render/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	// orthoHeight is the visible world height of the 2D camera at zoom 1.
	orthoHeight = 30
)

// Scene holds the camera and draws the editor grid around the world. Update runs camera logic;
// Draw renders between BeginMode3D and EndMode3D.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool

	dim        physics.Dimension
	cursorDone bool
}

// New returns a scene for the given dimension. 3D: perspective camera at (10,10,10) looking at the
// origin. 2D: orthographic camera on +Z looking down -Z at the XY plane.
func New(dim physics.Dimension) *Scene {
	s := &Scene{dim: dim, GridVisible: true}
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	if dim == physics.Dim2 {
		s.Camera.Position = rl.NewVector3(0, 0, 100)
		s.Camera.Fovy = orthoHeight
		s.Camera.Projection = rl.CameraOrthographic
		return s
	}
	s.Camera.Position = rl.NewVector3(10, 10, 10)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// ViewPosition returns the camera position for lighting.
func (s *Scene) ViewPosition() [3]float32 {
	p := s.Camera.Position
	return [3]float32{p.X, p.Y, p.Z}
}

// Update runs once per frame. In 3D the free camera is driven by mouse and keyboard with the cursor
// captured. In 2D the mouse wheel zooms and the right button pans.
func (s *Scene) Update() {
	if s.dim == physics.Dim2 {
		s.update2D()
		return
	}
	if !s.cursorDone {
		rl.DisableCursor()
		s.cursorDone = true
	}
	rl.UpdateCamera(&s.Camera, rl.CameraFree)
}

func (s *Scene) update2D() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		s.Camera.Fovy -= wheel * 2
		if s.Camera.Fovy < 2 {
			s.Camera.Fovy = 2
		}
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		k := s.Camera.Fovy / float32(rl.GetScreenHeight())
		s.Camera.Position.X -= d.X * k
		s.Camera.Position.Y += d.Y * k
		s.Camera.Target.X = s.Camera.Position.X
		s.Camera.Target.Y = s.Camera.Position.Y
	}
}

// Draw renders the grid (when visible) and then calls drawWorld inside 3D mode.
// Call after ClearBackground and before 2D overlays.
func (s *Scene) Draw(drawWorld func()) {
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		if s.dim == physics.Dim2 {
			drawGridXY()
		} else {
			drawEditorGrid()
		}
	}
	if drawWorld != nil {
		drawWorld()
	}
	rl.EndMode3D()
}

func gridColor(i int) rl.Color {
	if i%gridMajorStep == 0 {
		return rl.NewColor(160, 160, 160, gridMajorAlpha)
	}
	return rl.NewColor(128, 128, 128, gridMinorAlpha)
}

// drawGrid draws minor and major lines across a plane. at maps two in-plane coordinates to a world point.
func drawGrid(at func(u, v float32) rl.Vector3) {
	ext := float32(gridExtent)
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := gridColor(i)
		f := float32(i)
		rl.DrawLine3D(at(f, -ext), at(f, ext), c)
		rl.DrawLine3D(at(-ext, f), at(ext, f), c)
	}
}

// drawEditorGrid is the 3D ground grid on XZ.
func drawEditorGrid() {
	drawGrid(func(u, v float32) rl.Vector3 { return rl.NewVector3(u, 0, v) })
	drawAxes(true)
}

// drawGridXY is the 2D grid, slightly behind Z=0 so colliders draw over it.
func drawGridXY() {
	drawGrid(func(u, v float32) rl.Vector3 { return rl.NewVector3(u, v, -0.01) })
	drawAxes(false)
}

// drawAxes draws X (red) and Y (green) axis lines, plus Z (blue) when withZ is set.
func drawAxes(withZ bool) {
	ext := float32(gridExtent)
	rl.DrawLine3D(rl.NewVector3(-ext, 0, 0), rl.NewVector3(ext, 0, 0), rl.NewColor(220, 80, 80, axisLineAlpha))
	rl.DrawLine3D(rl.NewVector3(0, -ext, 0), rl.NewVector3(0, ext, 0), rl.NewColor(80, 220, 80, axisLineAlpha))
	if withZ {
		rl.DrawLine3D(rl.NewVector3(0, 0, -ext), rl.NewVector3(0, 0, ext), rl.NewColor(80, 80, 220, axisLineAlpha))
	}
}
