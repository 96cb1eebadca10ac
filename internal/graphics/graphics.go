package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window opened by Run.
type Window struct {
	Width     int32
	Height    int32
	Title     string
	TargetFPS int32
}

// Run opens the window and runs the main loop. Each frame it calls update with the frame time,
// then clears the screen and calls draw. beforeClose runs while the GL context still exists.
func Run(win Window, update func(dt float32), draw func(), beforeClose func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(win.Width, win.Height, win.Title)
	defer rl.CloseWindow()

	if win.TargetFPS > 0 {
		rl.SetTargetFPS(win.TargetFPS)
	}

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(30, 32, 36, 255))
		draw()
		rl.EndDrawing()
	}
	if beforeClose != nil {
		beforeClose()
	}
}
