package main

import (
	"collider-render/internal/app"
	"collider-render/internal/config"
	"collider-render/internal/debug"
	"collider-render/internal/graphics"
	"collider-render/internal/level"
	"collider-render/internal/logger"
	"collider-render/internal/physics"
	"collider-render/internal/rlrender"
	"collider-render/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

// maxFrameDt caps the physics step after a stall (window drag, breakpoint).
const maxFrameDt = float32(1.0 / 30)

type options struct {
	configPath string
	dotenvPath string
	levelPath  string
	dimension  string
	scale      float32
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "colliderview",
		Short:         "Show physics colliders as colored meshes",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer env.log.Close()
			runWindow(env)
			return nil
		},
	}
	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", config.DefaultPath, "engine config file")
	f.StringVar(&opts.dotenvPath, "env-file", ".env", "dotenv file loaded before the environment")
	f.StringVar(&opts.levelPath, "level", "", "level file (overrides config)")
	f.StringVar(&opts.dimension, "dim", "", "2d or 3d (overrides config)")
	f.Float32Var(&opts.scale, "scale", 0, "physics-to-render scale (overrides config)")
	f.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn, error (overrides config)")

	cmd.AddCommand(newHeadlessCmd(opts))
	return cmd
}

func newHeadlessCmd(opts *options) *cobra.Command {
	var ticks int
	var dt float32
	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Run the scheduler without a window and log render stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ticks < 0 {
				return eris.Errorf("ticks must be non-negative, got %d", ticks)
			}
			env, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer env.log.Close()
			env.app.RunHeadless(ticks, dt)
			return nil
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 120, "number of scheduler ticks")
	cmd.Flags().Float32Var(&dt, "dt", 1.0/60, "seconds per tick")
	return cmd
}

// runtimeEnv is everything a run mode needs.
type runtimeEnv struct {
	prefs config.Prefs
	log   *logger.Logger
	app   *app.App
	dim   physics.Dimension
}

// setup resolves configuration (file, dotenv, environment, flags), builds the logger and loads the level.
func setup(cmd *cobra.Command, opts *options) (*runtimeEnv, error) {
	prefs, cfgErr := config.Resolve(opts.configPath, opts.dotenvPath)
	flags := cmd.Flags()
	if flags.Changed("level") {
		prefs.Level = opts.levelPath
	}
	if flags.Changed("dim") {
		prefs.Dimension = opts.dimension
	}
	if flags.Changed("scale") {
		prefs.Scale = opts.scale
	}
	if flags.Changed("log-level") {
		prefs.LogLevel = opts.logLevel
	}
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	lvl, err := logger.ParseLevel(prefs.LogLevel)
	if err != nil {
		return nil, err
	}
	logOpts := logger.DefaultOptions()
	logOpts.Level = lvl
	log, err := logger.New(logOpts)
	if err != nil {
		return nil, err
	}
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Str("path", opts.configPath).Msg("config file ignored, using defaults and environment")
	}

	dim, err := physics.ParseDimension(prefs.Dimension)
	if err != nil {
		log.Close()
		return nil, err
	}
	a := app.New(physics.Configuration{Scale: prefs.Scale, Dimension: dim}, log.Logger)

	if prefs.Level != "" {
		l, err := level.Load(prefs.Level)
		if err != nil {
			log.Close()
			return nil, err
		}
		n, err := level.Spawn(a, l)
		if err != nil {
			log.Close()
			return nil, eris.Wrapf(err, "spawn level %s", prefs.Level)
		}
		log.Info().Str("level", prefs.Level).Int("colliders", n).Stringer("dimension", dim).Msg("level loaded")
	}
	return &runtimeEnv{prefs: prefs, log: log, app: a, dim: dim}, nil
}

// runWindow opens the viewer. F1 toggles the grid, F2 stats, F3 the log, F4 FPS and memory.
func runWindow(env *runtimeEnv) {
	scn := scene.New(env.dim)
	scn.SetGridVisible(env.prefs.GridVisible)
	renderer := rlrender.New(&env.app.World)
	dbg := debug.New()
	dbg.ShowFPS = env.prefs.ShowFPS
	dbg.ShowMemAlloc = env.prefs.ShowMemAlloc
	dbg.ShowStats = env.prefs.ShowStats
	dbg.Lines = env.log.Lines

	update := func(dt float32) {
		switch {
		case rl.IsKeyPressed(rl.KeyF1):
			scn.SetGridVisible(!scn.GridVisible)
		case rl.IsKeyPressed(rl.KeyF2):
			dbg.ShowStats = !dbg.ShowStats
		case rl.IsKeyPressed(rl.KeyF3):
			dbg.ShowLog = !dbg.ShowLog
		case rl.IsKeyPressed(rl.KeyF4):
			dbg.ShowFPS = !dbg.ShowFPS
			dbg.ShowMemAlloc = dbg.ShowFPS
		}
		scn.Update()
		env.app.Tick(min(dt, maxFrameDt))
	}
	draw := func() {
		renderer.SetView(scn.ViewPosition(), [3]float32{0.5, 1, 0.5})
		scn.Draw(func() { renderer.Draw(&env.app.World) })
		dbg.Draw(env.app.Totals(), renderer.Drawn())
	}
	graphics.Run(graphics.Window{
		Width:     env.prefs.WindowWidth,
		Height:    env.prefs.WindowHeight,
		Title:     "colliderview - " + env.prefs.Level,
		TargetFPS: env.prefs.TargetFPS,
	}, update, draw, renderer.Unload)
}
