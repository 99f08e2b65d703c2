// raycast - Terminal Raycaster
// Walk around a grid map in your terminal, Wolfenstein style.
//
// Controls:
//
//	W/Up        - Move forward
//	S/Down      - Move backward
//	A/Left      - Turn left
//	D/Right     - Turn right
//	Space       - Stop
//	M           - Toggle minimap
//	Esc/Q       - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/rs/zerolog"
	"github.com/taigrr/raycast/internal/config"
	"github.com/taigrr/raycast/internal/logging"
	"github.com/taigrr/raycast/internal/motion"
	"github.com/taigrr/raycast/pkg/export"
	"github.com/taigrr/raycast/pkg/raycast"
	"github.com/taigrr/raycast/pkg/render"
)

var (
	configPath   = flag.String("config", "", "Path to config file (json, yaml or toml)")
	mapPath      = flag.String("map", "", "Path to map file (overrides config)")
	targetFPS    = flag.Int("fps", 0, "Target FPS (overrides config)")
	snapshotPath = flag.String("snapshot", "", "Render one frame to this PNG and exit")
	exportPath   = flag.String("export", "", "Write the level as GLB to this path and exit")
	snapWidth    = flag.Int("width", 640, "Snapshot width in pixels")
	snapHeight   = flag.Int("height", 400, "Snapshot height in pixels")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "raycast - Terminal Raycaster\n\n")
		fmt.Fprintf(os.Stderr, "Usage: raycast [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S or Up/Down     - Move\n")
		fmt.Fprintf(os.Stderr, "  A/D or Left/Right  - Turn\n")
		fmt.Fprintf(os.Stderr, "  Space              - Stop\n")
		fmt.Fprintf(os.Stderr, "  M                  - Toggle minimap\n")
		fmt.Fprintf(os.Stderr, "  Esc/Q              - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *mapPath != "" {
		settings.Map.File = *mapPath
	}
	if *targetFPS > 0 {
		settings.FPS = *targetFPS
	}

	log, closeLog, err := logging.Open(settings.LogFile, settings.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	cfg, err := settings.EngineConfig()
	if err != nil {
		return err
	}
	log.Info().
		Int("rows", cfg.Map.Rows()).
		Int("cols", cfg.Map.Cols()).
		Str("map", settings.Map.File).
		Msg("map loaded")

	if *exportPath != "" {
		if err := export.ExportGLB(cfg.Map, *exportPath, export.DefaultOptions()); err != nil {
			return err
		}
		fmt.Printf("Exported: %s\n", *exportPath)
		return nil
	}

	engine, err := raycast.New(cfg)
	if err != nil {
		return err
	}

	renderer := render.NewRenderer(engine)
	renderer.Workers = settings.Workers
	renderer.ShowMinimap = settings.Render.Minimap
	renderer.Minimap.Cell = settings.Render.MinimapCell

	if *snapshotPath != "" {
		if err := renderer.Snapshot(*snapshotPath, *snapWidth, *snapHeight); err != nil {
			return err
		}
		fmt.Printf("Saved: %s (%dx%d)\n", *snapshotPath, *snapWidth, *snapHeight)
		return nil
	}

	return play(log, engine, renderer, settings)
}

func play(log zerolog.Logger, engine *raycast.Engine, renderer *render.Renderer, settings *config.Settings) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fb := render.NewFramebuffer(render.TerminalSize(width, height))

	ctrl := motion.NewController(settings.FPS, settings.Controls.MoveSpeed, settings.Controls.TurnSpeed)
	ctrl.InvertTurn = settings.Controls.InvertTurn

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Input is applied on the frame goroutine so the engine is never touched
	// concurrently.
	input := make(chan func(), 16)

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				w, h := ev.Width, ev.Height
				input <- func() {
					width, height = w, h
					term.Erase()
					term.Resize(width, height)
					fb = render.NewFramebuffer(render.TerminalSize(width, height))
					log.Debug().Int("width", width).Int("height", height).Msg("resized")
				}

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "q", "ctrl+c"):
					cancel()
					return
				case ev.MatchString("w", "up"):
					input <- ctrl.Forward
				case ev.MatchString("s", "down"):
					input <- ctrl.Backward
				case ev.MatchString("a", "left"):
					input <- ctrl.TurnLeft
				case ev.MatchString("d", "right"):
					input <- ctrl.TurnRight
				case ev.MatchString("space"):
					input <- ctrl.Stop
				case ev.MatchString("m"):
					input <- func() { renderer.ShowMinimap = !renderer.ShowMinimap }
				}
			}
		}
	}()

	// Main loop
	targetDuration := time.Second / time.Duration(settings.FPS)
	frames := 0
	fpsTime := time.Now()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()

	drain:
		for {
			select {
			case fn := <-input:
				fn()
			default:
				break drain
			}
		}

		move, turn := ctrl.Step()
		if move != 0 && !engine.CanMove(move) {
			// Walls stop forward motion but still allow turning.
			ctrl.Move.Hold(0)
			move = 0
		}
		engine.TransformCam(move, turn)

		if err := renderer.Frame(fb); err != nil {
			cleanup()
			return err
		}
		fb.Draw(term, uv.Rect(0, 0, width, height))
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		frames++
		if elapsed := time.Since(fpsTime); elapsed >= 5*time.Second {
			cam := engine.Camera()
			log.Debug().
				Float64("fps", float64(frames)/elapsed.Seconds()).
				Float64("x", cam.Position.X).
				Float64("y", cam.Position.Y).
				Msg("frame stats")
			frames = 0
			fpsTime = time.Now()
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
