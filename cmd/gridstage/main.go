// Command gridstage runs a level file in the terminal
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridstage/audio"
	"github.com/lixenwraith/gridstage/behavior"
	"github.com/lixenwraith/gridstage/config"
	"github.com/lixenwraith/gridstage/content"
	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/engine"
	"github.com/lixenwraith/gridstage/input"
	"github.com/lixenwraith/gridstage/render"
	"github.com/lixenwraith/gridstage/script"
	"github.com/lixenwraith/gridstage/service"
	"go.uber.org/zap"
)

func main() {
	defaultConfig := os.Getenv("GRIDSTAGE_CONFIG")
	if defaultConfig == "" {
		defaultConfig = "gridstage.toml"
	}
	configPath := flag.String("config", defaultConfig, "config file path")
	levelPath := flag.String("level", "", "level file, overrides [content] level")
	mute := flag.Bool("mute", false, "disable audio cues")
	flag.Parse()

	if err := run(*configPath, *levelPath, *mute); err != nil {
		fmt.Fprintf(os.Stderr, "gridstage: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func run(configPath, levelPath string, mute bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if levelPath != "" {
		cfg.Content.Level = levelPath
	}
	if mute {
		cfg.Audio.Enabled = false
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	lvl, err := content.Load(cfg.Content.Level)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	finished := false
	restore := func() {
		if !finished {
			finished = true
			screen.Fini()
		}
	}
	defer restore()
	core.SetCrashHandler(func(r any) {
		screen.Fini()
		log.Error("panic", zap.Any("recovered", r))
		log.Sync()
	})

	player := audio.NewPlayer(&audio.Config{
		Enabled:      cfg.Audio.Enabled,
		SampleRate:   cfg.Audio.SampleRate,
		MasterVolume: cfg.Audio.MasterVolume,
		CueVolumes:   audio.DefaultConfig().CueVolumes,
	}, log)

	reg := engine.NewRegistry()
	behavior.Register(reg, behavior.Options{
		Rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		Log:  log,
	})
	scripts := script.NewEngine(log)

	surface := render.NewTerminalSurface(screen, cfg.Engine.Width, cfg.Engine.Height)
	e := engine.New(surface, engine.Options{
		Logger:        log,
		FrameInterval: cfg.Engine.FrameInterval,
		Registry:      reg,
		Background:    tcell.GetColor(cfg.Engine.Background),
		Cues:          player,
		QueueSize:     cfg.Engine.QueueSize,
	})
	pump := input.NewPump(screen, e,
		input.WithLogger(log),
		input.WithQuit(e.Quit),
		input.WithResize(screen.Sync),
	)

	hub := service.NewHub(log)
	for _, s := range []service.Service{
		&service.Funcs{
			ID: "audio",
			InitFn: func() error {
				if err := player.Init(); err != nil {
					log.Warn("audio unavailable", zap.Error(err))
				}
				return nil
			},
			StopFn: func() error { player.Close(); return nil },
		},
		&service.Funcs{
			ID: "scripts",
			InitFn: func() error {
				if err := scripts.LoadDir(cfg.Content.Scripts); err != nil {
					return err
				}
				scripts.Register(reg)
				return nil
			},
			StopFn: func() error { scripts.Close(); return nil },
		},
		&service.Funcs{
			ID:      "input",
			Deps:    []string{"scripts"},
			StartFn: func() error { pump.Start(); return nil },
		},
	} {
		if err := hub.Add(s); err != nil {
			return err
		}
	}
	if err := hub.Init(); err != nil {
		return err
	}

	if err := content.Build(e, lvl); err != nil {
		return err
	}
	if _, err := e.SetStage(cfg.Engine.StartStage); err != nil {
		return err
	}
	if err := e.Start(); err != nil {
		return err
	}
	if err := hub.Start(); err != nil {
		return err
	}
	defer hub.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("gridstage started",
		zap.String("level", cfg.Content.Level),
		zap.Int("stages", len(e.Stages())),
		zap.Int("start_stage", cfg.Engine.StartStage))

	err = e.Run(ctx)
	restore()
	e.DiscardUntil(pump.Done())

	played, dropped := player.Stats()
	log.Info("gridstage stopped",
		zap.Uint64("frames", e.Frame()),
		zap.Uint64("events", pump.Forwarded()),
		zap.Uint64("cues_played", played),
		zap.Uint64("cues_dropped", dropped))

	if errors.Is(err, engine.ErrStagesExhausted) {
		fmt.Println("All stages cleared")
		return nil
	}
	return err
}
