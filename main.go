package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"hexmath/pkg/engine/input"
	"hexmath/pkg/engine/logging"
	"hexmath/pkg/engine/terminal"
	"hexmath/pkg/game/config"
	"hexmath/pkg/game/gameplay"
	"hexmath/pkg/game/level"
	"hexmath/pkg/game/puzzle"
	"hexmath/pkg/game/renderer"
	"hexmath/pkg/game/renderer/tui"
)

func initGettext(cfg config.Config) {
	if cfg.LocaleDir == "" {
		return
	}
	gotext.Configure(cfg.LocaleDir, cfg.Language, "default")
}

// loadCatalog opens the configured level pack, or the built-in one
func loadCatalog(cfg config.Config) (*level.Catalog, error) {
	if cfg.LevelsPath == "" {
		return level.Default()
	}
	return level.LoadFile(cfg.LevelsPath, level.DefaultCacheSize)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run plays the game and returns the process exit code. Deferred cleanup,
// including the log file, runs before main exits.
func run(args []string) int {
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logCloser, err := logging.Configure(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer logCloser.Close()

	initGettext(cfg)

	catalog, err := loadCatalog(cfg)
	if err != nil {
		logging.Log.WithError(err).Error("cannot load level pack")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	r := tui.New()
	r.Init()

	display := renderer.NewDisplay(r)
	session := gameplay.NewSession(catalog, display, puzzle.WithCooldown(cfg.Cooldown))
	defer session.Close()
	display.Attach(session.Snapshot)

	if err := session.Start(cfg.StartLevel - 1); err != nil {
		logging.Log.WithFields(logrus.Fields{
			"level": cfg.StartLevel,
			"count": catalog.Count(),
		}).Error("cannot start")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	device := input.DeviceTerminal
	if !terminal.IsInteractive(os.Stdin) {
		device = input.DevicePipe
	}
	reader := input.NewLineReader(os.Stdin, device)

	for mainLoop(display, session, reader) {
	}

	r.ShowMessage("SUBTLE{" + gotext.Get("Goodbye.") + "}")
	return 0
}

// mainLoop draws one frame, reads one line and runs it. It returns false
// when the game should end.
func mainLoop(display *renderer.Display, session *gameplay.Session, reader *input.LineReader) bool {
	display.Redraw()

	raw, err := reader.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			logging.Log.WithError(err).Error("cannot read input")
		}
		fmt.Println()
		return false
	}
	if raw.Device == input.DevicePipe {
		fmt.Println(raw.Code)
	}

	return !session.Apply(input.MapToIntents(raw), display)
}
