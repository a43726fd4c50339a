// Command nebulad runs the simulation headless: load a scenario or a
// save, advance a number of days and optionally write a save back out.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/nebula4x/simcore/events"
	"github.com/nebula4x/simcore/save"
	"github.com/nebula4x/simcore/sim"
)

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "scenario yaml to start from")
		loadPath     = flag.String("load", "", "save file to resume from")
		savePath     = flag.String("save", "", "write the final state here")
		configPath   = flag.String("config", "", "simulation config file")
		days         = flag.Int("days", 30, "days to advance")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	if err := run(log, *scenarioPath, *loadPath, *savePath, *configPath, *days); err != nil {
		log.Error().Err(err).Msg("nebulad failed")
		os.Exit(1)
	}
}

func run(log zerolog.Logger, scenarioPath, loadPath, savePath, configPath string, days int) error {
	cfg, err := sim.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var s *sim.Simulation
	switch {
	case scenarioPath != "":
		sc, err := LoadScenario(scenarioPath)
		if err != nil {
			return err
		}
		st, err := sc.BuildState()
		if err != nil {
			return err
		}
		s = sim.New(sc.BuildContent(), cfg, sim.WithLogger(log))
		s.LoadGame(st)
		log.Info().Str("scenario", sc.Name).Int("days", days).Msg("scenario loaded")
	case loadPath != "":
		st, err := save.ReadFile(loadPath)
		if err != nil {
			return fmt.Errorf("load save: %w", err)
		}
		s = sim.New(nil, cfg, sim.WithLogger(log))
		s.LoadGame(st)
		log.Info().Str("save", loadPath).Int("days", days).Msg("save loaded")
	default:
		return fmt.Errorf("need -scenario or -load")
	}

	firstSeq := s.State().Events.NextSeq
	start := time.Now()
	s.AdvanceDays(days)
	log.Info().Dur("elapsed", time.Since(start)).Str("date", s.State().Date.String()).
		Msg("advance complete")

	for _, e := range s.State().Events.Entries {
		if e.Seq < firstSeq {
			continue
		}
		line := log.Info()
		if e.Level >= events.LevelWarn {
			line = log.Warn()
		}
		line.Str("day", e.Day.String()).Str("category", e.Category.String()).Msg(e.Message)
	}

	if savePath != "" {
		if err := save.WriteFile(savePath, s.State()); err != nil {
			return fmt.Errorf("write save: %w", err)
		}
		log.Info().Str("save", savePath).Msg("state written")
	}
	return nil
}
