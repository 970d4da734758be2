// Command predprey runs the spatially-explicit predator-prey engine
// against a JSON config file, either headless or in an ebiten window.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"wator/config"
	"wator/model"
	"wator/render"
	"wator/stats"
)

func main() {
	gui := flag.Bool("gui", false, "show the ebiten window instead of running headless")
	ticks := flag.Int("ticks", 100, "number of ticks to run headless (ignored with -gui)")
	report := flag.Bool("report", false, "print a population summary after the run (only when a stats.csv path is given)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: predprey [-gui] [-ticks=N] [-report] <config.json> [stats.csv]")
		os.Exit(1)
	}
	configPath := args[0]
	var statsPath string
	if len(args) > 1 {
		statsPath = args[1]
	}

	if err := run(log, configPath, statsPath, *gui, *ticks, *report); err != nil {
		log.Error("predprey", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(log *slog.Logger, configPath, statsPath string, gui bool, ticks int, report bool) error {
	mp, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	m, err := model.Create(mp)
	if err != nil {
		return fmt.Errorf("creating model: %w", err)
	}
	if err := m.Populate(); err != nil {
		return fmt.Errorf("seeding grid: %w", err)
	}

	log.Info("model ready",
		slog.String("model", m.Params().Model().String()),
		slog.Int("species", m.Params().Count()),
	)

	var recorder *stats.Recorder
	var statsFile *os.File
	if statsPath != "" {
		statsFile, err = os.Create(statsPath)
		if err != nil {
			return fmt.Errorf("creating stats file: %w", err)
		}
		defer statsFile.Close()

		recorder, err = stats.NewRecorder(statsFile, m.Params())
		if err != nil {
			return fmt.Errorf("starting stats recorder: %w", err)
		}
	}

	if gui {
		view := render.New(m, log, 2)
		return render.Run(view)
	}

	for t := 0; t < ticks; t++ {
		if recorder != nil {
			if err := recorder.Write(t, m.Grid().SpecieIDsSnapshot()); err != nil {
				return fmt.Errorf("writing stats row: %w", err)
			}
		}
		m.Tick()
	}

	if recorder != nil {
		if err := recorder.Flush(); err != nil {
			return fmt.Errorf("flushing stats: %w", err)
		}
	}

	if report && recorder != nil {
		for _, s := range recorder.Summary() {
			log.Info("population summary",
				slog.String("specie", s.Name),
				slog.Float64("mean", s.Mean),
				slog.Float64("stddev", s.StdDev),
			)
		}
	}

	log.Info("run complete", slog.Int("ticks", ticks))
	return nil
}
