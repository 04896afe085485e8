// wavegen generates sine waves for named notes and works with the
// files they are saved to.
//
// Usage:
//
//	wavegen gen [-name NAME] [-txt] [-play] NOTE...
//	wavegen info FILE
//	wavegen norm [-out DIR] FILE...
//	wavegen play FILE
//	wavegen notes
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/soundlab/wave-factory/config"
	"github.com/soundlab/wave-factory/logging"
	"github.com/soundlab/wave-factory/note"
	"github.com/soundlab/wave-factory/playback"
	"github.com/soundlab/wave-factory/wave"
	"github.com/soundlab/wave-factory/waveio"
	"go.uber.org/zap"
)

func main() {
	cfg := config.FromEnv()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var exitErr error
	switch os.Args[1] {
	case "gen":
		exitErr = runGen(os.Args[2:], cfg, log)
	case "info":
		exitErr = runInfo(os.Args[2:], log)
	case "norm":
		exitErr = runNorm(os.Args[2:], cfg, log)
	case "play":
		exitErr = runPlay(os.Args[2:], log)
	case "notes":
		for _, name := range note.Names() {
			freq, _ := note.Frequency(name)
			fmt.Printf("%-4s %10.5f Hz\n", name, freq)
		}
	default:
		printUsage()
		os.Exit(1)
	}

	if exitErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  wavegen gen [-name NAME] [-txt] [-play] NOTE...
  wavegen info FILE
  wavegen norm [-out DIR] FILE...
  wavegen play FILE
  wavegen notes
`)
}

func runGen(args []string, cfg *config.Config, log *zap.SugaredLogger) error {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	name := fs.String("name", "", "Output file name (without extension)")
	txt := fs.Bool("txt", false, "Also save a text dump next to the WAV")
	play := fs.Bool("play", false, "Play each generated note")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("gen: at least one note is required")
	}

	factory := wave.NewFactory(
		wave.WithOutputDir(cfg.OutputDir),
		wave.WithLogger(log),
	)

	var player *playback.Player
	if *play || cfg.Playback {
		player = playback.NewPlayer()
		if err := player.Initialize(); err != nil {
			log.Warnw("playback unavailable", "error", err)
			player = nil
		} else {
			defer player.Cleanup()
		}
	}

	for _, noteName := range fs.Args() {
		var opts []wave.CreateOption
		if *name != "" {
			opts = append(opts, wave.WithName(*name))
		}
		samples, err := factory.CreateNote(noteName, opts...)
		if err != nil {
			return err
		}
		log.Infow("generated", "note", noteName, "samples", len(samples))

		if *txt {
			base := strings.ReplaceAll(noteName, "#", "s") + "_sin.txt"
			if *name != "" {
				base = *name + ".txt"
			}
			if err := factory.SaveWave(filepath.Join(cfg.OutputDir, base), "txt"); err != nil {
				return err
			}
		}
		if player != nil {
			player.PlayAndWait(samples)
		}
	}
	return nil
}

// loadInto fills a factory from a txt or wav file based on extension.
func loadInto(factory *wave.Factory, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return factory.LoadWAV(path)
	}
	return factory.LoadTxt(path)
}

func runInfo(args []string, log *zap.SugaredLogger) error {
	if len(args) != 1 {
		return fmt.Errorf("info: exactly one file is required")
	}

	factory := wave.NewFactory(wave.WithLogger(log))
	if err := loadInto(factory, args[0]); err != nil {
		return err
	}
	fmt.Println(factory.Describe())
	return nil
}

func runNorm(args []string, cfg *config.Config, log *zap.SugaredLogger) error {
	fs := flag.NewFlagSet("norm", flag.ExitOnError)
	outDir := fs.String("out", cfg.OutputDir, "Directory for normalized dumps")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("norm: at least one file is required")
	}

	factory := wave.NewFactory(wave.WithLogger(log))

	sources := make([]wave.Source, 0, fs.NArg())
	for _, path := range fs.Args() {
		f := wave.NewFactory(wave.WithLogger(log))
		if err := loadInto(f, path); err != nil {
			return err
		}
		if f.Samples() == nil {
			return fmt.Errorf("norm: %s did not load", path)
		}
		sources = append(sources, f)
	}

	normalized, err := factory.Normalize(sources...)
	if err != nil {
		return err
	}

	for i, samples := range normalized {
		in := fs.Arg(i)
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + "_norm.txt"
		out := filepath.Join(*outDir, base)

		if err := waveio.WriteText(out, samples); err != nil {
			return err
		}
		log.Infow("normalized", "in", in, "out", out, "samples", len(samples))
	}
	return nil
}

func runPlay(args []string, log *zap.SugaredLogger) error {
	if len(args) != 1 {
		return fmt.Errorf("play: exactly one file is required")
	}

	factory := wave.NewFactory(wave.WithLogger(log))
	if err := loadInto(factory, args[0]); err != nil {
		return err
	}
	if factory.Samples() == nil {
		return fmt.Errorf("play: %s did not load", args[0])
	}

	player := playback.NewPlayer()
	if err := player.Initialize(); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	defer player.Cleanup()

	player.PlayAndWait(factory.Samples())
	return nil
}
