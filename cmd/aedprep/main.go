// SPDX-License-Identifier: EPL-2.0

// Command aedprep builds the datasets described by a YAML configuration
// and prints a summary of every split.
//
//	aedprep -config user_config.yaml
//
// With -preview it instead runs a single clip through the loader, prints
// its patch count and, when -out is given, writes the reformatted waveform
// as 16-bit WAV.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/ik5/aedset"
	"github.com/ik5/aedset/config"
	"github.com/ik5/aedset/dataset"
	"github.com/ik5/aedset/formats/wav"
	"github.com/ik5/aedset/logging"
	"github.com/ik5/aedset/planner"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "aedprep:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("aedprep", flag.ContinueOnError)
	cfgPath := fs.String("config", "user_config.yaml", "path to the YAML configuration")
	preview := fs.String("preview", "", "process only this clip")
	out := fs.String("out", "", "with -preview, write the reformatted clip here")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	if *preview != "" {
		return runPreview(cfg, *preview, *out, stdout)
	}

	logger, err := logging.New("aedprep", cfg.General.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sets, err := aedset.BuildDatasets(ctx, cfg, logger)
	if err != nil {
		return err
	}
	printSummary(stdout, sets)
	return nil
}

func runPreview(cfg config.Config, path, out string, stdout io.Writer) error {
	w, patches, err := aedset.Preview(cfg, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s: %.2f s at %d Hz, %d patches\n", path, w.Seconds(), w.Rate, patches.Len())

	if out == "" {
		return nil
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := wav.WriteFloat32(f, w.Rate, 1, w.Samples); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Wrote:", out)
	return nil
}

func printSummary(w io.Writer, sets *planner.Datasets) {
	fmt.Fprintf(w, "classes (%d): %s\n", sets.Space.K(), strings.Join(sets.Space.Names(), ", "))

	row := func(name string, s *dataset.Stream) {
		if s == nil {
			return
		}
		fmt.Fprintf(w, "%-12s %6d patches %5d batches shape %v\n", name, s.NumPatches(), s.Len(), s.PatchShape())
	}
	row("training", sets.Train)
	row("validation", sets.Valid)
	row("quantization", sets.Quant)
	row("test", sets.Test)
}
