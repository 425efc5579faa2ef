// Command oxyprog compiles a catalogue of materials against a device and reports the programs they share.
//
// Usage:
//
//	oxyprog [-config file] [-v]
//
// Settings come from the optional config file and OXYPROG_* environment variables.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/program"
)

func main() {
	configPath := flag.String("config", "", "config file (yaml, json or toml)")
	verbose := flag.Bool("v", false, "log debug output to stderr")
	flag.Parse()

	if *verbose {
		common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := loadConfig(newViper(), *configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func keyPrefix(key string) string {
	const n = 24
	if len(key) <= n {
		return key
	}
	return key[:n]
}

// run compiles the catalogue, prints one line per material, disposes everything and prints the final counts.
//
// Parameters:
//   - cfg: the resolved configuration
//   - out: where the report is written
//
// Returns:
//   - error: error if the device cannot be opened, a program cannot be built or something leaked
func run(cfg config, out io.Writer) error {
	device, cleanup, err := openDevice(cfg.Backend)
	if err != nil {
		return err
	}
	defer cleanup()

	var failed []*program.Diagnostics
	r := renderer.NewRenderer(device,
		renderer.WithToneMapping(cfg.ToneMapping),
		renderer.WithOutputColorSpace(cfg.OutputColorSpace),
		renderer.WithPrecision(cfg.Precision),
		renderer.WithShadowMap(cfg.ShadowMapEnabled, cfg.ShadowMapType),
		renderer.WithCheckShaderErrors(cfg.CheckShaderErrors),
		renderer.WithOnShaderError(func(d *program.Diagnostics) { failed = append(failed, d) }),
		renderer.WithCompileWorkers(cfg.Workers))
	defer r.Dispose()

	entries := catalogue()
	draws := make([]renderer.DrawContext, len(entries))
	for i, e := range entries {
		draws[i] = renderer.DrawContext{Material: e.material, Object: e.object, Lights: cfg.Lights}
	}
	if err := r.Compile(draws...); err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	fmt.Fprintf(out, "backend %s, %d materials\n", device.Type(), len(entries))
	for i, e := range entries {
		prog, err := r.Program(draws[i])
		if err != nil {
			return fmt.Errorf("%s: %w", e.label, err)
		}
		prog.Uniforms()
		fmt.Fprintf(out, "%-22s %-22s program=%-3d usedTimes=%-2d ready=%-5v key=%s\n",
			e.label, e.material.Type(), prog.ID(), prog.UsedTimes(), prog.IsReady(), keyPrefix(prog.CacheKey()))
	}

	info := r.Info()
	fmt.Fprintf(out, "live programs %d, stage entries %d, acquires %d, hits %d, compiles %d\n",
		len(info.Programs), info.StageEntries, info.Stats.Acquires, info.Stats.Hits, info.Stats.Compiles)
	for _, d := range failed {
		fmt.Fprintln(out, d.String())
	}

	for _, e := range entries {
		e.material.Dispose()
	}
	info = r.Info()
	fmt.Fprintf(out, "after dispose: live programs %d, stage entries %d, destroyed %d\n",
		len(info.Programs), info.StageEntries, info.Stats.Destroyed)
	if len(info.Programs) != 0 || info.StageEntries != 0 {
		return fmt.Errorf("leaked %d programs and %d stage entries", len(info.Programs), info.StageEntries)
	}
	return nil
}
