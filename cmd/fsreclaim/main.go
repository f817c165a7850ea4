package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vertextoedge/fsreclaim/internal/adapter/filesystem"
	"github.com/vertextoedge/fsreclaim/internal/config"
	"github.com/vertextoedge/fsreclaim/internal/logger"
	"github.com/vertextoedge/fsreclaim/internal/service/reaper"
)

const version = "0.1.0"

func main() {
	// Parse command line flags
	flags := pflag.NewFlagSet("fsreclaim", pflag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, `fsreclaim %s

Turn a directory tree into an LRU cache by running this program
periodically. When the volume holding PATH has fewer free bytes than
--target-available-space, files are deleted in least-recently-accessed
order until the target is reached.

Usage:
  fsreclaim --target-available-space SIZE [flags] PATH

Flags:
%s`, version, flags.FlagUsages())
	}
	flags.StringP("target-available-space", "t", "", "minimum filesystem space to leave available; plain bytes or humanized sizes such as 10GB")
	flags.Int64P("older-than", "o", 0, "only delete files last accessed more than this many minutes ago")
	flags.Bool("dry-run", false, "do not remove any files, print the paths that would be removed instead")
	flags.BoolP("verbose", "v", false, "enable verbose logging")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (json, console)")
	_ = flags.Parse(os.Args[1:]) // ExitOnError

	// Bind flags and FSRECLAIM_* environment variables
	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		fmt.Fprintf(os.Stderr, "fsreclaim: %v\n", err)
		os.Exit(2)
	}
	v.SetEnvPrefix("FSRECLAIM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg, err := config.Load(v, flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "fsreclaim: %v\n", err)
		flags.Usage()
		os.Exit(2)
	}

	// Initialize logger
	level := cfg.LogLevel
	if cfg.Verbose {
		level = "debug"
	}
	if err := logger.Init(level, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.GetZapLogger()

	targetBytes, err := cfg.TargetBytes()
	if err != nil {
		// Already validated in Load; kept for safety.
		fmt.Fprintf(os.Stderr, "fsreclaim: %v\n", err)
		os.Exit(2)
	}

	fsys := afero.NewOsFs()
	svc := reaper.New(
		reaper.Config{
			TargetAvailableBytes: targetBytes,
			OlderThan:            cfg.GetOlderThan(),
			DryRun:               cfg.DryRun,
		},
		filesystem.NewWalker(fsys, log),
		filesystem.NewProbe(),
		filesystem.NewRemover(fsys),
		log,
	)

	report, err := svc.Run(cfg.Root)
	if err != nil {
		log.Error("eviction run failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	if cfg.DryRun {
		for _, f := range report.Files {
			fmt.Printf("%s %s\n", f.AccessedAt.Format("01/02/2006 15:04:05"), f.Path)
		}
	}
	if cfg.Verbose {
		fmt.Printf("Deleted %d bytes\n", report.FreedBytes)
	}
}
