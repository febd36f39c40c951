// Command confchain resolves configuration keys through a chain described
// in a YAML specification. Each requested key is printed as key=value;
// a key no source can resolve is reported and fails the run.
package main

import (
	"fmt"
	"os"

	"github.com/animalet/confchain/pkg/chain"
	"github.com/animalet/confchain/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

// Version information set during build
var (
	version = "dev"
)

func main() {
	flags := pflag.NewFlagSet("confchain", pflag.ExitOnError)
	showVersion := flags.Bool("version", false, "Show version information")
	debugMode := flags.Bool("debug", false, "Enable debug mode")
	configFile := flags.String("config", "", "Path to a chain specification file")
	overrides := flags.StringToString("set", nil, "Explicit key=value overrides served by arg sources")
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if *debugMode {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *showVersion {
		fmt.Printf("%s %s\n", "confchain", version)
		os.Exit(0)
	}

	if err := run(*configFile, *overrides, flags.Args()); err != nil {
		log.Error().Err(err).Msg("Resolution failed")
		os.Exit(1)
	}
}

func run(configFile string, overrides map[string]string, keys []string) error {
	if configFile == "" {
		return fmt.Errorf("the --config flag is required")
	}
	if len(keys) == 0 {
		return fmt.Errorf("at least one key to resolve is required")
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	handler, err := config.Build(cfg, config.WithArgSource(chain.MapSource(overrides)))
	if err != nil {
		return err
	}

	for _, key := range keys {
		value, ok := handler.Handle(key)
		if !ok {
			return fmt.Errorf("no source resolved %q", key)
		}
		fmt.Printf("%s=%s\n", key, value)
	}
	return nil
}
