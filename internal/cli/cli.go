// Package cli implements the pricebook subcommands. Each command loads
// configuration, acquires the database pool for the duration of the run
// and releases it on every exit path.
package cli

import (
	"fmt"
	"os"

	"pricebook/internal/config"

	"github.com/rs/zerolog"
)

// setup loads configuration and builds the root logger shared by all
// subcommands.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	return cfg, logger, nil
}

// fail reports a fatal import error to the operator.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
