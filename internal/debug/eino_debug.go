// Package debug hooks the eino devops visual debugger into the process
// when enabled by config.
package debug

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino-ext/devops"

	"cryptochat/config"
)

// Init starts the eino debug plugin when EinoDebugEnabled is set; otherwise
// it is a no-op.
func Init(ctx context.Context, cfg *config.Config) error {
	if !cfg.EinoDebugEnabled {
		return nil
	}

	if err := devops.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize Eino debug plugin: %w", err)
	}

	if cfg.Debug {
		log.Printf("[EinoDebug] debug server ready at http://localhost:%d", cfg.EinoDebugPort)
	}

	return nil
}
