// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/mvoegeli/mach/internal/adapters/config"
	_ "github.com/mvoegeli/mach/internal/adapters/logger"
	_ "github.com/mvoegeli/mach/internal/adapters/shell"
	// Register app and engine nodes.
	_ "github.com/mvoegeli/mach/internal/app"
	_ "github.com/mvoegeli/mach/internal/engine/runner"
)
