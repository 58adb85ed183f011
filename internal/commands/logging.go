package commands

import (
	"strings"

	"github.com/goliatone/go-cms-bootstrap/internal/logging"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
)

// CommandLogger returns the logger for the command handlers of module.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.ModuleLogger(provider, "bootstrap.commands."+name), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
