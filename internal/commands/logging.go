package commands

import (
	"maps"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const commandModuleRoot = "blog.commands"

// CommandLogger returns the logger for the command module, named
// blog.commands.<module>. extra fields are merged over the component tags,
// later maps winning.
func CommandLogger(provider interfaces.LoggerProvider, module string, extra ...map[string]any) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	fields := map[string]any{
		"component":      "command",
		"command_module": name,
	}
	for _, set := range extra {
		maps.Copy(fields, set)
	}
	return logging.WithFields(logging.ModuleLogger(provider, commandModuleRoot+"."+name), fields)
}
