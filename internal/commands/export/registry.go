package exportcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	handlerOpts []commands.HandlerOption[ExportCommand]
	onComplete  func(Summary)
}

// WithHandlerOptions forwards options to the ExportHandler constructor.
func WithHandlerOptions(opts ...commands.HandlerOption[ExportCommand]) Option {
	return func(cfg *options) {
		cfg.handlerOpts = append(cfg.handlerOpts, opts...)
	}
}

// WithOnComplete receives the summary of every successful export.
func WithOnComplete(fn func(Summary)) Option {
	return func(cfg *options) {
		cfg.onComplete = fn
	}
}

// RegisterExportCommands builds the export handler and registers it with reg
// when one is supplied.
func RegisterExportCommands(reg CommandRegistry, service interfaces.PostService, renderer interfaces.MarkdownRenderer, provider interfaces.LoggerProvider, opts ...Option) (*ExportHandler, error) {
	if service == nil {
		return nil, errors.New("export command registration: post service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	handler := NewExportHandler(service, renderer, commands.CommandLogger(provider, "export", map[string]any{"operation": exportOperation}), cfg.onComplete, cfg.handlerOpts...)
	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return handler, nil
}

// RegisterExportCron schedules msg through reg. The handler runs with a
// background context.
func RegisterExportCron(reg CronRegistrar, handler *ExportHandler, cfg command.HandlerConfig, msg ExportCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
