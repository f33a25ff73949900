package exportcmd

import (
	"errors"
	"testing"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

type recordingRegistry struct {
	Handlers []any
	Err      error
}

func newRecordingRegistry() *recordingRegistry {
	return &recordingRegistry{Handlers: make([]any, 0)}
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.Err != nil {
		return r.Err
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

type cronRegistration struct {
	Config  command.HandlerConfig
	Handler any
}

type cronRecorder struct {
	Registrations []cronRegistration
}

func newCronRecorder() *cronRecorder {
	return &cronRecorder{Registrations: make([]cronRegistration, 0)}
}

func (c *cronRecorder) Registrar() CronRegistrar {
	return func(cfg command.HandlerConfig, handler any) error {
		c.Registrations = append(c.Registrations, cronRegistration{Config: cfg, Handler: handler})
		return nil
	}
}

func TestRegisterExportCommandsRegistersHandler(t *testing.T) {
	reg := newRecordingRegistry()

	handler, err := RegisterExportCommands(reg, newStubService(), markdown.NewRenderer(interfaces.ParseOptions{}), nil)
	if err != nil {
		t.Fatalf("register export commands: %v", err)
	}
	if handler == nil {
		t.Fatal("expected handler returned")
	}
	if len(reg.Handlers) != 1 || reg.Handlers[0] != handler {
		t.Fatalf("expected handler registered, got %#v", reg.Handlers)
	}
}

func TestRegisterExportCommandsHandlerOptionsApplied(t *testing.T) {
	applied := false
	_, err := RegisterExportCommands(nil, newStubService(), nil, nil,
		WithHandlerOptions(func(h *commands.Handler[ExportCommand]) {
			applied = true
		}),
	)
	if err != nil {
		t.Fatalf("register export commands: %v", err)
	}
	if !applied {
		t.Fatal("expected handler options applied")
	}
}

func TestRegisterExportCommandsRequiresService(t *testing.T) {
	if _, err := RegisterExportCommands(nil, nil, nil, nil); err == nil {
		t.Fatal("expected error for missing service")
	}
}

func TestRegisterExportCommandsPropagatesRegistryError(t *testing.T) {
	reg := newRecordingRegistry()
	reg.Err = errors.New("registry closed")

	if _, err := RegisterExportCommands(reg, newStubService(), nil, nil); !errors.Is(err, reg.Err) {
		t.Fatalf("expected registry error, got %v", err)
	}
}

func TestRegisterExportCronRunsHandler(t *testing.T) {
	recorder := newCronRecorder()
	var summary Summary
	handler, err := RegisterExportCommands(nil, newStubService(), markdown.NewRenderer(interfaces.ParseOptions{}), nil,
		WithOnComplete(func(s Summary) { summary = s }),
	)
	if err != nil {
		t.Fatalf("register export commands: %v", err)
	}

	cfg := command.HandlerConfig{Expression: "@hourly"}
	msg := ExportCommand{OutputDir: t.TempDir(), SkipHTML: true}
	if err := RegisterExportCron(recorder.Registrar(), handler, cfg, msg); err != nil {
		t.Fatalf("register export cron: %v", err)
	}
	if len(recorder.Registrations) != 1 {
		t.Fatalf("expected one cron registration, got %d", len(recorder.Registrations))
	}

	run, ok := recorder.Registrations[0].Handler.(func() error)
	if !ok {
		t.Fatalf("expected func() error handler, got %T", recorder.Registrations[0].Handler)
	}
	if err := run(); err != nil {
		t.Fatalf("cron run: %v", err)
	}
	if summary.OutputDir != msg.OutputDir {
		t.Fatalf("expected summary for %s, got %#v", msg.OutputDir, summary)
	}
}

func TestRegisterExportCronNilRegistrar(t *testing.T) {
	if err := RegisterExportCron(nil, nil, command.HandlerConfig{}, ExportCommand{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
