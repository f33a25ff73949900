package exportcmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const exportOperation = "export.site"

const (
	indexFileName    = "index.json"
	slugsFileName    = "slugs.json"
	manifestFileName = "manifest.json"
	postsDir         = "posts"
)

var (
	// ErrPostServiceRequired is returned when the handler has no post service.
	ErrPostServiceRequired = errors.New("export command: post service is required")
	// ErrRendererRequired is returned when HTML output is requested without a renderer.
	ErrRendererRequired = errors.New("export command: markdown renderer is required")
)

var _ command.Commander[ExportCommand] = (*ExportHandler)(nil)

// Summary reports what an export run produced.
type Summary struct {
	BuildID     uuid.UUID `json:"build_id"`
	OutputDir   string    `json:"output_dir"`
	Posts       int       `json:"posts"`
	Files       []string  `json:"files"`
	GeneratedAt time.Time `json:"generated_at"`
	Duration    string    `json:"duration"`
}

// ExportHandler writes export artifacts via the shared command handler foundation.
type ExportHandler struct {
	inner *commands.Handler[ExportCommand]
}

// NewExportHandler creates a handler bound to the supplied post service and
// renderer. onComplete, when set, receives the summary of each successful run.
func NewExportHandler(service interfaces.PostService, renderer interfaces.MarkdownRenderer, logger interfaces.Logger, onComplete func(Summary), opts ...commands.HandlerOption[ExportCommand]) *ExportHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ExportCommand) error {
		if service == nil {
			return ErrPostServiceRequired
		}
		if renderer == nil && !msg.SkipHTML {
			return ErrRendererRequired
		}

		exporter := exporter{
			service:  service,
			renderer: renderer,
			writer:   newDirWriter(msg.OutputDir),
			buildID:  uuid.New(),
		}
		ctx = logging.ContextWithFields(ctx, map[string]any{
			"build_id":   exporter.buildID.String(),
			"output_dir": msg.OutputDir,
		})
		runLogger := baseLogger.WithContext(ctx)

		summary, err := exporter.run(ctx, msg, runLogger)
		if err != nil {
			return err
		}

		runLogger.Info("export.command.completed",
			"posts", summary.Posts,
			"files", len(summary.Files),
			"duration", summary.Duration,
		)
		if onComplete != nil {
			onComplete(summary)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportCommand]{
		commands.WithLogger[ExportCommand](baseLogger),
		commands.WithOperation[ExportCommand](exportOperation),
		commands.WithMessageFields[ExportCommand](func(msg ExportCommand) map[string]any {
			fields := map[string]any{
				"output_dir": msg.OutputDir,
			}
			if msg.SkipHTML {
				fields["skip_html"] = true
			}
			return fields
		}),
		commands.WithTelemetry[ExportCommand](commands.DefaultTelemetry[ExportCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ExportCommand].
func (h *ExportHandler) Execute(ctx context.Context, msg ExportCommand) error {
	return h.inner.Execute(ctx, msg)
}

type exporter struct {
	service  interfaces.PostService
	renderer interfaces.MarkdownRenderer
	writer   artifactWriter
	buildID  uuid.UUID
}

func (e exporter) run(ctx context.Context, msg ExportCommand, logger interfaces.Logger) (Summary, error) {
	started := time.Now().UTC()
	summary := Summary{
		BuildID:     e.buildID,
		OutputDir:   msg.OutputDir,
		GeneratedAt: started,
	}

	if err := e.writer.EnsureDir(ctx, "."); err != nil {
		return summary, fmt.Errorf("export: prepare output: %w", err)
	}

	posts, err := e.service.ListPosts(ctx)
	if err != nil {
		return summary, err
	}
	if err := e.writeJSON(ctx, indexFileName, categoryIndex, posts); err != nil {
		return summary, err
	}
	summary.Files = append(summary.Files, indexFileName)

	slugs, err := e.listedSlugs(ctx, posts)
	if err != nil {
		return summary, err
	}
	if err := e.writeJSON(ctx, slugsFileName, categorySlugs, slugs); err != nil {
		return summary, err
	}
	summary.Files = append(summary.Files, slugsFileName)
	summary.Posts = len(posts)

	if !msg.SkipHTML {
		if err := e.writer.EnsureDir(ctx, postsDir); err != nil {
			return summary, fmt.Errorf("export: prepare posts: %w", err)
		}
		for _, slug := range slugs {
			file, err := e.writePost(ctx, slug)
			if err != nil {
				return summary, err
			}
			logging.WithPostContext(logger, slug, file).Debug("export.post.written")
			summary.Files = append(summary.Files, file)
		}
	}

	summary.Duration = time.Since(started).String()
	if err := e.writeJSON(ctx, manifestFileName, categoryManifest, summary); err != nil {
		return summary, err
	}
	summary.Files = append(summary.Files, manifestFileName)
	return summary, nil
}

// listedSlugs keeps the slugs of the posts present in the listing, in slug
// order, so a date policy that drops posts drops their artifacts too.
func (e exporter) listedSlugs(ctx context.Context, posts []interfaces.Post) ([]string, error) {
	all, err := e.service.ListSlugs(ctx)
	if err != nil {
		return nil, err
	}
	listed := make(map[string]struct{}, len(posts))
	for _, post := range posts {
		listed[post.Slug] = struct{}{}
	}
	slugs := make([]string, 0, len(posts))
	for _, slug := range all {
		if _, ok := listed[slug]; ok {
			slugs = append(slugs, slug)
		}
	}
	return slugs, nil
}

func (e exporter) writePost(ctx context.Context, slug string) (string, error) {
	post, err := e.service.GetPost(ctx, slug)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := e.renderer.RenderHTML(&buf, []byte(post.Body)); err != nil {
		return "", fmt.Errorf("export: render %s: %w", slug, err)
	}
	file := path.Join(postsDir, slug+".html")
	if err := e.writer.WriteFile(ctx, writeFileRequest{
		Path:     file,
		Content:  &buf,
		Category: categoryPost,
	}); err != nil {
		return "", err
	}
	return file, nil
}

func (e exporter) writeJSON(ctx context.Context, name string, category writeCategory, value any) error {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("export: encode %s: %w", name, err)
	}
	payload = append(payload, '\n')
	return e.writer.WriteFile(ctx, writeFileRequest{
		Path:     name,
		Content:  bytes.NewReader(payload),
		Category: category,
	})
}
