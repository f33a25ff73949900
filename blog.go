package blog

import (
	"context"
	"io"

	exportcmd "github.com/goliatone/go-blog/internal/commands/export"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Post is the listing record of a single document.
type Post = interfaces.Post

// PostDetail is a post together with its markdown body.
type PostDetail = interfaces.PostDetail

// FrontMatter is the metadata block of a post.
type FrontMatter = interfaces.FrontMatter

// Node is a render node produced by Render.
type Node = interfaces.Node

// PostService exports the post repository contract.
type PostService = interfaces.PostService

// ContentStore exports the content store contract.
type ContentStore = interfaces.ContentStore

// ExportSummary reports what an export run produced.
type ExportSummary = exportcmd.Summary

// Direction selects the date order used by ComparePosts.
type Direction = posts.Direction

const (
	Ascending  = posts.Ascending
	Descending = posts.Descending
)

var (
	ErrPostNotFound         = posts.ErrPostNotFound
	ErrStoreUnreadable      = posts.ErrStoreUnreadable
	ErrUnparseableDate      = posts.ErrUnparseableDate
	ErrMalformedFrontMatter = markdown.ErrMalformedFrontMatter
)

// Option customises the module container.
type Option = di.Option

// WithLoggerProvider overrides the logger provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithStore reads posts from contentStore instead of Config.Store.
func WithStore(contentStore ContentStore) Option {
	return di.WithStore(contentStore)
}

// Module wires the content pipeline behind a small read API.
type Module struct {
	container *di.Container
}

// New validates cfg and builds the pipeline.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.container.Config()
}

// Posts returns the post repository.
func (m *Module) Posts() PostService {
	return m.container.PostService()
}

// Renderer returns the markdown renderer.
func (m *Module) Renderer() interfaces.MarkdownRenderer {
	return m.container.Renderer()
}

// Logger returns a module logger named after module.
func (m *Module) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(m.container.LoggerProvider(), module)
}

// ListPosts returns every post ordered by date.
func (m *Module) ListPosts(ctx context.Context) ([]Post, error) {
	return m.container.PostService().ListPosts(ctx)
}

// GetPost returns a post and its body by slug.
func (m *Module) GetPost(ctx context.Context, slug string) (*PostDetail, error) {
	return m.container.PostService().GetPost(ctx, slug)
}

// ListSlugs returns the slug of every post.
func (m *Module) ListSlugs(ctx context.Context) ([]string, error) {
	return m.container.PostService().ListSlugs(ctx)
}

// Render converts a markdown body into render nodes.
func (m *Module) Render(body []byte) []Node {
	return m.container.Renderer().Render(body)
}

// RenderHTML writes the HTML fragment of body to w.
func (m *Module) RenderHTML(w io.Writer, body []byte) error {
	return m.container.Renderer().RenderHTML(w, body)
}

// ExportHandler returns the export command handler bound to this module.
func (m *Module) ExportHandler(onComplete func(ExportSummary)) (*exportcmd.ExportHandler, error) {
	return m.RegisterCommands(nil, onComplete)
}

// RegisterCommands builds the export handler and hands it to reg so hosts can
// expose it through a go-command registry. reg may be nil.
func (m *Module) RegisterCommands(reg exportcmd.CommandRegistry, onComplete func(ExportSummary)) (*exportcmd.ExportHandler, error) {
	return exportcmd.RegisterExportCommands(
		reg,
		m.container.PostService(),
		m.container.Renderer(),
		m.container.LoggerProvider(),
		exportcmd.WithOnComplete(onComplete),
	)
}

// Export writes the listing, the slugs and, unless skipHTML is set, one HTML
// fragment per post below outputDir.
func (m *Module) Export(ctx context.Context, outputDir string, skipHTML bool) (ExportSummary, error) {
	var summary ExportSummary
	handler, err := m.ExportHandler(func(s ExportSummary) { summary = s })
	if err != nil {
		return summary, err
	}
	err = handler.Execute(ctx, exportcmd.ExportCommand{OutputDir: outputDir, SkipHTML: skipHTML})
	return summary, err
}

// ParseFrontMatter splits source into its metadata and markdown body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	return markdown.ParseFrontMatter(source)
}

// SerializeFrontMatter renders fm and body back into a document.
func SerializeFrontMatter(fm FrontMatter, body []byte) ([]byte, error) {
	return markdown.Serialize(fm, body)
}

// ComparePosts orders two posts by date in dir. Posts with unparseable dates
// sort last.
func ComparePosts(a, b Post, dir Direction) int {
	return posts.Compare(a, b, dir)
}
