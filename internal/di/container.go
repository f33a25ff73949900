package di

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/store"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ErrStoreUnavailable is returned when the configured content store cannot be opened.
var ErrStoreUnavailable = errors.New("blog container: content store unavailable")

// Container wires the pipeline services from a Config.
type Container struct {
	cfg            runtimeconfig.Config
	loggerProvider interfaces.LoggerProvider
	store          interfaces.ContentStore
	repository     *posts.Repository
	renderer       *markdown.Renderer
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithStore overrides the content store built from Config.Store.
func WithStore(contentStore interfaces.ContentStore) Option {
	return func(c *Container) {
		if contentStore != nil {
			c.store = contentStore
		}
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(markdown.KnownExtension); err != nil {
		return nil, err
	}

	c := &Container{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStore(); err != nil {
		return nil, err
	}
	if err := c.configureRepository(); err != nil {
		return nil, err
	}
	c.configureRenderer()
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.cfg.Logging.Provider)) {
	case "none":
		c.loggerProvider = noopProvider{}
		return nil
	default:
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.cfg.Logging.Level,
			Format:    c.cfg.Logging.Format,
			AddSource: c.cfg.Logging.AddSource,
			Focus:     c.cfg.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
		return nil
	}
}

func (c *Container) configureStore() error {
	if c.store != nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.cfg.Store.Provider)) {
	case runtimeconfig.StoreProviderObject:
		object := c.cfg.Store.Object
		contentStore, err := store.NewObject(store.ObjectConfig{
			Endpoint:  object.Endpoint,
			AccessKey: object.AccessKey,
			SecretKey: object.SecretKey,
			Bucket:    object.Bucket,
			Prefix:    object.Prefix,
			UseSSL:    object.UseSSL,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		c.store = contentStore
	default:
		contentStore, err := store.NewDir(c.cfg.Content.Dir)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		c.store = contentStore
	}
	logging.StoreLogger(c.loggerProvider).Debug("store.configured", "provider", c.cfg.Store.Provider)
	return nil
}

func (c *Container) configureRepository() error {
	order, err := posts.ParseDirection(c.cfg.Listing.Order)
	if err != nil {
		return err
	}
	policy, err := posts.ParseDatePolicy(c.cfg.Listing.DatePolicy)
	if err != nil {
		return err
	}
	c.repository = posts.NewRepository(c.store, posts.Config{
		Suffix:     c.cfg.Content.Suffix,
		Workers:    c.cfg.Content.Workers,
		Order:      order,
		DatePolicy: policy,
	}, posts.WithLogger(logging.PostsLogger(c.loggerProvider)))
	return nil
}

func (c *Container) configureRenderer() {
	var highlighter *markdown.Highlighter
	if c.cfg.Markdown.Highlight {
		highlighter = markdown.NewHighlighter(c.cfg.Markdown.HighlightStyle)
	}
	c.renderer = markdown.NewRenderer(
		interfaces.ParseOptions{Extensions: c.cfg.Markdown.Extensions},
		markdown.WithHighlighter(highlighter),
	)
}

// Config returns the validated configuration.
func (c *Container) Config() runtimeconfig.Config {
	return c.cfg
}

// LoggerProvider returns the provider every module logger derives from.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Store returns the content store.
func (c *Container) Store() interfaces.ContentStore {
	return c.store
}

// PostService returns the post repository.
func (c *Container) PostService() *posts.Repository {
	return c.repository
}

// Renderer returns the markdown renderer.
func (c *Container) Renderer() *markdown.Renderer {
	return c.renderer
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}
