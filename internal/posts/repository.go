package posts

import (
	"context"
	"errors"
	"io/fs"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/store"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// DefaultSuffix selects which store entries are posts.
const DefaultSuffix = ".md"

// Config controls discovery and ordering of posts.
type Config struct {
	// Suffix filters store entries; the slug is the entry name without it.
	Suffix string
	// Workers bounds concurrent document reads. Zero uses runtime.NumCPU.
	Workers    int
	Order      Direction
	DatePolicy DatePolicy
}

// Option customises a Repository.
type Option func(*Repository)

// WithLogger sets the repository logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Repository implements interfaces.PostService over a content store.
type Repository struct {
	store  interfaces.ContentStore
	cfg    Config
	logger interfaces.Logger
}

var _ interfaces.PostService = (*Repository)(nil)

// NewRepository builds a repository reading documents from contentStore.
func NewRepository(contentStore interfaces.ContentStore, cfg Config, opts ...Option) *Repository {
	if strings.TrimSpace(cfg.Suffix) == "" {
		cfg.Suffix = DefaultSuffix
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.DatePolicy == "" {
		cfg.DatePolicy = DatePolicyLast
	}

	r := &Repository{
		store:  contentStore,
		cfg:    cfg,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

type document struct {
	slug  string
	entry string
	fm    interfaces.FrontMatter
}

// ListPosts reads every post, drops bodies and returns the records sorted by
// date in the configured direction.
func (r *Repository) ListPosts(ctx context.Context) ([]interfaces.Post, error) {
	started := time.Now()

	docs, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	posts := make([]interfaces.Post, 0, len(docs))
	skipped := 0
	for _, doc := range docs {
		post := interfaces.Post{Slug: doc.slug, FrontMatter: doc.fm}
		if _, err := ParseDate(doc.fm.Date); err != nil {
			keep, policyErr := r.applyDatePolicy(doc)
			if policyErr != nil {
				return nil, policyErr
			}
			if !keep {
				skipped++
				continue
			}
		}
		posts = append(posts, post)
	}

	SortPosts(posts, r.cfg.Order)

	r.logger.Info("posts.list.completed",
		"count", len(posts),
		"skipped", skipped,
		"order", r.cfg.Order.String(),
		"duration", time.Since(started),
	)
	return posts, nil
}

// ListSlugs returns the slug of every post in store order.
func (r *Repository) ListSlugs(ctx context.Context) ([]string, error) {
	entries, err := r.entries(ctx)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, len(entries))
	for i, entry := range entries {
		slugs[i] = entry.slug
	}
	return slugs, nil
}

// GetPost returns the post stored under slug with its markdown body.
func (r *Repository) GetPost(ctx context.Context, slug string) (*interfaces.PostDetail, error) {
	if !store.IsPlainName(slug) {
		return nil, notFoundError(slug)
	}

	name := slug + r.cfg.Suffix
	data, err := r.store.Read(ctx, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFoundError(slug)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, storeError(err, "read post "+slug)
	}

	logger := logging.WithPostContext(r.logger, slug, name)
	fm, body := markdown.Parse(data, logger)
	logger.Debug("posts.get.completed")

	return &interfaces.PostDetail{
		Slug:        slug,
		FrontMatter: fm,
		Body:        string(body),
	}, nil
}

func (r *Repository) applyDatePolicy(doc document) (bool, error) {
	logger := logging.WithPostContext(r.logger, doc.slug, doc.entry)
	switch r.cfg.DatePolicy {
	case DatePolicyFail:
		return false, dateError(doc.slug, doc.fm.Date)
	case DatePolicySkip:
		logger.Warn("posts.date.skipped", "date", doc.fm.Date)
		return false, nil
	default:
		logger.Warn("posts.date.unparseable", "date", doc.fm.Date)
		return true, nil
	}
}

type slugEntry struct {
	slug string
	name string
}

func (r *Repository) entries(ctx context.Context) ([]slugEntry, error) {
	listed, err := r.store.List(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, storeError(err, "list content store")
	}

	entries := make([]slugEntry, 0, len(listed))
	for _, entry := range listed {
		slug, ok := strings.CutSuffix(entry.Name, r.cfg.Suffix)
		if !ok || slug == "" {
			continue
		}
		entries = append(entries, slugEntry{slug: slug, name: entry.Name})
	}
	return entries, nil
}

func (r *Repository) loadAll(ctx context.Context) ([]document, error) {
	entries, err := r.entries(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]document, len(entries))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.cfg.Workers)

	for i, entry := range entries {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			data, err := r.store.Read(groupCtx, entry.name)
			if err != nil {
				return storeError(err, "read post "+entry.slug)
			}
			fm, _ := markdown.Parse(data, logging.WithPostContext(r.logger, entry.slug, entry.name))
			docs[i] = document{slug: entry.slug, entry: entry.name, fm: fm}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return docs, nil
}
