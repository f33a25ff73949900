package interfaces

import "context"

// FrontMatter carries the metadata block found at the top of a post. The
// well-known keys are promoted to fields; every other key lands in Extra.
// Absent keys surface as empty strings.
type FrontMatter struct {
	Title      string         `yaml:"title,omitempty" json:"title,omitempty"`
	Date       string         `yaml:"date,omitempty" json:"date,omitempty"`
	Excerpt    string         `yaml:"excerpt,omitempty" json:"excerpt,omitempty"`
	CoverImage string         `yaml:"cover_image,omitempty" json:"cover_image,omitempty"`
	Extra      map[string]any `yaml:",inline" json:"extra,omitempty"`
}

// IsZero reports whether no metadata was declared.
func (fm FrontMatter) IsZero() bool {
	return fm.Title == "" && fm.Date == "" && fm.Excerpt == "" && fm.CoverImage == "" && len(fm.Extra) == 0
}

// Post is the listing record for a single content document.
type Post struct {
	Slug        string      `json:"slug"`
	FrontMatter FrontMatter `json:"frontmatter"`
}

// PostDetail is a single post fetched by slug, including its markdown body.
type PostDetail struct {
	Slug        string      `json:"slug"`
	FrontMatter FrontMatter `json:"frontmatter"`
	Body        string      `json:"content"`
}

// PostService is the contract exposed to presentation layers.
type PostService interface {
	// ListPosts returns every post ordered by date.
	ListPosts(ctx context.Context) ([]Post, error)
	// GetPost fetches one post and its body by slug.
	GetPost(ctx context.Context, slug string) (*PostDetail, error)
	// ListSlugs returns the slugs of every post, derived from the same listing
	// used by ListPosts.
	ListSlugs(ctx context.Context) ([]string, error)
}
