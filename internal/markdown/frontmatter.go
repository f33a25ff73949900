package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/adrg/frontmatter"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ErrMalformedFrontMatter reports a metadata block that could not be decoded.
var ErrMalformedFrontMatter = errors.New("markdown: malformed front matter")

const codeMalformedFrontMatter = "FRONTMATTER_MALFORMED"

const (
	keyTitle      = "title"
	keyDate       = "date"
	keyExcerpt    = "excerpt"
	keyCoverImage = "cover_image"
)

const yamlDelimiter = "---\n"

// blockDelimiters open a metadata block. A block is only recognised when one
// of them starts the source at offset zero.
var blockDelimiters = [][]byte{[]byte("---"), []byte("+++"), []byte(";;;")}

// ParseFrontMatter splits source into its metadata block and markdown body.
// YAML (---), TOML (+++) and JSON (;;;) blocks are recognised when the
// delimiter opens the source. Without a block
// the FrontMatter is empty and the body is source itself. A block that fails
// to decode yields ErrMalformedFrontMatter along with an empty FrontMatter and
// the untouched source as body, so callers can keep going.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	if !startsWithBlock(source) {
		return interfaces.FrontMatter{}, source, nil
	}

	raw := map[string]any{}

	body, err := frontmatter.Parse(bytes.NewReader(source), &raw)
	if err != nil {
		return interfaces.FrontMatter{}, source, goerrors.Wrap(
			fmt.Errorf("%w: %w", ErrMalformedFrontMatter, err),
			goerrors.CategoryBadInput,
			"front matter could not be decoded",
		).WithTextCode(codeMalformedFrontMatter)
	}

	return frontMatterFromMap(raw), body, nil
}

func startsWithBlock(source []byte) bool {
	for _, delim := range blockDelimiters {
		if bytes.HasPrefix(source, delim) {
			return true
		}
	}
	return false
}

// Parse is the recovering variant of ParseFrontMatter: malformed metadata is
// logged and treated as absent.
func Parse(source []byte, logger interfaces.Logger) (interfaces.FrontMatter, []byte) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil && logger != nil {
		logger.Warn("markdown.frontmatter.malformed", "error", err)
	}
	return fm, body
}

// Serialize writes fm as a YAML block followed by body. An empty FrontMatter
// produces the body alone so no block is invented.
func Serialize(fm interfaces.FrontMatter, body []byte) ([]byte, error) {
	if fm.IsZero() {
		return append([]byte(nil), body...), nil
	}

	values := make(map[string]any, len(fm.Extra)+4)
	for key, value := range fm.Extra {
		values[key] = value
	}
	setIfPresent(values, keyTitle, fm.Title)
	setIfPresent(values, keyDate, fm.Date)
	setIfPresent(values, keyExcerpt, fm.Excerpt)
	setIfPresent(values, keyCoverImage, fm.CoverImage)

	encoded, err := yaml.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("serialize front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(encoded) + len(body) + 2*len(yamlDelimiter))
	buf.WriteString(yamlDelimiter)
	buf.Write(encoded)
	buf.WriteString(yamlDelimiter)
	buf.Write(body)
	return buf.Bytes(), nil
}

func setIfPresent(values map[string]any, key, value string) {
	if value != "" {
		values[key] = value
	}
}

func frontMatterFromMap(raw map[string]any) interfaces.FrontMatter {
	var fm interfaces.FrontMatter
	for key, value := range raw {
		switch key {
		case keyTitle:
			fm.Title = scalarString(value)
		case keyDate:
			fm.Date = scalarString(value)
		case keyExcerpt:
			fm.Excerpt = scalarString(value)
		case keyCoverImage:
			fm.CoverImage = scalarString(value)
		default:
			if fm.Extra == nil {
				fm.Extra = map[string]any{}
			}
			fm.Extra[key] = normalizeValue(value)
		}
	}
	return fm
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return formatTime(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// formatTime keeps date-only values in their calendar form.
func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}

// normalizeValue converts YAML v2 style map[any]any values into
// map[string]any so Extra stays JSON encodable.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return value
	}
}
