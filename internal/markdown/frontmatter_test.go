package markdown

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestParseFrontMatterFixture(t *testing.T) {
	data, err := os.ReadFile("testdata/hello.md")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "Hello" {
		t.Fatalf("expected title Hello, got %q", fm.Title)
	}
	if fm.Date != "2024-01-01" {
		t.Fatalf("expected date 2024-01-01, got %q", fm.Date)
	}
	if fm.Excerpt != "First post" {
		t.Fatalf("expected excerpt, got %q", fm.Excerpt)
	}
	if fm.CoverImage != "/images/hello.png" {
		t.Fatalf("expected cover image, got %q", fm.CoverImage)
	}
	tags, ok := fm.Extra["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "go" {
		t.Fatalf("expected tags in extra, got %#v", fm.Extra)
	}
	if len(fm.Extra) != 1 {
		t.Fatalf("expected only tags in extra, got %#v", fm.Extra)
	}
	if len(body) == 0 || body[0] != '#' {
		t.Fatalf("expected body to start at heading, got %q", string(body))
	}
}

func TestParseFrontMatterExactKeys(t *testing.T) {
	fm, _, err := ParseFrontMatter([]byte("---\ntitle: Only\n---\nbody\n"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	want := interfaces.FrontMatter{Title: "Only"}
	if !reflect.DeepEqual(fm, want) {
		t.Fatalf("expected %#v, got %#v", want, fm)
	}
}

func TestParseFrontMatterWithoutBlock(t *testing.T) {
	source := []byte("# Just markdown\n\nNo metadata here.\n")

	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if !fm.IsZero() {
		t.Fatalf("expected empty front matter, got %#v", fm)
	}
	if string(body) != string(source) {
		t.Fatalf("expected body to equal input, got %q", string(body))
	}

	_, again, err := ParseFrontMatter(body)
	if err != nil {
		t.Fatalf("second ParseFrontMatter: %v", err)
	}
	if string(again) != string(body) {
		t.Fatalf("expected idempotent body, got %q", string(again))
	}
}

func TestParseFrontMatterRequiresLeadingDelimiter(t *testing.T) {
	source := []byte("\n---\ntitle: x\n---\nbody")

	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if !fm.IsZero() {
		t.Fatalf("expected no front matter after a leading blank line, got %#v", fm)
	}
	if string(body) != string(source) {
		t.Fatalf("expected body to equal input, got %q", string(body))
	}
}

func TestParseFrontMatterTOML(t *testing.T) {
	source := []byte("+++\ntitle = \"Toml\"\ndraft = true\n+++\nbody\n")

	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.Title != "Toml" {
		t.Fatalf("expected title Toml, got %q", fm.Title)
	}
	if fm.Extra["draft"] != true {
		t.Fatalf("expected draft flag in extra, got %#v", fm.Extra)
	}
	if string(body) != "body\n" {
		t.Fatalf("unexpected body %q", string(body))
	}
}

func TestParseFrontMatterMalformed(t *testing.T) {
	source := []byte("---\ntitle: [unclosed\n---\nbody\n")

	fm, body, err := ParseFrontMatter(source)
	if err == nil {
		t.Fatalf("expected malformed front matter error")
	}
	if !errors.Is(err, ErrMalformedFrontMatter) {
		t.Fatalf("expected ErrMalformedFrontMatter, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryBadInput) {
		t.Fatalf("expected bad input category, got %v", err)
	}
	if !fm.IsZero() {
		t.Fatalf("expected empty front matter, got %#v", fm)
	}
	if string(body) != string(source) {
		t.Fatalf("expected whole input as body, got %q", string(body))
	}
}

func TestParseRecoversAndWarns(t *testing.T) {
	logger := &captureLogger{}
	source := []byte("---\ntitle: [unclosed\n---\nbody\n")

	fm, body := Parse(source, logger)
	if !fm.IsZero() {
		t.Fatalf("expected empty front matter, got %#v", fm)
	}
	if string(body) != string(source) {
		t.Fatalf("expected whole input as body, got %q", string(body))
	}
	if len(logger.warnings) != 1 || logger.warnings[0] != "markdown.frontmatter.malformed" {
		t.Fatalf("expected one malformed warning, got %#v", logger.warnings)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	fm := interfaces.FrontMatter{
		Title: "Hello",
		Date:  "2024-01-01",
		Extra: map[string]any{"author": "ada"},
	}
	body := []byte("# Hi\n")

	encoded, err := Serialize(fm, body)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, gotBody, err := ParseFrontMatter(encoded)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if got.Title != "Hello" || got.Date != "2024-01-01" {
		t.Fatalf("round trip lost fields: %#v", got)
	}
	if got.Extra["author"] != "ada" {
		t.Fatalf("round trip lost extra: %#v", got.Extra)
	}
	if string(gotBody) != "# Hi\n" {
		t.Fatalf("round trip body mismatch: %q", string(gotBody))
	}
}

func TestSerializeWithoutFields(t *testing.T) {
	encoded, err := Serialize(interfaces.FrontMatter{}, []byte("plain\n"))
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if string(encoded) != "plain\n" {
		t.Fatalf("expected body only, got %q", string(encoded))
	}
}

type captureLogger struct {
	warnings []string
}

func (l *captureLogger) Trace(string, ...any)                          {}
func (l *captureLogger) Debug(string, ...any)                          {}
func (l *captureLogger) Info(string, ...any)                           {}
func (l *captureLogger) Warn(msg string, _ ...any)                     { l.warnings = append(l.warnings, msg) }
func (l *captureLogger) Error(string, ...any)                          {}
func (l *captureLogger) Fatal(string, ...any)                          {}
func (l *captureLogger) WithContext(context.Context) interfaces.Logger { return l }
