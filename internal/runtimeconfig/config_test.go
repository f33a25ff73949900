package runtimeconfig_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(nil); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresContentDirForDirStore(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = " "

	if err := cfg.Validate(nil); !errors.Is(err, runtimeconfig.ErrContentDirRequired) {
		t.Fatalf("expected ErrContentDirRequired, got %v", err)
	}
}

func TestConfigValidate_ObjectStoreSkipsContentDir(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = ""
	cfg.Store.Provider = "object"
	cfg.Store.Object = runtimeconfig.ObjectStoreConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "blog",
	}

	if err := cfg.Validate(nil); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RejectsIncompleteObjectStore(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Store.Provider = "object"
	cfg.Store.Object = runtimeconfig.ObjectStoreConfig{Endpoint: "localhost:9000"}

	err := cfg.Validate(nil)
	if !errors.Is(err, runtimeconfig.ErrObjectStoreInvalid) {
		t.Fatalf("expected ErrObjectStoreInvalid, got %v", err)
	}
	if !strings.Contains(strings.ToLower(err.Error()), "bucket") {
		t.Fatalf("expected field detail in %q", err.Error())
	}
}

func TestConfigValidate_RejectsUnknownValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"store", func(c *runtimeconfig.Config) { c.Store.Provider = "ftp" }, runtimeconfig.ErrStoreProviderUnknown},
		{"order", func(c *runtimeconfig.Config) { c.Listing.Order = "random" }, runtimeconfig.ErrListingOrderInvalid},
		{"policy", func(c *runtimeconfig.Config) { c.Listing.DatePolicy = "ignore" }, runtimeconfig.ErrDatePolicyInvalid},
		{"suffix", func(c *runtimeconfig.Config) { c.Content.Suffix = "" }, runtimeconfig.ErrContentSuffixRequired},
		{"workers", func(c *runtimeconfig.Config) { c.Content.Workers = -1 }, runtimeconfig.ErrContentWorkersInvalid},
		{"provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "" }, runtimeconfig.ErrLoggingProviderRequired},
		{"unknown provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" }, runtimeconfig.ErrLoggingProviderUnknown},
		{"level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"format", func(c *runtimeconfig.Config) { c.Logging.Format = "xml" }, runtimeconfig.ErrLoggingFormatInvalid},
	}
	for _, tc := range cases {
		cfg := runtimeconfig.DefaultConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(nil); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestConfigValidate_ChecksMarkdownExtensions(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Extensions = []string{"gfm", "mermaid"}
	known := func(name string) bool { return name == "gfm" }

	if err := cfg.Validate(known); !errors.Is(err, runtimeconfig.ErrMarkdownExtensionUnknown) {
		t.Fatalf("expected ErrMarkdownExtensionUnknown, got %v", err)
	}
}
