package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrContentDirRequired       = runtimeconfig.ErrContentDirRequired
	ErrContentSuffixRequired    = runtimeconfig.ErrContentSuffixRequired
	ErrContentWorkersInvalid    = runtimeconfig.ErrContentWorkersInvalid
	ErrStoreProviderUnknown     = runtimeconfig.ErrStoreProviderUnknown
	ErrObjectStoreInvalid       = runtimeconfig.ErrObjectStoreInvalid
	ErrListingOrderInvalid      = runtimeconfig.ErrListingOrderInvalid
	ErrDatePolicyInvalid        = runtimeconfig.ErrDatePolicyInvalid
	ErrMarkdownExtensionUnknown = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

const (
	StoreProviderDir    = runtimeconfig.StoreProviderDir
	StoreProviderObject = runtimeconfig.StoreProviderObject
)

type (
	Config            = runtimeconfig.Config
	ContentConfig     = runtimeconfig.ContentConfig
	StoreConfig       = runtimeconfig.StoreConfig
	ObjectStoreConfig = runtimeconfig.ObjectStoreConfig
	ListingConfig     = runtimeconfig.ListingConfig
	MarkdownConfig    = runtimeconfig.MarkdownConfig
	LoggingConfig     = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the baseline configuration used when callers do not
// supply one.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
