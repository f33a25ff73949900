package exportcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const exportMessageType = "blog.export.site"

// ExportCommand writes the post listing, the slug list and one HTML fragment
// per post below OutputDir.
type ExportCommand struct {
	// OutputDir is the directory receiving the exported files. It is created when missing.
	OutputDir string `json:"output_dir"`
	// SkipHTML limits the export to the JSON listings.
	SkipHTML bool `json:"skip_html,omitempty"`
}

// Type implements command.Message.
func (ExportCommand) Type() string { return exportMessageType }

// Validate ensures an output directory is present before handlers execute.
func (cmd ExportCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.OutputDir, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blog.export.output_dir_required", "output directory is required")
			}
			return nil
		})),
	)
}
