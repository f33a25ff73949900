package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/spf13/cobra"

	blog "github.com/goliatone/go-blog"
	exportcmd "github.com/goliatone/go-blog/internal/commands/export"
	"github.com/goliatone/go-blog/internal/store"
)

func (c *cli) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List posts ordered by date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listing, err := c.module.ListPosts(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			for _, post := range listing {
				fmt.Fprintf(w, "%s\t%s\t%s\n", post.FrontMatter.Date, post.Slug, post.FrontMatter.Title)
			}
			return w.Flush()
		},
	}
}

func (c *cli) showCommand() *cobra.Command {
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Print a post, optionally rendered to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			post, err := c.module.GetPost(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asHTML {
				return c.module.RenderHTML(c.out, []byte(post.Body))
			}
			document, err := blog.SerializeFrontMatter(post.FrontMatter, []byte(post.Body))
			if err != nil {
				return err
			}
			_, err = c.out.Write(document)
			return err
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "render the body as an HTML fragment")
	return cmd
}

func (c *cli) slugsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "slugs",
		Short: "List post slugs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			slugs, err := c.module.ListSlugs(cmd.Context())
			if err != nil {
				return err
			}
			for _, slug := range slugs {
				fmt.Fprintln(c.out, slug)
			}
			return nil
		},
	}
}

func (c *cli) exportCommand() *cobra.Command {
	var (
		outputDir string
		skipHTML  bool
		every     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the listing, slugs and rendered posts to a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.export(cmd.Context(), outputDir, skipHTML); err != nil {
				return err
			}
			if every <= 0 {
				return nil
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.scheduleExport(ctx, every, exportcmd.ExportCommand{OutputDir: outputDir, SkipHTML: skipHTML})
		},
	}
	cmd.Flags().StringVar(&outputDir, "out", "public", "output directory")
	cmd.Flags().BoolVar(&skipHTML, "skip-html", false, "only write the JSON artifacts")
	cmd.Flags().DurationVar(&every, "every", 0, "keep running and re-export on this interval")
	return cmd
}

func (c *cli) export(ctx context.Context, outputDir string, skipHTML bool) error {
	summary, err := c.module.Export(ctx, outputDir, skipHTML)
	if err != nil {
		return err
	}
	c.printSummary(summary)
	return nil
}

func (c *cli) printSummary(summary blog.ExportSummary) {
	fmt.Fprintf(c.out, "exported %d posts to %s (build %s)\n", summary.Posts, summary.OutputDir, summary.BuildID)
}

// scheduleExport re-runs msg every interval until ctx is done.
func (c *cli) scheduleExport(ctx context.Context, interval time.Duration, msg exportcmd.ExportCommand) error {
	handler, err := c.module.ExportHandler(c.printSummary)
	if err != nil {
		return err
	}
	scheduler := newIntervalScheduler(ctx, c.module.Logger("blog.schedule"))
	cfg := command.HandlerConfig{Expression: everyPrefix + interval.String()}
	if err := exportcmd.RegisterExportCron(scheduler.Register, handler, cfg, msg); err != nil {
		return err
	}
	<-ctx.Done()
	scheduler.Wait()
	return nil
}

func (c *cli) watchCommand() *cobra.Command {
	var (
		outputDir string
		debounce  = store.DefaultDebounce
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-export whenever the content directory changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.cfg.Store.Provider == blog.StoreProviderObject {
				return fmt.Errorf("watch requires the %q store provider", blog.StoreProviderDir)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := c.module.Logger("blog.watch")
			if err := c.export(ctx, outputDir, false); err != nil {
				return err
			}
			err := store.Watch(ctx, c.cfg.Content.Dir, debounce, logger, func(ctx context.Context) {
				if err := c.export(ctx, outputDir, false); err != nil {
					logger.Error("watch.export.failed", "error", err)
				}
			})
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&outputDir, "out", "public", "output directory")
	cmd.Flags().DurationVar(&debounce, "debounce", debounce, "quiet period before re-exporting")
	return cmd
}
