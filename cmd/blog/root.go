package main

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	blog "github.com/goliatone/go-blog"
)

var moduleBuilder = func(cfg blog.Config) (*blog.Module, error) {
	return blog.New(cfg)
}

type cli struct {
	out     io.Writer
	cfgFile string
	cfg     blog.Config
	module  *blog.Module
}

func newRootCommand(out io.Writer) *cobra.Command {
	app := &cli{out: out}

	root := &cobra.Command{
		Use:          "blog",
		Short:        "Read, render and export markdown blog posts",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.initialize(cmd)
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&app.cfgFile, "config", "", "config file (default is ./blog.yaml)")
	flags.String("content-dir", "", "directory holding post documents")
	flags.String("order", "", "listing order: asc or desc")
	flags.String("log-level", "", "log level")

	root.AddCommand(
		app.listCommand(),
		app.showCommand(),
		app.slugsCommand(),
		app.exportCommand(),
		app.watchCommand(),
	)
	return root
}

func (c *cli) initialize(cmd *cobra.Command) error {
	v := viper.New()
	setDefaults(v, blog.DefaultConfig())

	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("blog")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("BLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || c.cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	flags := cmd.Flags()
	for flag, key := range map[string]string{
		"content-dir": "content.dir",
		"order":       "listing.order",
		"log-level":   "logging.level",
	} {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			v.Set(key, f.Value.String())
		}
	}

	var cfg blog.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	c.cfg = cfg

	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	c.module = module
	return nil
}

// setDefaults registers every config leaf so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, cfg blog.Config) {
	var walk func(prefix string, value reflect.Value)
	walk = func(prefix string, value reflect.Value) {
		typ := value.Type()
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			key := field.Tag.Get("mapstructure")
			if key == "" {
				continue
			}
			if prefix != "" {
				key = prefix + "." + key
			}
			if field.Type.Kind() == reflect.Struct {
				walk(key, value.Field(i))
				continue
			}
			v.SetDefault(key, value.Field(i).Interface())
		}
	}
	walk("", reflect.ValueOf(cfg))
}
