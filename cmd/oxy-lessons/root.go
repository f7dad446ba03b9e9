package main

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-lessons/config"
	"github.com/Carmen-Shannon/oxy-lessons/lessons"
	"github.com/spf13/cobra"
)

// runFunc starts a lesson with a validated configuration.
type runFunc func(cfg config.Config, lesson string) error

// options holds the command line flags.
type options struct {
	configPath string
	assets     string
	mode       int
	msaa       int
	frameLimit int
	profile    bool
	software   bool
}

// newRootCommand builds the command tree. run is called with the resolved configuration.
func newRootCommand(run runFunc) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "oxy-lessons <" + strings.Join(lessons.Names(), "|") + ">",
		Short: "Run a 3D lesson",
		Long: "Run one of the 3D lessons in a window.\n\n" +
			"Lessons with exercise modes switch with Left/Right, N/P or the digit keys.\n" +
			"Debug controls are selected with [ and ] and changed with - and = (hold Shift for 10x).",
		Args:          cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:     lessons.Names(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cfg, args[0])
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	pf.StringVar(&opts.assets, "assets", "", "asset root directory (overrides assets.root)")

	f := root.Flags()
	f.IntVarP(&opts.mode, "mode", "m", 0, "exercise mode to start in (overrides lessons.start_mode)")
	f.IntVar(&opts.msaa, "msaa", 0, "MSAA sample count, 1 or 4 (overrides render.msaa)")
	f.IntVar(&opts.frameLimit, "frame-limit", 0, "frames per second cap, 0 for none (overrides render.frame_limit)")
	f.BoolVar(&opts.profile, "profile", false, "log frame statistics once per second (overrides render.profile)")
	f.BoolVar(&opts.software, "software", false, "force the fallback GPU adapter (overrides render.software_adapter)")

	root.AddCommand(newConfigCommand(opts), newListCommand())
	return root
}

// newConfigCommand prints the effective configuration as TOML.
func newConfigCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			data, err := cfg.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available lessons",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range lessons.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

// resolveConfig loads the configuration file, if any, applies the flags that were set and validates the result.
func resolveConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("assets") {
		cfg.Assets.Root = opts.assets
	}
	if flags.Changed("mode") {
		cfg.Lessons.StartMode = opts.mode
	}
	if flags.Changed("msaa") {
		cfg.Render.MSAA = opts.msaa
	}
	if flags.Changed("frame-limit") {
		cfg.Render.FrameLimit = opts.frameLimit
	}
	if flags.Changed("profile") {
		cfg.Render.Profile = opts.profile
	}
	if flags.Changed("software") {
		cfg.Render.SoftwareAdapter = opts.software
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
