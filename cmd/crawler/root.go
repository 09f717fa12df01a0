package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"writeups-article-list/internal/config"
	"writeups-article-list/internal/crawler"
	"writeups-article-list/internal/logger"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "writeups-article-list [listing-url]",
		Short: "Scroll an article listing and export every preview's title and link",
		Long: `writeups-article-list opens an article listing in headless Chrome and keeps
scrolling it so lazily loaded previews appear. When you stop it, it reads every
preview on the page and writes article_list.json and article_list.txt.

Stop scrolling by typing "stop" and pressing Enter, or with Ctrl+C.
A second Ctrl+C aborts without exporting.

Configuration file (.article-list.yaml) example:
  url: https://infosecwriteups.com/tagged/bug-bounty
  site_title: InfoSec Write-ups (Bug Bounty)
  scroll_interval: 100ms
  output_dir: ./out
  formats: [csv, md]
  selectors:
    article: article[data-testid="post-preview"]
    title: h2`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runRootCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaults := config.Default()
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .article-list.yaml in current dir or XDG config dir)")
	cmd.Flags().Bool("headless", defaults.Headless, "Run headless Chrome")
	cmd.Flags().Duration("interval", defaults.ScrollInterval, "Delay between scroll steps")
	cmd.Flags().Duration("stop-after", 0, "Issue the stop command automatically after this long (0 = wait for the operator)")
	cmd.Flags().StringP("output", "o", defaults.OutputDir, "Directory receiving the exported files")
	cmd.Flags().String("emit", defaults.Emit, "How files are saved: file (write directly) or browser (data-URL download through Chrome)")
	cmd.Flags().StringSlice("format", nil, "Extra export formats besides json and txt (csv, md)")
	cmd.Flags().String("site-title", defaults.SiteTitle, "Site name used in report headers")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	return cmd
}

// buildConfig layers the config file and then explicitly set flags over the defaults.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg := config.Default()
	if path := config.FindConfigFile(configPath); path != "" {
		cfg, err = config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	} else if configPath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	}

	if len(args) > 0 {
		cfg.URL = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("headless") {
		if cfg.Headless, err = flags.GetBool("headless"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("interval") {
		if cfg.ScrollInterval, err = flags.GetDuration("interval"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("stop-after") {
		if cfg.StopAfter, err = flags.GetDuration("stop-after"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output") {
		if cfg.OutputDir, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("emit") {
		if cfg.Emit, err = flags.GetString("emit"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("format") {
		if cfg.Formats, err = flags.GetStringSlice("format"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("site-title") {
		if cfg.SiteTitle, err = flags.GetString("site-title"); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// runRootCmd executes the root command.
func runRootCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}
	l := logger.New(cmd.ErrOrStderr(), verbose)
	slog.SetDefault(l)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	trig := newStopTrigger(l)
	go trig.watchInput(cmd.InOrStdin())

	// First signal is the stop command; a second one aborts.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		trig.fire("signal")
		<-sigCh
		l.Warn("second interrupt, aborting without export")
		cancel()
	}()

	printInstructions(cmd.OutOrStdout(), cfg)
	return run(ctx, cfg, trig.C(), cmd.OutOrStdout(), l)
}

func printInstructions(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "Scrolling %s every %s.\n", cfg.URL, cfg.ScrollInterval)
	fmt.Fprintln(w, `To stop and export the results, type "stop" and press Enter (or press Ctrl+C).`)
}

func run(ctx context.Context, cfg *config.Config, stop <-chan struct{}, console io.Writer, l *slog.Logger) error {
	c := crawler.NewCrawler(
		crawler.WithScrollInterval(cfg.ScrollInterval),
		crawler.WithStopAfter(cfg.StopAfter),
		crawler.WithNavigationTimeout(cfg.NavigationTimeout),
		crawler.WithHeadless(cfg.Headless),
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithSelectors(crawler.Selectors{
			Article: cfg.Selectors.Article,
			Title:   cfg.Selectors.Title,
			Link:    cfg.Selectors.Link,
		}),
		crawler.WithLogger(l),
	)

	articles, err := c.Run(ctx, cfg.URL, stop, exporterFactory(cfg, console, l))
	if errors.Is(err, context.Canceled) {
		return errors.New("aborted")
	}
	if err != nil {
		return err
	}
	l.Info("done", "articles", len(articles), "output", cfg.OutputDir)
	return nil
}

// exporterFactory picks the emitter named by cfg.Emit.
func exporterFactory(cfg *config.Config, console io.Writer, l *slog.Logger) crawler.ExporterFactory {
	return func(tab context.Context) (*crawler.Exporter, error) {
		var em crawler.Emitter
		switch cfg.Emit {
		case config.EmitBrowser:
			be, err := crawler.NewBrowserEmitter(tab, cfg.OutputDir, cfg.DownloadTimeout, l)
			if err != nil {
				return nil, err
			}
			em = be
		default:
			em = crawler.NewDirEmitter(cfg.OutputDir, l)
		}
		return crawler.NewExporter(em,
			crawler.WithSiteTitle(cfg.SiteTitle),
			crawler.WithFormats(cfg.ExportFormats()...),
			crawler.WithConsole(console),
			crawler.WithExportLogger(l),
		), nil
	}
}
