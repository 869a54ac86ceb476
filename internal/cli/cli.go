package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depth/pkg/buildinfo"
	"github.com/matzehuels/depth/pkg/cache"
	"github.com/matzehuels/depth/pkg/deps"
	"github.com/matzehuels/depth/pkg/deps/rust"
	deperrors "github.com/matzehuels/depth/pkg/errors"
	"github.com/matzehuels/depth/pkg/graph"
	"github.com/matzehuels/depth/pkg/integrations"
	"github.com/matzehuels/depth/pkg/integrations/crates"
	depio "github.com/matzehuels/depth/pkg/io"
	"github.com/matzehuels/depth/pkg/render/nodelink"
	"github.com/matzehuels/depth/pkg/render/tree"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "depth"

	defaultCacheTTL = 24 * time.Hour

	notFoundMessage = "Package not found or does not have a Cargo.toml file"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out    io.Writer // tree and command output
	errOut io.Writer // logs, spinner, status lines

	// registryURL overrides the crates.io API root.
	registryURL string
}

// New creates a CLI that prints results to out and logs to errOut.
func New(out, errOut io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(errOut, level),
		out:    out,
		errOut: errOut,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// registryOptions are the flags shared by every command that talks to crates.io.
type registryOptions struct {
	timeout  time.Duration
	backend  string
	redisURL string
	cacheTTL time.Duration
	refresh  bool
}

func (o *registryOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.DurationVar(&o.timeout, "timeout", integrations.DefaultTimeout, "per-request timeout for registry calls")
	f.StringVar(&o.backend, "cache", cache.BackendNone, "response cache backend: none, file or redis")
	f.StringVar(&o.redisURL, "redis-url", os.Getenv("DEPTH_REDIS_URL"), "Redis URL for --cache redis (env DEPTH_REDIS_URL)")
	f.DurationVar(&o.cacheTTL, "cache-ttl", defaultCacheTTL, "how long cached responses stay valid")
	f.BoolVar(&o.refresh, "refresh", false, "ignore cached responses (fresh ones are still stored)")
}

// treeOptions holds the root command's flags.
type treeOptions struct {
	registryOptions

	crate       string
	manifest    string
	levels      int
	optional    bool
	dotPath     string
	svgPath     string
	jsonPath    string
	interactive bool
	noColor     bool
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		opts    treeOptions
		verbose bool
	)

	root := &cobra.Command{
		Use:   "depth",
		Short: "depth prints the dependency tree of a crates.io package",
		Long: `depth queries the crates.io API for a package's dependencies, follows them
down to a bounded depth and prints the result as an indented tree.`,
		Example: `  depth -c serde
  depth -c tokio -l 2
  depth -c reqwest -o
  depth --manifest Cargo.toml --dot deps.dot`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
				installLogHooks(c.Logger)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.crate == "" && opts.manifest == "" {
				return deperrors.New(deperrors.ErrCodeInvalidInput, "one of --crate or --manifest is required")
			}
			if opts.crate != "" && opts.manifest != "" {
				return deperrors.New(deperrors.ErrCodeInvalidInput, "--crate and --manifest are mutually exclusive")
			}
			return c.runTree(cmd.Context(), opts)
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	f := root.Flags()
	f.StringVarP(&opts.crate, "crate", "c", "", "crate to inspect")
	f.StringVar(&opts.manifest, "manifest", "", "Cargo.toml whose [dependencies] are inspected")
	f.IntVarP(&opts.levels, "levels", "l", 1, "dependency levels below the crate to show")
	f.BoolVarP(&opts.optional, "optional", "o", false, "follow only optional dependencies")
	f.StringVar(&opts.dotPath, "dot", "", "write the graph as Graphviz DOT to this file")
	f.StringVar(&opts.svgPath, "svg", "", "render the graph as SVG to this file")
	f.StringVar(&opts.jsonPath, "json", "", "write the graph as JSON to this file")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "browse the tree in a scrollable view")
	f.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
	opts.registryOptions.register(root)
	root.MarkFlagFilename("manifest", "toml")

	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Tree Command
// =============================================================================

func (c *CLI) runTree(ctx context.Context, opts treeOptions) error {
	if err := deperrors.ValidateLevels(opts.levels); err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := loggerFromContext(ctx).With("run", runID[:8])

	roots := []string{opts.crate}
	if opts.manifest != "" {
		m, err := deps.ParseCargoManifest(opts.manifest)
		if err != nil {
			return err
		}
		if len(m.Dependencies) == 0 {
			logger.Warn("manifest declares no dependencies", "path", opts.manifest)
			return nil
		}
		roots = m.Dependencies
	}

	registry, closeRegistry, err := c.openRegistry(ctx, opts.registryOptions)
	if err != nil {
		return err
	}
	defer closeRegistry()

	g := graph.New()
	fetcher := deps.NewFetcher(registry, g, deps.Options{
		Optional: opts.optional,
		Logger:   func(format string, args ...any) { logger.Warnf(format, args...) },
	})
	depth := opts.levels + 1

	prog := newProgress(logger)
	spin := startSpinner(ctx, c.errOut, fmt.Sprintf("Fetching dependencies of %s...", roots[0]))
	var found []string
	for _, name := range roots {
		pkg, err := fetcher.Fetch(ctx, name, depth)
		if err != nil {
			spin.Stop()
			if spin.Cancelled() {
				logger.Warn("fetch interrupted", "crate", name)
			}
			return err
		}
		if pkg == nil {
			logger.Warn(notFoundMessage, "crate", name)
			continue
		}
		found = append(found, pkg.Name)
	}
	spin.Stop()

	stats := fetcher.Stats()
	prog.done(fmt.Sprintf("Fetched %d packages", stats.Packages))
	if len(found) == 0 {
		return nil
	}
	if g.HasCycle() {
		logger.Info("dependency graph contains a cycle")
	}

	if opts.interactive {
		var buf bytes.Buffer
		treeOpts := tree.Options{NoColor: opts.noColor, Renderer: lipgloss.NewRenderer(c.out)}
		if err := printTrees(&buf, g, found, depth, treeOpts); err != nil {
			return err
		}
		title := fmt.Sprintf("Dependencies for package '%s'", found[0])
		if opts.manifest != "" {
			title = fmt.Sprintf("Dependencies in %s", opts.manifest)
		}
		if _, err := tea.NewProgram(NewTreeViewModel(title, buf.String()), tea.WithContext(ctx), tea.WithAltScreen()).Run(); err != nil {
			return err
		}
	} else if err := printTrees(c.out, g, found, depth, tree.Options{NoColor: opts.noColor}); err != nil {
		return err
	}

	if err := c.export(ctx, g, opts, depio.Meta{RunID: runID, Root: found[0], Levels: opts.levels, Optional: opts.optional}); err != nil {
		return err
	}
	if logger.GetLevel() <= log.DebugLevel {
		printStats(c.errOut, stats.Packages, g.EdgeCount(), stats.Requests)
	}
	return nil
}

// printTrees writes a header and a tree for each root.
func printTrees(w io.Writer, g *graph.Graph, roots []string, depth int, opts tree.Options) error {
	printer := tree.NewPrinter(w, opts)
	for _, name := range roots {
		if _, err := fmt.Fprintf(w, "Dependencies for package '%s':\n", name); err != nil {
			return err
		}
		if err := printer.Print(g, name, 0, depth); err != nil {
			return err
		}
	}
	return nil
}

// export writes the optional --dot, --svg and --json files.
func (c *CLI) export(ctx context.Context, g *graph.Graph, opts treeOptions, meta depio.Meta) error {
	var written []string

	if opts.dotPath != "" || opts.svgPath != "" {
		dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
		if opts.dotPath != "" {
			if err := os.WriteFile(opts.dotPath, []byte(dot), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", opts.dotPath, err)
			}
			written = append(written, opts.dotPath)
		}
		if opts.svgPath != "" {
			svg, err := nodelink.RenderSVG(ctx, dot)
			if err != nil {
				return err
			}
			if err := os.WriteFile(opts.svgPath, svg, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", opts.svgPath, err)
			}
			written = append(written, opts.svgPath)
		}
	}
	if opts.jsonPath != "" {
		if err := depio.ExportJSON(g, meta, opts.jsonPath); err != nil {
			return err
		}
		written = append(written, opts.jsonPath)
	}

	if len(written) > 0 {
		printSuccess(c.errOut, "Exported graph")
		for _, p := range written {
			printFile(c.errOut, p)
		}
	}
	return nil
}

// =============================================================================
// Registry Factory
// =============================================================================

// openRegistry builds the crates.io registry stack for one command: cache
// backend, HTTP client and adapter. The returned func releases the cache.
func (c *CLI) openRegistry(ctx context.Context, opts registryOptions) (deps.Registry, func(), error) {
	cfg := cache.Config{Backend: opts.backend, RedisURL: opts.redisURL}
	if opts.backend == cache.BackendFile {
		dir, err := cacheDir()
		if err != nil {
			return nil, nil, fmt.Errorf("get cache dir: %w", err)
		}
		cfg.Dir = dir
	}
	backend, err := cache.Open(ctx, cfg)
	if err != nil {
		return nil, nil, deperrors.Wrap(deperrors.ErrCodeInvalidInput, err, "open %s cache", opts.backend)
	}

	client := crates.NewClient(backend, opts.cacheTTL, opts.timeout)
	if c.registryURL != "" {
		client = client.WithBaseURL(c.registryURL)
	}
	return rust.NewRegistry(client, opts.refresh), func() { backend.Close() }, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/depth/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
