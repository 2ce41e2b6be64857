package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	regform "github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/internal/config"
	"github.com/goliatone/go-regform/internal/observability"
	"github.com/goliatone/go-regform/internal/server"
	"github.com/goliatone/go-regform/pkg/contract"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

type globalFlags struct {
	layout   string
	logLevel string
}

type themeFlags struct {
	name    string
	variant string
	tokens  map[string]string
}

func (f themeFlags) resolve() (*theme.RendererConfig, error) {
	if f.name == "" {
		return nil, nil
	}
	selector := render.NewStaticSelector(&theme.Manifest{Name: f.name, Tokens: f.tokens})
	return regform.ResolveTheme(selector, f.name, f.variant)
}

func (f *themeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "theme", "", "Theme name exposed to the markup")
	cmd.Flags().StringVar(&f.variant, "variant", "", "Theme variant")
	cmd.Flags().StringToStringVar(&f.tokens, "token", nil, "Theme token, emitted as a --regform-<name> CSS variable (repeatable)")
}

func rootCmd() *cobra.Command {
	globals := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "regform",
		Short:         "Registration form host",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&globals.layout, "layout", "", "Layout file (JSON or YAML); defaults to REGFORM_LAYOUT or the bundled layout")
	cmd.PersistentFlags().StringVar(&globals.logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to REGFORM_LOG_LEVEL")

	cmd.AddCommand(tuiCmd(globals), htmlCmd(globals), serveCmd(globals))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "regform version %s\n", version)
		},
	})
	return cmd
}

type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	layout regform.Layout
}

func setup(globals *globalFlags) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if globals.logLevel != "" {
		cfg.Logger.Level = globals.logLevel
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	path := globals.layout
	if path == "" {
		path = cfg.App.Layout
	}
	l, err := regform.LoadLayout(path)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	return &runtime{cfg: cfg, logger: logger, layout: l}, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func tuiCmd(globals *globalFlags) *cobra.Command {
	var (
		format      string
		output      string
		maxAttempts int
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Fill in the form interactively and print the accepted snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(globals)
			if err != nil {
				return err
			}
			defer func() { _ = rt.logger.Sync() }()

			outputFormat, ok := tui.ParseOutputFormat(format)
			if !ok {
				return fmt.Errorf("unknown output format %q (json, form, pretty)", format)
			}

			renderer, err := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
				tui.WithOutputFormat(outputFormat),
				tui.WithMaxAttempts(maxAttempts),
				tui.WithAcceptFunc(logAccepted(rt.logger)),
			)
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			payload, err := renderer.Render(ctx, rt.layout, regform.RenderOptions{})
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "registration cancelled")
				return nil
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, payload)
		},
	}
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "Output format (json, form, pretty)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout when empty)")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "Give up after this many rejected submissions (0 means unlimited)")
	return cmd
}

func htmlCmd(globals *globalFlags) *cobra.Command {
	var (
		action string
		output string
		values string
		themes themeFlags
	)

	cmd := &cobra.Command{
		Use:   "html",
		Short: "Render the form as static HTML",
		Long: `Render the form as static HTML.

With --values the snapshot is read from a JSON file, validated, and rendered
with its values and error messages filled in.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(globals)
			if err != nil {
				return err
			}
			defer func() { _ = rt.logger.Sync() }()

			themeCfg, err := themes.resolve()
			if err != nil {
				return err
			}
			opts := regform.RenderOptions{Action: action, Theme: themeCfg}
			if values != "" {
				snapshot, err := readSnapshot(values)
				if err != nil {
					return err
				}
				result := regform.Validate(snapshot)
				opts.Values = snapshot
				opts.Errors = result.Errors
				rt.logger.Debug("prefilled snapshot",
					zap.Bool("valid", result.Valid()),
					zap.Int("violations", len(result.Violations)),
				)
			}

			page, err := regform.GenerateHTML(cmd.Context(), rt.layout, opts)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, page)
		},
	}
	cmd.Flags().StringVar(&action, "action", contract.SubmitPath, "Form action URL")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout when empty)")
	cmd.Flags().StringVar(&values, "values", "", "JSON snapshot used to prefill and validate the form")
	themes.bind(cmd)
	return cmd
}

func serveCmd(globals *globalFlags) *cobra.Command {
	var (
		addr   string
		themes themeFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form and the submit endpoint over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(globals)
			if err != nil {
				return err
			}
			defer func() { _ = rt.logger.Sync() }()

			if addr != "" {
				rt.cfg.HTTP.Addr = addr
			}
			themeCfg, err := themes.resolve()
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			c, err := contract.Load(ctx)
			if err != nil {
				return err
			}
			html, err := vanilla.New()
			if err != nil {
				return err
			}
			srv, err := server.New(rt.cfg.HTTP, c, html,
				server.WithLogger(rt.logger),
				server.WithLayout(rt.layout),
				server.WithTheme(themeCfg),
				server.WithAcceptFunc(logAccepted(rt.logger)),
			)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address; defaults to REGFORM_ADDR")
	themes.bind(cmd)
	return cmd
}

// logAccepted records accepted registrations without their secrets.
func logAccepted(logger *zap.Logger) regform.AcceptFunc {
	return func(_ context.Context, snapshot model.Snapshot) error {
		logger.Info("registration accepted",
			zap.String("email", snapshot.Email),
			zap.Strings("interests", interestNames(snapshot.Interests)),
		)
		return nil
	}
}

func interestNames(tags []model.Interest) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = string(tag)
	}
	return out
}

func readSnapshot(path string) (model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("read values: %w", err)
	}
	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return model.Snapshot{}, fmt.Errorf("decode values: %w", err)
	}
	return snapshot.Clone(), nil
}

func writeOutput(stdout io.Writer, path string, payload []byte) error {
	if strings.TrimSpace(path) == "" {
		_, err := stdout.Write(payload)
		if err == nil && len(payload) > 0 && payload[len(payload)-1] != '\n' {
			_, err = io.WriteString(stdout, "\n")
		}
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
