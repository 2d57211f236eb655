package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"

	"modalstack/internal/config"
	"modalstack/internal/logging"
	"modalstack/internal/telemetry"
	"modalstack/internal/ui"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	err := newRootCommand().ExecuteContext(ctx)
	handleError(err)
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:           "modaldemo",
		Short:         "Nested dialogs with focus trapping, toasts and tabs in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := config.NewViper(configFile)
			if err := config.ReadFile(v, configFile != ""); err != nil {
				return err
			}
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("bind flags: %w", err)
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", os.Getenv(config.EnvPrefix+"_CONFIG"), "Path to a config.yaml")
	config.AddFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	log, flush, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer flush()

	shutdown, err := telemetry.Setup(ctx, "modaldemo")
	if err != nil {
		return fmt.Errorf("set up tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			log.Error(err, "trace shutdown")
		}
	}()

	app, err := ui.NewAppModel(ui.AppOptions{
		Logger:           log,
		TracerProvider:   otel.GetTracerProvider(),
		ToastTimeout:     cfg.ToastTimeout,
		ToastDismissable: cfg.ToastDismissable,
		TabPolicy:        cfg.Policy(),
	})
	if err != nil {
		return err
	}
	defer app.Close()

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(app.AsTeaModel(), opts...)
	app.SetNotify(p.Send)

	log.Info("starting", "tabPolicy", cfg.TabPolicy, "toastTimeout", cfg.ToastTimeout)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func handleError(err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
}
