package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	audioimpl "github.com/foxseedlab/lecturenote/external/audio"
	configloader "github.com/foxseedlab/lecturenote/external/config"
	"github.com/foxseedlab/lecturenote/external/discord"
	"github.com/foxseedlab/lecturenote/external/docs"
	"github.com/foxseedlab/lecturenote/external/google"
	"github.com/foxseedlab/lecturenote/external/prompt"
	repositoryimpl "github.com/foxseedlab/lecturenote/external/repository"
	summarizerimpl "github.com/foxseedlab/lecturenote/external/summarizer"
	transcriberimpl "github.com/foxseedlab/lecturenote/external/transcriber"
	webhookimpl "github.com/foxseedlab/lecturenote/external/webhook"
	"github.com/foxseedlab/lecturenote/internal/config"
	"github.com/foxseedlab/lecturenote/internal/selector"
	"github.com/foxseedlab/lecturenote/internal/session"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

var targetName string

var rootCmd = &cobra.Command{
	Use:   "lecturenote TITLE",
	Short: "Transcribe a lecture into Google Docs and summarize it on Ctrl-C",
	Long: `lecturenote captures the microphone, streams it to Google Cloud Speech and appends
every finalized sentence to the target's transcript document. Press Ctrl-C to stop:
the transcript is summarized and the summary is appended to the summary document.`,
	Args: cobra.ExactArgs(1),
	RunE: runLecture,
}

func init() {
	rootCmd.Flags().StringVarP(&targetName, "target", "t", "", "configured target to use instead of prompting")
}

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the root command and maps any error to exit status 1.
func execute(args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func runLecture(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(args[0])
	if title == "" {
		return fmt.Errorf("%w: TITLE must not be blank", config.ErrConfiguration)
	}
	cmd.SilenceUsage = true

	cfg, err := configloader.Load(".env")
	if err != nil {
		slog.Error("config validation failed", "error", err)
		return err
	}
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env, "targets", len(cfg.TranscriptDocs))

	injector := setupDI(cfg)
	defer func() {
		slog.Debug("shutting down dependencies")
		_ = injector.Shutdown()
	}()

	target, err := selector.Resolve(cfg, targetName, do.MustInvoke[selector.Prompter](injector))
	if err != nil {
		slog.Error("failed to select target", "error", err)
		return err
	}
	slog.Info("startup: target selected", "target", target.Name)

	controller, err := do.Invoke[*session.Controller](injector)
	if err != nil {
		slog.Error("failed to resolve session controller", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		// A second interrupt terminates the process with the default disposition.
		stop()
	}()

	if err := controller.Run(ctx, title, target); err != nil {
		slog.Error("session failed", "error", err, "state", controller.State().String())
		return err
	}
	return nil
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	google.RegisterDI(injector)
	repositoryimpl.RegisterDI(injector)
	audioimpl.RegisterDI(injector)
	discord.RegisterDI(injector)
	docs.RegisterDI(injector)
	transcriberimpl.RegisterDI(injector)
	summarizerimpl.RegisterDI(injector)
	webhookimpl.RegisterDI(injector)
	prompt.RegisterDI(injector)
	session.RegisterDI(injector)

	return injector
}
