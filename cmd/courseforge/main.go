package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avraj/courseforge/internal/handler"
	"github.com/avraj/courseforge/internal/llm"
	"github.com/avraj/courseforge/internal/model"
	"github.com/avraj/courseforge/internal/pipeline"
	"github.com/avraj/courseforge/internal/scheduler"
	"github.com/avraj/courseforge/internal/store"
	"github.com/avraj/courseforge/internal/youtube"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "courseforge",
		Short: "AI course generator backed by an LLM and YouTube search",
	}

	serve := serveCmd()
	root.AddCommand(serve)

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `courseforge --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the course generation server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.String("db", "courseforge.db", "SQLite database path")
	f.String("llm-url", "http://localhost:11434/v1", "OpenAI-compatible API base URL")
	f.String("llm-key", "ollama", "API key for LLM")
	f.String("llm-model", "llama3.2", "LLM model name")
	f.StringSlice("youtube-keys", nil, "YouTube Data API keys (repeatable)")
	f.Int("retry-attempts", llm.DefaultAttempts, "Generation attempts per call")
	f.Duration("retry-backoff", llm.DefaultBackoffBase, "Exponential backoff base for generation retries")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("COURSEFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("courseforge")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/courseforge")
	v.AddConfigPath("/etc/courseforge")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	// Open database.
	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	// Create LLM client with the retry policy around it.
	llmClient := llm.New(
		v.GetString("llm-url"),
		v.GetString("llm-key"),
		v.GetString("llm-model"),
	)
	if err := llmClient.Ping(context.Background()); err != nil {
		return fmt.Errorf("LLM health check: %w", err)
	}
	slog.Info("LLM endpoint OK", "url", v.GetString("llm-url"), "model", v.GetString("llm-model"))
	gen := llm.NewRetryClient(llmClient, v.GetInt("retry-attempts"), v.GetDuration("retry-backoff"))

	// Video search with rotating API keys.
	pool := youtube.NewKeyPool(v.GetStringSlice("youtube-keys"))
	finder := youtube.NewFinder(pool)

	pipe := pipeline.New(gen, finder)

	sched := scheduler.New(func(ctx context.Context, req model.GenerateRequest) (string, string, error) {
		course, stats, err := pipe.Run(ctx, req)
		if err != nil {
			return "", "", err
		}
		courseID, err := db.InsertCourse(*course)
		if err != nil {
			return "", "", fmt.Errorf("persist course: %w", err)
		}
		return courseID, stats.Message(), nil
	})

	h := handler.New(db, sched)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	h.Routes(r)

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"model", v.GetString("llm-model"),
		"llm_url", v.GetString("llm-url"),
		"youtube_keys", pool.Size(),
		"retry_attempts", v.GetInt("retry-attempts"),
		"retry_backoff", v.GetDuration("retry-backoff").String(),
	)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	return srv.ListenAndServe()
}
