// Package main is the entry point for the vtask voice assistant core.
//
// The binary exposes the tool surface on a line-based debug REPL: each line
// is `tool_name {json-args}` and the reply is the sentence the assistant
// would speak. In production the voice runtime drives the same session
// object directly.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"vtask/internal/backend/taskapi"
	"vtask/internal/config"
	"vtask/internal/exitcode"
	"vtask/internal/health"
	"vtask/internal/reminders"
	"vtask/internal/session"
	"vtask/internal/tools"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		apiURL     = flag.String("api", "", "task API base URL (overrides TASK_API_URL)")
		healthAddr = flag.String("health", "", "health endpoint bind address (overrides HEALTH_ADDR)")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("config")
		return exitcode.ConfigError
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}
	if *healthAddr != "" {
		cfg.HealthAddr = *healthAddr
	}
	if *debug {
		cfg.Debug = true
	}
	if !cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	svc := taskapi.New(cfg)
	registry := tools.NewRegistry(svc, time.Now)
	ses := session.New(cfg, registry)
	log.Info().Str("session", ses.ID()).Str("api", cfg.APIBaseURL).Msg("session started")

	speak := func(text string) {
		fmt.Println(text)
	}

	if cfg.ReminderSpec != "" {
		announcer, err := reminders.New(cfg, svc, speak)
		if err != nil {
			log.Error().Err(err).Msg("reminders")
			return exitcode.BackendError
		}
		announcer.Start()
		defer announcer.Stop()
	}

	if cfg.HealthAddr != "" {
		srv := &http.Server{Addr: cfg.HealthAddr, Handler: health.NewServer(svc)}
		go func() {
			log.Info().Str("addr", cfg.HealthAddr).Msg("health endpoint starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("health endpoint")
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if greeting := ses.Greeting(); greeting != "" {
		speak(greeting)
	}

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			return exitcode.Success
		case line, ok := <-lines:
			if !ok {
				return exitcode.Success
			}
			name, args, err := session.ParseCall(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			speak(ses.HandleToolCall(ctx, name, args))
		}
	}
}
