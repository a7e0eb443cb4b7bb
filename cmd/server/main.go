package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/taskflow-server/access"
	"github.com/jrsteele09/taskflow-server/attachments"
	"github.com/jrsteele09/taskflow-server/auth"
	"github.com/jrsteele09/taskflow-server/internal/config"
	"github.com/jrsteele09/taskflow-server/internal/postgres"
	"github.com/jrsteele09/taskflow-server/memberships"
	"github.com/jrsteele09/taskflow-server/projects"
	"github.com/jrsteele09/taskflow-server/server"
	"github.com/jrsteele09/taskflow-server/storage"
	"github.com/jrsteele09/taskflow-server/tasks"
	"github.com/jrsteele09/taskflow-server/users"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.New()
	if err != nil {
		return errors.Wrap(err, "config.New")
	}
	setupLogging(c)
	displayAppname(c.GetAppName())

	ctx := context.Background()
	pool, err := postgres.Connect(ctx, c)
	if err != nil {
		return errors.Wrap(err, "postgres.Connect")
	}
	defer pool.Close()

	if err := postgres.Migrate(pool); err != nil {
		return errors.Wrap(err, "postgres.Migrate")
	}

	srv, err := buildServer(ctx, c, pool)
	if err != nil {
		return errors.Wrap(err, "buildServer")
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildServer(ctx context.Context, c config.Config, pool *pgxpool.Pool) (*server.Server, error) {
	userRepo := users.NewPostgresRepo(pool)
	sessionTokenRepo := auth.NewPostgresSessionTokenRepo(pool)
	membershipRepo := memberships.NewPostgresRepo(pool)
	projectRepo := projects.NewPostgresRepo(pool)
	taskRepo := tasks.NewPostgresRepo(pool)
	attachmentRepo := attachments.NewPostgresRepo(pool)

	authService, err := auth.NewService(auth.Repos{Users: userRepo, SessionTokens: sessionTokenRepo}, c)
	if err != nil {
		return nil, errors.Wrap(err, "auth.NewService")
	}

	projectService, err := projects.NewService(projectRepo)
	if err != nil {
		return nil, errors.Wrap(err, "projects.NewService")
	}

	membershipService, err := memberships.NewService(memberships.Repos{Memberships: membershipRepo, Users: userRepo})
	if err != nil {
		return nil, errors.Wrap(err, "memberships.NewService")
	}

	taskService, err := tasks.NewService(tasks.Repos{Tasks: taskRepo, Memberships: membershipRepo, Users: userRepo})
	if err != nil {
		return nil, errors.Wrap(err, "tasks.NewService")
	}

	objectStore, err := storage.NewS3Store(ctx, c)
	if err != nil {
		return nil, errors.Wrap(err, "storage.NewS3Store")
	}

	attachmentSvc, err := attachments.NewService(attachments.Repos{
		Attachments: attachmentRepo,
		Tasks:       taskRepo,
		Users:       userRepo,
	}, objectStore)
	if err != nil {
		return nil, errors.Wrap(err, "attachments.NewService")
	}

	authorizer, err := access.NewAuthorizer(membershipRepo)
	if err != nil {
		return nil, errors.Wrap(err, "access.NewAuthorizer")
	}

	return server.New(c, server.Services{
		Auth:        authService,
		Projects:    projectService,
		Memberships: membershipService,
		Tasks:       taskService,
		Attachments: attachmentSvc,
	}, authorizer)
}

func setupLogging(c config.Config) {
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func listenAndServe(httpServer *http.Server) {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Wrap(httpServer.Shutdown(ctx), "server.Shutdown")
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
