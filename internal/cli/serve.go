package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	api "github.com/formhive/formhive/internal/api/http"
	"github.com/formhive/formhive/internal/audit"
	"github.com/formhive/formhive/internal/auth"
	"github.com/formhive/formhive/internal/config"
	"github.com/formhive/formhive/internal/db"
	"github.com/formhive/formhive/internal/grading"
	"github.com/formhive/formhive/internal/quiz"
)

func newServeCmd(addrFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *addrFlag)
		},
	}
}

func runServer(ctx context.Context, addrFlag string) error {
	cfg := config.FromEnv()
	if addrFlag != "" {
		cfg.HTTPAddr = addrFlag
	}

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	dbh, err := db.Open(openCtx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return err
	}
	defer dbh.Close()

	if err := auth.EnsureAdmin(openCtx, dbh, cfg.AdminUser, cfg.AdminPassHash); err != nil {
		return err
	}

	handler := api.NewRouter(api.Deps{
		DB:             dbh,
		Store:          quiz.NewSQLStore(dbh),
		Auth:           auth.NewAuthService(cfg.AuthSecret, time.Duration(cfg.TokenTTLHours)*time.Hour),
		Events:         audit.NewEventRepo(dbh),
		Evaluator:      grading.NewEvaluator(),
		CORSOrigins:    cfg.CORSOrigins,
		AllowClaimRole: cfg.AllowClaimRole,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	return server.Shutdown(shutdownCtx)
}
