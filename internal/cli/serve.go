package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/convocoach/coach-service/internal/auth"
	"github.com/convocoach/coach-service/internal/challenge"
	"github.com/convocoach/coach-service/internal/config"
	"github.com/convocoach/coach-service/internal/content"
	"github.com/convocoach/coach-service/internal/httpapi"
	"github.com/convocoach/coach-service/internal/logging"
	"github.com/convocoach/coach-service/internal/quiz"
	"github.com/convocoach/coach-service/internal/server"
	"github.com/convocoach/coach-service/internal/user"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if port != "" {
		cfg.Port = port
	}

	logger := logging.NewLogger("coach-service")

	st, err := newStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	userService := user.NewService(st.users, logger)
	challengeService := challenge.NewService(st.challenges, st.users, logger)
	contentService := content.NewService(st.content)
	quizService := quiz.NewService(contentService, userService, logger)

	verifier, err := auth.NewVerifier(auth.Config{
		Mode:     auth.Mode(cfg.Auth.Mode),
		JWKSURL:  cfg.Auth.JWKSURL,
		Audience: cfg.Auth.Audience,
		Issuer:   cfg.Auth.Issuer,
	})
	if err != nil {
		return fmt.Errorf("auth verifier error: %w", err)
	}

	router := server.NewRouter("coach-service", func(r chi.Router) {
		httpapi.RegisterRoutes(r, httpapi.Deps{
			Users:        userService,
			Challenges:   challengeService,
			Content:      contentService,
			Quiz:         quizService,
			Logger:       logger,
			RotateOnRead: cfg.RotateOnRead,
			Verifier:     verifier,
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if err := server.Run(ctx, srv, logger); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
