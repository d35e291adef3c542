package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/convocoach/coach-service/internal/auth"
	"github.com/convocoach/coach-service/internal/challenge"
	"github.com/convocoach/coach-service/internal/content"
	"github.com/convocoach/coach-service/internal/quiz"
	"github.com/convocoach/coach-service/internal/user"
)

const (
	serviceTimeout   = 8 * time.Second
	maxPostBodyBytes = 64 * 1024
)

// Deps bundles the services the HTTP layer exposes.
type Deps struct {
	Users      user.Service
	Challenges challenge.Service
	Content    content.Service
	Quiz       *quiz.Service
	Logger     *slog.Logger

	// RotateOnRead triggers an opportunistic best-effort rotation check
	// before serving the active challenge.
	RotateOnRead bool

	// Verifier guards the routes; reads accept anonymous callers.
	Verifier auth.Verifier
}

// RegisterRoutes registers all coach routes
func RegisterRoutes(r chi.Router, deps Deps) {
	optional := auth.OptionalMiddleware(deps.Verifier)
	required := auth.Middleware(deps.Verifier)

	r.Route("/v1/users", func(r chi.Router) {
		r.Use(middleware.Recoverer)

		r.With(required).Post("/signup", signup(deps))
		r.With(optional).Get("/me", profile(deps))
	})

	r.Route("/v1/points", func(r chi.Router) {
		r.Use(middleware.Recoverer)
		r.With(optional).Get("/", getPoints(deps))
	})

	r.Route("/v1/badges", func(r chi.Router) {
		r.Use(middleware.Recoverer)
		r.Get("/", listBadges(deps))
	})

	r.Route("/v1/challenges", func(r chi.Router) {
		r.Use(middleware.Recoverer)

		r.With(optional).Get("/today", activeChallenge(deps))
		r.With(required).Post("/{id}/complete", completeChallenge(deps))
	})

	r.Route("/v1/content", func(r chi.Router) {
		r.Use(middleware.Recoverer)

		r.With(optional).Get("/", listCategories(deps))
		r.With(optional).Get("/{category}", categoryContent(deps))
	})

	r.Route("/v1/quiz", func(r chi.Router) {
		r.Use(middleware.Recoverer)
		r.With(optional).Post("/answer", answerQuiz(deps))
	})
}

func signup(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.UserFromContext(r.Context())
		if claims.UserID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxPostBodyBytes)
		var body struct {
			Email string `json:"email"`
		}
		// An empty body is fine; the email then comes from the token claims.
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		email := strings.TrimSpace(body.Email)
		if email == "" {
			email = claims.Email
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		if err := deps.Users.Signup(ctx, claims.UserID, email); err != nil {
			logRequestError(r.Context(), deps.Logger, "failed to create account", err, claims.UserID)
			writeError(w, http.StatusInternalServerError, "failed to create account")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"uid": claims.UserID})
	}
}

func profile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		writeJSON(w, http.StatusOK, deps.Users.Profile(ctx, auth.UserID(r.Context())))
	}
}

func getPoints(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		points := deps.Users.GetPoints(ctx, auth.UserID(r.Context()))
		writeJSON(w, http.StatusOK, map[string]int{"points": points})
	}
}

func listBadges(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"badges": user.AllBadges()})
	}
}

func activeChallenge(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.UserID(r.Context())

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		if deps.RotateOnRead {
			// Opportunistic foreground check; a failure here must not
			// block serving whatever challenge is current.
			if _, err := deps.Challenges.AdvanceIfStale(ctx, time.Now()); err != nil {
				logRequestError(r.Context(), deps.Logger, "rotation check failed", err, uid)
			}
		}

		active, err := deps.Challenges.Active(ctx, uid)
		switch {
		case errors.Is(err, challenge.ErrNotFound), errors.Is(err, challenge.ErrNoChallenges):
			writeMessage(w, http.StatusNotFound, "No challenge available today.")
			return
		case err != nil:
			logRequestError(r.Context(), deps.Logger, "failed to load daily challenge", err, uid)
			writeMessage(w, http.StatusInternalServerError, "Couldn't load today's challenge. Try again later.")
			return
		}
		writeJSON(w, http.StatusOK, active)
	}
}

func completeChallenge(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.UserID(r.Context())
		if uid == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}
		challengeID := strings.TrimSpace(chi.URLParam(r, "id"))
		if challengeID == "" {
			writeError(w, http.StatusBadRequest, "missing challenge id")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		resp, err := deps.Challenges.Complete(ctx, uid, challengeID)
		switch {
		case errors.Is(err, user.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "Account not found. Sign up before completing challenges.")
			return
		case err != nil:
			logRequestError(r.Context(), deps.Logger, "failed to complete challenge", err, uid)
			writeMessage(w, http.StatusInternalServerError, "Couldn't complete the challenge. Try again later.")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func listCategories(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		categories, err := deps.Content.Categories(ctx)
		if err != nil {
			logRequestError(r.Context(), deps.Logger, "failed to list categories", err, "")
			writeError(w, http.StatusInternalServerError, "failed to list categories")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
	}
}

func categoryContent(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := url.PathUnescape(chi.URLParam(r, "category"))
		if err != nil || strings.TrimSpace(category) == "" {
			writeError(w, http.StatusBadRequest, "invalid category")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		pages, err := deps.Content.Pages(ctx, category)
		switch {
		case errors.Is(err, content.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "No content yet for this category.")
			return
		case err != nil:
			logRequestError(r.Context(), deps.Logger, "failed to load content", err, "")
			writeError(w, http.StatusInternalServerError, "failed to load content")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"content": pages})
	}
}

func answerQuiz(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.UserID(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, maxPostBodyBytes)
		var body struct {
			Category string `json:"category"`
			Page     int    `json:"page"`
			Selected string `json:"selected"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(body.Category) == "" {
			writeError(w, http.StatusBadRequest, "missing category")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		resp, err := deps.Quiz.Answer(ctx, uid, body.Category, body.Page, body.Selected)
		switch {
		case errors.Is(err, quiz.ErrAlreadyAnswered):
			writeMessage(w, http.StatusConflict, "You already answered this question.")
			return
		case errors.Is(err, content.ErrNotFound), errors.Is(err, content.ErrPageOutOfRange), errors.Is(err, quiz.ErrNoQuestion):
			writeError(w, http.StatusNotFound, "question not found")
			return
		case err != nil:
			logRequestError(r.Context(), deps.Logger, "failed to evaluate answer", err, uid)
			writeMessage(w, http.StatusInternalServerError, "Couldn't check your answer. Try again later.")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeMessage carries a human-readable message suitable for direct display.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func logRequestError(ctx context.Context, logger *slog.Logger, message string, err error, userID string) {
	if logger == nil || err == nil {
		return
	}
	attrs := []any{
		slog.String("userId", userID),
		slog.Any("error", err),
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		attrs = append(attrs, slog.String("requestId", reqID))
	}
	logger.Error(message, attrs...)
}
