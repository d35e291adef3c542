package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/convocoach/coach-service/internal/auth"
	"github.com/convocoach/coach-service/internal/challenge"
	"github.com/convocoach/coach-service/internal/content"
	"github.com/convocoach/coach-service/internal/quiz"
	"github.com/convocoach/coach-service/internal/server"
	"github.com/convocoach/coach-service/internal/user"
)

func newTestServer(t *testing.T) (*httptest.Server, challenge.Repository, content.Repository) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := user.NewMemoryRepository()
	rotations := challenge.NewMemoryRepository()
	pages := content.NewMemoryRepository()

	userService := user.NewService(users, logger)
	challengeService := challenge.NewService(rotations, users, logger)
	contentService := content.NewService(pages)
	quizService := quiz.NewService(contentService, userService, logger)

	verifier, err := auth.NewVerifier(auth.Config{Mode: auth.ModeNoop})
	if err != nil {
		t.Fatalf("auth verifier error: %v", err)
	}

	router := server.NewRouter("coach-service", func(r chi.Router) {
		RegisterRoutes(r, Deps{
			Users:        userService,
			Challenges:   challengeService,
			Content:      contentService,
			Quiz:         quizService,
			Logger:       logger,
			RotateOnRead: false,
			Verifier:     verifier,
		})
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, rotations, pages
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil && err != io.EOF {
		t.Fatalf("decode response: %v", err)
	}
	return resp, decoded
}

func TestActiveChallenge_UnseededReturnsFriendlyMessage(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/challenges/today", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if body["message"] != "No challenge available today." {
		t.Fatalf("expected display message, got %v", body)
	}
}

func TestChallengeCompletionFlow(t *testing.T) {
	srv, rotations, _ := newTestServer(t)

	today := time.Now().Format(challenge.DateLayout)
	err := rotations.SaveRotation(context.Background(), &challenge.Rotation{
		Challenges:   []challenge.Challenge{{ID: "starter", Title: "Start a conversation"}},
		CurrentIndex: 0,
		LastUpdated:  today,
	})
	if err != nil {
		t.Fatalf("SaveRotation returned error: %v", err)
	}

	// Completing before signup pins the asymmetric behavior: the ledger
	// creates missing accounts, completion does not.
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/challenges/starter/complete", "user-1", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 before signup, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v1/users/signup", "user-1", map[string]string{"email": "u1@example.com"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 on signup, got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/challenges/starter/complete", "user-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on completion, got %d", resp.StatusCode)
	}
	if body["pointsTotal"].(float64) != 10 {
		t.Fatalf("expected 10 points after completion, got %v", body)
	}

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/v1/challenges/today", "user-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["completed"] != true {
		t.Fatalf("expected completed flag after completion, got %v", body)
	}

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/v1/points", "user-1", nil)
	if resp.StatusCode != http.StatusOK || body["points"].(float64) != 10 {
		t.Fatalf("expected 10 points, got %d %v", resp.StatusCode, body)
	}
}

func TestPoints_AnonymousReadsZero(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/points", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for anonymous read, got %d", resp.StatusCode)
	}
	if body["points"].(float64) != 0 {
		t.Fatalf("expected 0 points, got %v", body)
	}
}

func TestQuizAnswerFlow(t *testing.T) {
	srv, _, pages := newTestServer(t)

	err := pages.SaveCategory(context.Background(), "Small Talk", []content.Page{
		{
			Heading: "Openers",
			Content: "Comment on shared context.",
			Quiz: &quiz.Question{
				Question:      "What makes a good opening line?",
				Options:       []string{"Personal", "Shared context"},
				CorrectAnswer: "Shared context",
			},
		},
	})
	if err != nil {
		t.Fatalf("SaveCategory returned error: %v", err)
	}

	answer := map[string]any{"category": "Small Talk", "page": 0, "selected": "Shared context"}

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/quiz/answer", "user-1", answer)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["correct"] != true || body["pointsAwarded"].(float64) != 10 {
		t.Fatalf("expected correct answer to award 10, got %v", body)
	}

	// Second submission on the same view is locked.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/v1/quiz/answer", "user-1", answer)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on locked view, got %d %v", resp.StatusCode, body)
	}
}

func TestCategoryContent_UnknownCategory(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/content/Negotiation", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if body["message"] != "No content yet for this category." {
		t.Fatalf("expected display message, got %v", body)
	}
}

func TestListBadges_PublicCatalog(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/badges", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	badges, ok := body["badges"].([]any)
	if !ok || len(badges) != 5 {
		t.Fatalf("expected the five-badge catalog, got %v", body)
	}
}
