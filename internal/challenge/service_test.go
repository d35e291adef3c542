package challenge

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/convocoach/coach-service/internal/user"
)

type fakeRotationRepo struct {
	getRotationFn    func(context.Context) (*Rotation, error)
	advanceIfStaleFn func(context.Context, string) (bool, error)
	saveRotationFn   func(context.Context, *Rotation) error
}

func (f *fakeRotationRepo) GetRotation(ctx context.Context) (*Rotation, error) {
	if f.getRotationFn != nil {
		return f.getRotationFn(ctx)
	}
	return nil, errors.New("getRotationFn not provided")
}

func (f *fakeRotationRepo) AdvanceIfStale(ctx context.Context, today string) (bool, error) {
	if f.advanceIfStaleFn != nil {
		return f.advanceIfStaleFn(ctx, today)
	}
	return false, errors.New("advanceIfStaleFn not provided")
}

func (f *fakeRotationRepo) SaveRotation(ctx context.Context, rotation *Rotation) error {
	if f.saveRotationFn != nil {
		return f.saveRotationFn(ctx, rotation)
	}
	return errors.New("saveRotationFn not provided")
}

type fakeUserRepo struct {
	getFn               func(context.Context, string) (*user.User, error)
	completeChallengeFn func(context.Context, string, string, int) (int, error)
}

func (f *fakeUserRepo) Get(ctx context.Context, uid string) (*user.User, error) {
	if f.getFn != nil {
		return f.getFn(ctx, uid)
	}
	return nil, user.ErrNotFound
}

func (f *fakeUserRepo) Create(context.Context, string, string) error {
	return errors.New("not implemented")
}

func (f *fakeUserRepo) AddPoints(context.Context, string, int) (int, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeUserRepo) CompleteChallenge(ctx context.Context, uid, challengeID string, reward int) (int, error) {
	if f.completeChallengeFn != nil {
		return f.completeChallengeFn(ctx, uid, challengeID, reward)
	}
	return 0, errors.New("completeChallengeFn not provided")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func threeChallengeRotation(index int, lastUpdated string) *Rotation {
	return &Rotation{
		Challenges: []Challenge{
			{ID: "a", Title: "A"},
			{ID: "b", Title: "B"},
			{ID: "c", Title: "C"},
		},
		CurrentIndex: index,
		LastUpdated:  lastUpdated,
	}
}

func TestActive_ReportsCompletionForSignedInUser(t *testing.T) {
	rotations := &fakeRotationRepo{
		getRotationFn: func(ctx context.Context) (*Rotation, error) {
			return threeChallengeRotation(1, "2026-09-01"), nil
		},
	}
	users := &fakeUserRepo{
		getFn: func(ctx context.Context, uid string) (*user.User, error) {
			return &user.User{UID: uid, DailyChallenges: map[string]bool{"b": true}}, nil
		},
	}

	svc := NewService(rotations, users, quietLogger())
	active, err := svc.Active(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("Active returned error: %v", err)
	}
	if active.ID != "b" {
		t.Fatalf("expected challenge at index 1, got %q", active.ID)
	}
	if !active.Completed {
		t.Fatalf("expected completed flag from the user document")
	}
}

func TestActive_AnonymousIsNeverCompleted(t *testing.T) {
	rotations := &fakeRotationRepo{
		getRotationFn: func(ctx context.Context) (*Rotation, error) {
			return threeChallengeRotation(0, "2026-09-01"), nil
		},
	}

	svc := NewService(rotations, &fakeUserRepo{}, quietLogger())
	active, err := svc.Active(context.Background(), "")
	if err != nil {
		t.Fatalf("Active returned error: %v", err)
	}
	if active.Completed {
		t.Fatalf("anonymous callers must see completed=false")
	}
}

func TestActive_MissingUserDocumentReadsAsNotCompleted(t *testing.T) {
	rotations := &fakeRotationRepo{
		getRotationFn: func(ctx context.Context) (*Rotation, error) {
			return threeChallengeRotation(0, "2026-09-01"), nil
		},
	}
	users := &fakeUserRepo{
		getFn: func(ctx context.Context, uid string) (*user.User, error) {
			return nil, user.ErrNotFound
		},
	}

	svc := NewService(rotations, users, quietLogger())
	active, err := svc.Active(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("Active returned error: %v", err)
	}
	if active.Completed {
		t.Fatalf("missing user document must read as not completed")
	}
}

func TestActive_UserFetchFailureDegradesToNotCompleted(t *testing.T) {
	rotations := &fakeRotationRepo{
		getRotationFn: func(ctx context.Context) (*Rotation, error) {
			return threeChallengeRotation(2, "2026-09-01"), nil
		},
	}
	users := &fakeUserRepo{
		getFn: func(ctx context.Context, uid string) (*user.User, error) {
			return nil, errors.New("store unavailable")
		},
	}

	svc := NewService(rotations, users, quietLogger())
	active, err := svc.Active(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("Active returned error: %v", err)
	}
	if active.Completed {
		t.Fatalf("store failure on the user read must degrade to completed=false")
	}
}

func TestActive_EmptySequenceIsConfigurationError(t *testing.T) {
	rotations := &fakeRotationRepo{
		getRotationFn: func(ctx context.Context) (*Rotation, error) {
			return &Rotation{Challenges: nil, CurrentIndex: 0}, nil
		},
	}

	svc := NewService(rotations, &fakeUserRepo{}, quietLogger())
	if _, err := svc.Active(context.Background(), ""); !errors.Is(err, ErrNoChallenges) {
		t.Fatalf("expected ErrNoChallenges, got %v", err)
	}
}

func TestAdvanceIfStale_PassesCalendarDate(t *testing.T) {
	var gotToday string
	rotations := &fakeRotationRepo{
		advanceIfStaleFn: func(ctx context.Context, today string) (bool, error) {
			gotToday = today
			return true, nil
		},
	}

	svc := NewService(rotations, &fakeUserRepo{}, quietLogger())
	now := time.Date(2026, time.September, 1, 23, 59, 0, 0, time.UTC)
	rotated, err := svc.AdvanceIfStale(context.Background(), now)
	if err != nil {
		t.Fatalf("AdvanceIfStale returned error: %v", err)
	}
	if !rotated {
		t.Fatalf("expected rotation to be reported")
	}
	if gotToday != "2026-09-01" {
		t.Fatalf("expected day-granularity date, got %q", gotToday)
	}
}

func TestComplete_RequiresSignedInUser(t *testing.T) {
	svc := NewService(&fakeRotationRepo{}, &fakeUserRepo{}, quietLogger())
	if _, err := svc.Complete(context.Background(), "", "starter"); !errors.Is(err, user.ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID, got %v", err)
	}
}

func TestComplete_MissingUserIsNotFound(t *testing.T) {
	users := &fakeUserRepo{
		completeChallengeFn: func(ctx context.Context, uid, challengeID string, reward int) (int, error) {
			return 0, user.ErrNotFound
		},
	}

	svc := NewService(&fakeRotationRepo{}, users, quietLogger())
	if _, err := svc.Complete(context.Background(), "ghost", "starter"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestComplete_AwardsFixedReward(t *testing.T) {
	var gotReward int
	users := &fakeUserRepo{
		completeChallengeFn: func(ctx context.Context, uid, challengeID string, reward int) (int, error) {
			gotReward = reward
			return 10, nil
		},
	}

	svc := NewService(&fakeRotationRepo{}, users, quietLogger())
	resp, err := svc.Complete(context.Background(), "user-123", "starter")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if gotReward != RewardPoints {
		t.Fatalf("expected fixed reward %d, got %d", RewardPoints, gotReward)
	}
	if resp.PointsAwarded != RewardPoints || resp.PointsTotal != 10 || !resp.Completed {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
