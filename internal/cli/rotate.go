package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/convocoach/coach-service/internal/challenge"
	"github.com/convocoach/coach-service/internal/config"
	"github.com/convocoach/coach-service/internal/logging"
)

// newRotateCmd is the entry point for the host scheduler's periodic trigger
// (roughly every 24 hours, best-effort). The check is idempotent: any number
// of invocations within a day rotate the challenge at most once.
func newRotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate",
		Short: "Advance the daily challenge when stale",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRotate(cmd.Context())
		},
	}
}

func runRotate(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger := logging.NewLogger("coach-rotator")

	st, err := newStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	service := challenge.NewService(st.challenges, st.users, logger)

	rotated, err := service.AdvanceIfStale(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("rotation failed: %w", err)
	}

	if rotated {
		logger.Info("daily challenge rotated")
	} else {
		logger.Info("daily challenge already up-to-date")
	}
	return nil
}
