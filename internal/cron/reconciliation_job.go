package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/rafaelmoret/comissoes-backend/internal/reconciliation"
	"github.com/rafaelmoret/comissoes-backend/pkg/logger"
)

const defaultRunTimeout = 30 * time.Second

// ReconciliationJobParams configures the settlement backfill cron job.
type ReconciliationJobParams struct {
	Logger     *logger.Logger
	Service    reconciliation.Service
	RunTimeout time.Duration
}

type reconciliationJob struct {
	logg       *logger.Logger
	service    reconciliation.Service
	runTimeout time.Duration
}

// NewReconciliationJob builds the backfill cron job.
func NewReconciliationJob(params ReconciliationJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Service == nil {
		return nil, fmt.Errorf("reconciliation service required")
	}
	timeout := params.RunTimeout
	if timeout <= 0 {
		timeout = defaultRunTimeout
	}
	return &reconciliationJob{
		logg:       params.Logger,
		service:    params.Service,
		runTimeout: timeout,
	}, nil
}

func (j *reconciliationJob) Name() string { return "settlement-reconciliation" }

// Run bounds the pass with a timeout; rows already inserted before the
// deadline stay in place and the next cycle picks up the remainder.
func (j *reconciliationJob) Run(ctx context.Context) error {
	runCtx, cancel := context.WithTimeout(ctx, j.runTimeout)
	defer cancel()

	report := j.service.Run(runCtx)
	if err := report.Err(); err != nil {
		return fmt.Errorf("reconciliation finished with %d errors: %w", report.ErrorCount(), err)
	}
	return nil
}
