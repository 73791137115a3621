package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/rafaelmoret/comissoes-backend/internal/installments"
	"github.com/rafaelmoret/comissoes-backend/pkg/logger"
)

// OverdueSweepJobParams configures the overdue installment sweep.
type OverdueSweepJobParams struct {
	Logger *logger.Logger
	Repo   installments.Repository
	Now    func() time.Time
}

type overdueSweepJob struct {
	logg *logger.Logger
	repo installments.Repository
	now  func() time.Time
}

// NewOverdueSweepJob builds the job that flips awaiting installments past
// their due date to atrasada.
func NewOverdueSweepJob(params OverdueSweepJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("installments repository required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &overdueSweepJob{logg: params.Logger, repo: params.Repo, now: now}, nil
}

func (j *overdueSweepJob) Name() string { return "overdue-sweep" }

func (j *overdueSweepJob) Run(ctx context.Context) error {
	affected, err := j.repo.MarkOverdue(ctx, j.now())
	if err != nil {
		return fmt.Errorf("mark overdue installments: %w", err)
	}
	if affected > 0 {
		j.logg.Info(j.logg.WithField(ctx, "affected", affected), "installments flipped to atrasada")
	}
	return nil
}
