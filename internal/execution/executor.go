package execution

import (
	"context"
	"time"

	"syci/internal/domain"
)

// Executor executes units and returns results
type Executor interface {
	Execute(ctx context.Context, units []domain.TestUnit) ([]domain.RunResult, time.Duration, error)
}

// Progress receives running pass/fail counts
type Progress interface {
	Update(successCount, failCount int)
	Finish()
}
