package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"deliverus/internal/core/application/usecases/commands"
	"deliverus/internal/core/domain/model/kernel"
)

// ServiceTimeJob periodically recomputes the rolling average service time of
// every restaurant that had a delivery in the last day.
//
// The delivery flow refreshes the average right after each delivery commits,
// but that refresh is best-effort; this job heals any average the refresh
// missed. Recomputing is idempotent, so overlap with the inline refresh is
// harmless.
type ServiceTimeJob struct {
	db         *gorm.DB
	uowFactory commands.UoWFactory
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewServiceTimeJob creates a job that reconciles restaurant average service
// times every ten minutes.
func NewServiceTimeJob(db *gorm.DB, uowFactory commands.UoWFactory, logger *slog.Logger) *ServiceTimeJob {
	return &ServiceTimeJob{
		db:         db,
		uowFactory: uowFactory,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "service_time_job"),
	}
}

// Start begins the reconciliation schedule.
func (j *ServiceTimeJob) Start() error {
	_, err := j.cron.AddFunc("0 */10 * * * *", func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Service time job started (running every ten minutes)")
	return nil
}

// Stop stops the reconciliation schedule.
func (j *ServiceTimeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Service time job stopped")
}

// Run recomputes the average service time of every restaurant with a
// delivery in the last day. Failures are logged per restaurant; one broken
// restaurant does not stop the others.
func (j *ServiceTimeJob) Run(ctx context.Context) {
	restaurantIDs, err := j.restaurantsWithRecentDeliveries(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Service time reconciliation failed", "error", err)
		return
	}

	uow := j.uowFactory.Create()
	for _, restaurantID := range restaurantIDs {
		if err = j.recompute(ctx, uow, restaurantID); err != nil {
			j.logger.WarnContext(ctx, "Average service time recompute failed",
				"restaurantId", restaurantID.String(), "error", err)
		}
	}
}

func (j *ServiceTimeJob) restaurantsWithRecentDeliveries(ctx context.Context) ([]kernel.UUID, error) {
	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT DISTINCT restaurant_id
		FROM orders
		WHERE delivered_at >= ?
	`, time.Now().AddDate(0, 0, -1)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []kernel.UUID
	for rows.Next() {
		var raw string
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (j *ServiceTimeJob) recompute(ctx context.Context, uow commands.UoW, restaurantID kernel.UUID) error {
	minutes, err := uow.OrderRepository().GetDeliveredServiceMinutes(ctx, restaurantID)
	if err != nil {
		return err
	}
	if len(minutes) == 0 {
		return nil
	}

	var sum float64
	for _, m := range minutes {
		sum += m
	}

	return uow.RestaurantRepository().UpdateAverageServiceMinutes(ctx, restaurantID, sum/float64(len(minutes)))
}
