package employee

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-crm-admin/internal/config"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// SyncService mirrors the company's HR Postgres into the empleados
// collection. The HR side is read-only; employees dropped on the HR side are
// deactivated here, never deleted.
type SyncService struct {
	Repo EmployeeRepository
	DSN  string
	Log  *zap.Logger
}

func NewSyncService(repo EmployeeRepository, cfg *config.Config, log *zap.Logger) *SyncService {
	return &SyncService{
		Repo: repo,
		DSN:  cfg.HRPostgresDSN,
		Log:  log,
	}
}

// Enabled reports whether a source database is configured.
func (s *SyncService) Enabled() bool {
	return s.DSN != ""
}

// Run executes one full pull. It returns the number of records upserted.
func (s *SyncService) Run(ctx context.Context) (int, error) {
	if !s.Enabled() {
		return 0, fmt.Errorf("hr sync is not configured")
	}

	db, err := sql.Open("postgres", s.DSN)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return 0, fmt.Errorf("failed to ping postgres: %v", err)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT employee_no, name, position, plant_id, active
		 FROM employees
		 ORDER BY employee_no`)
	if err != nil {
		return 0, fmt.Errorf("failed to query employees: %v", err)
	}
	defer rows.Close()

	now := time.Now()
	count := 0
	var presentNos []string

	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.EmployeeNo, &e.Name, &e.Position, &e.PlantID, &e.Active); err != nil {
			s.Log.Warn("skipping unreadable hr row", zap.Error(err))
			continue
		}
		e.SyncedAt = now
		e.CreatedAt = now
		e.UpdatedAt = now

		if err := s.Repo.Upsert(ctx, &e); err != nil {
			s.Log.Error("failed to upsert employee",
				zap.String("employeeNo", e.EmployeeNo), zap.Error(err))
			continue
		}
		presentNos = append(presentNos, e.EmployeeNo)
		count++
	}
	if err := rows.Err(); err != nil {
		return count, err
	}

	deactivated, err := s.Repo.DeactivateMissing(ctx, presentNos)
	if err != nil {
		return count, err
	}

	s.Log.Info("hr sync complete",
		zap.Int("upserted", count),
		zap.Int64("deactivated", deactivated))
	return count, nil
}
