package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/kennethjason07/school_management_app/internal/core/domain"
	portsrepo "github.com/kennethjason07/school_management_app/internal/core/ports/repositories"
	portssvc "github.com/kennethjason07/school_management_app/internal/core/ports/services"
	"github.com/kennethjason07/school_management_app/internal/utils/calendar"
)

type dateIntegrityService struct {
	BaseService
	repo portsrepo.DateRepairRepository
}

// NewDateIntegrityService creates the service that finds and clamps
// overflowed day-of-month values in stored dates.
func NewDateIntegrityService(repo portsrepo.DateRepairRepository) portssvc.DateIntegritySvcFacade {
	return &dateIntegrityService{repo: repo}
}

var _ portssvc.DateIntegritySvcFacade = (*dateIntegrityService)(nil)

// Repair rewrites each value with a day past the end of its month to the
// month's last day. Values that are valid, or broken some other way, are
// skipped. Every failure is collected; the count only includes rows that
// were actually changed.
func (s *dateIntegrityService) Repair(ctx context.Context, values []domain.RawDateValue) (int, error) {
	var errs *multierror.Error
	repaired := 0

	for _, v := range values {
		if !domain.IsKnownDateColumn(v.Table, v.Field) {
			errs = multierror.Append(errs, apperrors.NewValidationError(
				fmt.Sprintf("%s.%s is not a repairable date column", v.Table, v.Field)))
			continue
		}

		fixed, ok := calendar.Repair(v.Value)
		if !ok {
			if _, valid := calendar.Parse(v.Value); !valid {
				s.LogWarn(ctx, "Stored date is malformed and cannot be clamped",
					slog.String("table", v.Table),
					slog.String("record_id", v.RecordID),
					slog.String("value", v.Value))
			}
			continue
		}

		changed, err := s.repo.RewriteDate(ctx, v, fixed)
		if err != nil {
			s.LogError(ctx, err, "Failed to rewrite stored date",
				slog.String("table", v.Table),
				slog.String("record_id", v.RecordID))
			errs = multierror.Append(errs, fmt.Errorf("repair %s.%s of %s: %w", v.Table, v.Field, v.RecordID, err))
			continue
		}
		if !changed {
			// Someone else already rewrote or removed the row.
			continue
		}

		repaired++
		s.LogInfo(ctx, "Repaired stored date",
			slog.String("table", v.Table),
			slog.String("field", v.Field),
			slog.String("record_id", v.RecordID),
			slog.String("from", v.Value),
			slog.String("to", fixed))
	}

	return repaired, errs.ErrorOrNil()
}

// RepairAll scans every repairable date column and repairs what it can.
func (s *dateIntegrityService) RepairAll(ctx context.Context) (*domain.DateRepairResult, error) {
	values, err := s.repo.ListRawDates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list stored dates for repair")
		return nil, fmt.Errorf("failed to list stored dates: %w", err)
	}

	repaired, err := s.Repair(ctx, values)
	result := &domain.DateRepairResult{Scanned: len(values), Repaired: repaired}
	s.LogInfo(ctx, "Date repair pass completed",
		slog.Int("scanned", result.Scanned),
		slog.Int("repaired", result.Repaired))
	return result, err
}
