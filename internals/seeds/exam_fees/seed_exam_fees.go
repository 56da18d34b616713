package exam_fees

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"collegeaccounts_backend/internals/features/finance/exam_fees/dto"
	"collegeaccounts_backend/internals/features/finance/exam_fees/repository"
	"collegeaccounts_backend/internals/features/finance/exam_fees/service"
	"collegeaccounts_backend/internals/seeds/seedfile"
)

// SeedExamFeesFromJSON memakai bentuk body POST /api/exams, jadi setiap entri
// lewat kalkulator + validasi yang sama. Hanya jalan bila belum ada data.
func SeedExamFeesFromJSON(ctx context.Context, svc *service.ExamFeeService, actor uuid.UUID, filePath string) (int, error) {
	sum, err := repository.GetSummary(ctx, svc.DB)
	if err != nil {
		return 0, err
	}
	if sum.TotalEntries > 0 {
		svc.Log.Info("exam fees already present, seed skipped", zap.Int64("entries", sum.TotalEntries))
		return 0, nil
	}

	var inputs []dto.ExamFeeRequest
	if err := seedfile.ReadJSON(filePath, &inputs); err != nil {
		return 0, err
	}
	for i, in := range inputs {
		if _, err := svc.Create(ctx, actor, in.ToInput()); err != nil {
			return i, fmt.Errorf("seed exam fee #%d (%s): %w", i+1, in.ExamName, err)
		}
	}
	return len(inputs), nil
}
