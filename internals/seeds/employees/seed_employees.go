package employees

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"collegeaccounts_backend/internals/features/employees/dto"
	"collegeaccounts_backend/internals/features/employees/service"
	"collegeaccounts_backend/internals/helpers/domainerr"
	"collegeaccounts_backend/internals/seeds/seedfile"
)

type EmployeeSeed struct {
	Category string `json:"category"`
	dto.EmployeeRequest
}

// SeedEmployeesFromJSON: entri yang bentrok unik (sudah pernah di-seed) dilewati.
func SeedEmployeesFromJSON(ctx context.Context, svc *service.EmployeeService, actor uuid.UUID, filePath string) (int, error) {
	var inputs []EmployeeSeed
	if err := seedfile.ReadJSON(filePath, &inputs); err != nil {
		return 0, err
	}

	created := 0
	for i, in := range inputs {
		_, err := svc.Create(ctx, actor, in.Category, in.ToInput())
		if de, ok := domainerr.As(err); ok && de.Kind == domainerr.DuplicateUniqueField {
			svc.Log.Debug("seed employee exists, skipped", zap.String("name", in.Name), zap.String("category", in.Category))
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed employee #%d (%s): %w", i+1, in.Name, err)
		}
		created++
	}
	return created, nil
}
