package v1

import (
	"github.com/andreyxaxa/hr-outbox/internal/usecase"
	"github.com/andreyxaxa/hr-outbox/pkg/logger"
)

type V1 struct {
	emp    usecase.EmployeeUseCase
	dep    usecase.DepartmentUseCase
	pos    usecase.PositionUseCase
	outbox usecase.OutboxUseCase
	logger logger.Interface
}
