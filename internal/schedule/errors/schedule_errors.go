package scheduleerrors

import (
	"net/http"

	"github.com/nosakhare/simple-payroll/internal/shared/apperror"
)

var (
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrScheduleNotFound = apperror.New(
		apperror.CodeNotFound,
		"payment schedule not found",
		http.StatusNotFound,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payment schedule status",
		http.StatusBadRequest,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending payment schedules can change status",
		http.StatusBadRequest,
	)
)
