package employeeerrors

import (
	"net/http"

	"github.com/nosakhare/simple-payroll/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidSalary = apperror.New(
		apperror.CodeInvalidInput,
		"basic_salary must be a non-negative amount",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"employment status must be one of Active, On Leave, Suspended, Terminated",
		http.StatusBadRequest,
	)
	ErrNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrDuplicateEmail = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists",
		http.StatusConflict,
	)
)
