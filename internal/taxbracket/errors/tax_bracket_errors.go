package taxbracketerrors

import (
	"net/http"

	"github.com/nosakhare/simple-payroll/internal/shared/apperror"
)

var (
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"bracket limits must be non-negative amounts",
		http.StatusBadRequest,
	)
	ErrInvalidRate = apperror.New(
		apperror.CodeInvalidInput,
		"bracket rate must be greater than zero",
		http.StatusBadRequest,
	)
	ErrUpperNotAboveLower = apperror.New(
		apperror.CodeInvalidInput,
		"upper_limit must be greater than lower_limit",
		http.StatusBadRequest,
	)
	ErrOverlap = apperror.New(
		apperror.CodeConflict,
		"bracket overlaps an existing bracket",
		http.StatusConflict,
	)
	ErrDuplicateUnbounded = apperror.New(
		apperror.CodeConflict,
		"an unbounded top bracket already exists",
		http.StatusConflict,
	)
	ErrNotFound = apperror.New(
		apperror.CodeNotFound,
		"tax bracket not found",
		http.StatusNotFound,
	)
)
