package payrollerrors

import (
	"net/http"

	"github.com/nosakhare/simple-payroll/internal/shared/apperror"
)

var (
	ErrNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll item not found",
		http.StatusNotFound,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period_start must be on or before period_end, and payment_date must not precede period_end",
		http.StatusBadRequest,
	)
	ErrPeriodOverlap = apperror.New(
		apperror.CodeConflict,
		"a payroll already exists for an overlapping period",
		http.StatusConflict,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"unknown payroll status",
		http.StatusBadRequest,
	)
	ErrNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"payroll must be in Draft status for this operation",
		http.StatusBadRequest,
	)
	ErrNotAdjustable = apperror.New(
		apperror.CodeInvalidState,
		"adjustments are only allowed while the payroll is Active or Processing",
		http.StatusBadRequest,
	)
	ErrInvalidAdjustmentType = apperror.New(
		apperror.CodeInvalidInput,
		"adjustment type must be bonus, reimbursement or deduction",
		http.StatusBadRequest,
	)
	ErrAdjustmentAmount = apperror.New(
		apperror.CodeInvalidInput,
		"adjustment amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrNotProcessed = apperror.New(
		apperror.CodeInvalidState,
		"payroll has not been processed yet",
		http.StatusBadRequest,
	)
)
