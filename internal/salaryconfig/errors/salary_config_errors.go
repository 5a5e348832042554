package salaryconfigerrors

import (
	"net/http"

	"github.com/nosakhare/simple-payroll/internal/shared/apperror"
)

var (
	ErrPercentSum = apperror.New(
		apperror.CodeInvalidInput,
		"component percentages must sum to 100",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary configuration not found",
		http.StatusNotFound,
	)
	ErrDeleteActive = apperror.New(
		apperror.CodeInvalidState,
		"the active salary configuration cannot be deleted",
		http.StatusBadRequest,
	)
)
