package payroll

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/nosakhare/simple-payroll/internal/middleware"
	"github.com/nosakhare/simple-payroll/internal/shared/apperror"
	"github.com/nosakhare/simple-payroll/internal/shared/response"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("user_id")
	if actorID == "" {
		actorID = c.GetString("user_id_validated")
	}
	return actorID
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	defer middleware.ReleaseIdempotencyLock(c, h.rdb)

	var req CreatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	payroll, err := h.service.Create(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	middleware.CacheIdempotentResponse(c, h.rdb, payroll)
	response.Success(c, http.StatusCreated, payroll, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	payrolls, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, payrolls, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	payroll, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, payroll, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	payroll, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, payroll, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Transition(c *gin.Context) {
	defer middleware.ReleaseIdempotencyLock(c, h.rdb)

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Transition(c.Request.Context(), c.Param("id"), getActorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	middleware.CacheIdempotentResponse(c, h.rdb, resp.Payroll)

	if resp.Warning != "" {
		response.SuccessWithWarning(c, http.StatusOK, resp.Payroll, resp.Warning)
		return
	}

	response.Success(c, http.StatusOK, resp.Payroll, nil)
}

func (h *Handler) Process(c *gin.Context) {
	defer middleware.ReleaseIdempotencyLock(c, h.rdb)

	resp, err := h.service.Process(c.Request.Context(), c.Param("id"), getActorID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	middleware.CacheIdempotentResponse(c, h.rdb, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetItems(c *gin.Context) {
	items, err := h.service.GetItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items, nil)
}

func (h *Handler) GetItem(c *gin.Context) {
	item, err := h.service.GetItem(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, item, nil)
}

func (h *Handler) AddAdjustment(c *gin.Context) {
	defer middleware.ReleaseIdempotencyLock(c, h.rdb)

	var req CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	item, err := h.service.AddAdjustment(c.Request.Context(), c.Param("itemId"), getActorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	middleware.CacheIdempotentResponse(c, h.rdb, item)
	response.Success(c, http.StatusCreated, item, nil)
}

func (h *Handler) GetAdjustments(c *gin.Context) {
	adjustments, err := h.service.GetAdjustments(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, adjustments, nil)
}
