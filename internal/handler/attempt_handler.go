package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imon025/quizi-backend/internal/middleware"
	"github.com/imon025/quizi-backend/internal/model"
	"github.com/imon025/quizi-backend/internal/response"
	"github.com/imon025/quizi-backend/internal/service"
	"github.com/imon025/quizi-backend/internal/validator"
)

// AttemptHandler handles the quiz attempt lifecycle endpoints.
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// ValidateKey godoc
// POST /api/v1/student/quizzes/:quiz_id/validate-key
// Pre-flight access check. Grants nothing; StartAttempt re-validates.
func (h *AttemptHandler) ValidateKey(c *gin.Context) {
	id, ok := quizID(c)
	if !ok {
		return
	}

	var req model.ValidateKeyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.attemptService.ValidateAccess(c.Request.Context(), id, req.AccessKey); err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"valid": true})
}

// Start godoc
// POST /api/v1/student/quizzes/:quiz_id/start
// Serves a freshly drawn question set. Nothing is persisted; a student who
// reloads gets a new draw.
func (h *AttemptHandler) Start(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := quizID(c)
	if !ok {
		return
	}

	var req model.StartAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions, err := h.attemptService.StartAttempt(c.Request.Context(), id, claims.UserID, req.AccessKey)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// Submit godoc
// POST /api/v1/student/quizzes/:quiz_id/submit
func (h *AttemptHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := quizID(c)
	if !ok {
		return
	}

	var req model.SubmitAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.attemptService.SubmitAttempt(c.Request.Context(), id, claims.UserID, &req)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"result": result})
}

// Regrade godoc
// PUT /api/v1/teacher/results/:result_id/regrade
func (h *AttemptHandler) Regrade(c *gin.Context) {
	claims := middleware.GetClaims(c)

	resultID, err := uuid.Parse(c.Param("result_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.RegradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.attemptService.Regrade(c.Request.Context(), resultID, claims.UserID, &req)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}
