package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imon025/quizi-backend/internal/middleware"
	"github.com/imon025/quizi-backend/internal/model"
	"github.com/imon025/quizi-backend/internal/response"
	"github.com/imon025/quizi-backend/internal/service"
)

// ResultHandler handles result retrieval endpoints.
type ResultHandler struct {
	resultService *service.ResultService
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(resultService *service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

func resultID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("result_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// ListMine godoc
// GET /api/v1/student/results
func (h *ResultHandler) ListMine(c *gin.Context) {
	claims := middleware.GetClaims(c)

	results, err := h.resultService.ListForStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if results == nil {
		results = []model.Result{}
	}

	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// GetMine godoc
// GET /api/v1/student/results/:result_id
func (h *ResultHandler) GetMine(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := resultID(c)
	if !ok {
		return
	}

	result, err := h.resultService.GetForStudent(c.Request.Context(), id, claims.UserID)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// ListForTeacher godoc
// GET /api/v1/teacher/results
func (h *ResultHandler) ListForTeacher(c *gin.Context) {
	claims := middleware.GetClaims(c)

	results, err := h.resultService.ListForTeacher(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if results == nil {
		results = []model.Result{}
	}

	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// GetForTeacher godoc
// GET /api/v1/teacher/results/:result_id
func (h *ResultHandler) GetForTeacher(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := resultID(c)
	if !ok {
		return
	}

	result, err := h.resultService.GetForTeacher(c.Request.Context(), id, claims.UserID)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}
