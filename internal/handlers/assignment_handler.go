package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arbaj2004/Smart-Learn/internal/services"
	"github.com/Arbaj2004/Smart-Learn/internal/services/dto"
	"github.com/Arbaj2004/Smart-Learn/pkg/apperrors"
)

type AssignmentHandler struct {
	*BaseHandler
	assignmentService services.AssignmentService
	requireAuth       gin.HandlerFunc
	requireFaculty    gin.HandlerFunc
	requireStudent    gin.HandlerFunc
	maxUploadSize     int64
}

func NewAssignmentHandler(
	base *BaseHandler,
	assignmentService services.AssignmentService,
	requireAuth gin.HandlerFunc,
	requireFaculty gin.HandlerFunc,
	requireStudent gin.HandlerFunc,
	maxUploadSize int64,
) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler:       base,
		assignmentService: assignmentService,
		requireAuth:       requireAuth,
		requireFaculty:    requireFaculty,
		requireStudent:    requireStudent,
		maxUploadSize:     maxUploadSize,
	}
}

func (h *AssignmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	assignments := rg.Group("/assignments")
	assignments.Use(h.requireAuth)
	{
		assignments.GET("/course/:courseId", h.ListByCourse)
		assignments.GET("/:assignmentId", h.Get)

		assignments.POST("/course/:courseId", h.requireFaculty, h.Create)
		assignments.PATCH("/:assignmentId", h.requireFaculty, h.Update)
		assignments.DELETE("/:assignmentId", h.requireFaculty, h.Delete)
		assignments.GET("/:assignmentId/submissions", h.requireFaculty, h.ListSubmissions)
		assignments.PATCH("/submissions/:submissionId/grade", h.requireFaculty, h.Grade)

		assignments.POST("/:assignmentId/submit", h.requireStudent, h.Submit)
		assignments.GET("/:assignmentId/my-submission", h.requireStudent, h.MySubmission)
		assignments.GET("/my-submissions", h.requireStudent, h.MySubmissions)
	}
}

func (h *AssignmentHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	assignment, err := h.assignmentService.Create(userID, c.Param("courseId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"assignment": assignment})
}

func (h *AssignmentHandler) Update(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAssignmentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	assignment, err := h.assignmentService.Update(userID, c.Param("assignmentId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignment": assignment})
}

func (h *AssignmentHandler) Delete(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.assignmentService.Delete(userID, c.Param("assignmentId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment deleted"})
}

func (h *AssignmentHandler) Get(c *gin.Context) {
	assignment, err := h.assignmentService.Get(c.Param("assignmentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignment": assignment})
}

func (h *AssignmentHandler) ListByCourse(c *gin.Context) {
	assignments, err := h.assignmentService.ListByCourse(c.Param("courseId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

// Submit accepts the submission file under the "file" form field.
func (h *AssignmentHandler) Submit(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Submission file is required under the 'file' field"))
		return
	}
	if fileHeader.Size > h.maxUploadSize {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File exceeds the maximum upload size"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	upload := &services.SubmissionUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Reader:      file,
	}
	submission, err := h.assignmentService.Submit(c.Request.Context(), userID, c.Param("assignmentId"), upload)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"submission": submission})
}

func (h *AssignmentHandler) MySubmission(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	submission, err := h.assignmentService.MySubmission(userID, c.Param("assignmentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

// MySubmissions lists the caller's submissions across all courses.
func (h *AssignmentHandler) MySubmissions(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	submissions, err := h.assignmentService.MySubmissions(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

func (h *AssignmentHandler) ListSubmissions(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	submissions, err := h.assignmentService.ListSubmissions(userID, c.Param("assignmentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

func (h *AssignmentHandler) Grade(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.GradeSubmissionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	submission, err := h.assignmentService.Grade(userID, c.Param("submissionId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submission": submission})
}
