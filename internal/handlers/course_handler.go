package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arbaj2004/Smart-Learn/internal/repositories"
	"github.com/Arbaj2004/Smart-Learn/internal/services"
	"github.com/Arbaj2004/Smart-Learn/internal/services/dto"
)

type CourseHandler struct {
	*BaseHandler
	courseService  services.CourseService
	requireAuth    gin.HandlerFunc
	requireFaculty gin.HandlerFunc
	requireStudent gin.HandlerFunc
}

func NewCourseHandler(
	base *BaseHandler,
	courseService services.CourseService,
	requireAuth gin.HandlerFunc,
	requireFaculty gin.HandlerFunc,
	requireStudent gin.HandlerFunc,
) *CourseHandler {
	return &CourseHandler{
		BaseHandler:    base,
		courseService:  courseService,
		requireAuth:    requireAuth,
		requireFaculty: requireFaculty,
		requireStudent: requireStudent,
	}
}

func (h *CourseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	courses := rg.Group("/courses")
	courses.Use(h.requireAuth)
	{
		courses.GET("", h.List)
		courses.GET("/enrolled", h.requireStudent, h.ListEnrolled)
		courses.GET("/mine", h.requireFaculty, h.ListMine)
		courses.GET("/:courseId", h.Get)

		courses.POST("", h.requireFaculty, h.Create)
		courses.PATCH("/:courseId", h.requireFaculty, h.Update)
		courses.DELETE("/:courseId", h.requireFaculty, h.Delete)
		courses.GET("/:courseId/students", h.requireFaculty, h.Students)

		courses.POST("/:courseId/enroll", h.requireStudent, h.Enroll)
	}
}

func (h *CourseHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	course, err := h.courseService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"course": course})
}

func (h *CourseHandler) Update(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	course, err := h.courseService.Update(userID, c.Param("courseId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"course": course})
}

func (h *CourseHandler) Delete(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.courseService.Delete(userID, c.Param("courseId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course deleted"})
}

func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courseService.Get(c.Param("courseId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"course": course})
}

func (h *CourseHandler) List(c *gin.Context) {
	filter := repositories.CourseFilter{
		Department:  c.Query("department"),
		Semester:    ParseQueryInt(c, "semester", 0),
		VisibleOnly: true,
	}
	courses, err := h.courseService.List(filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *CourseHandler) ListMine(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	courses, err := h.courseService.ListMine(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *CourseHandler) Students(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	students, err := h.courseService.Students(userID, c.Param("courseId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

func (h *CourseHandler) Enroll(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.courseService.Enroll(userID, c.Param("courseId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Enrolled"})
}

func (h *CourseHandler) ListEnrolled(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	courses, err := h.courseService.ListEnrolled(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}
