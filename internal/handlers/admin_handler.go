package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arbaj2004/Smart-Learn/internal/services"
	"github.com/Arbaj2004/Smart-Learn/pkg/apperrors"
)

type AdminHandler struct {
	*BaseHandler
	adminService  services.AdminService
	importService services.ImportService
	requireAuth   gin.HandlerFunc
	requireAdmin  gin.HandlerFunc
}

func NewAdminHandler(
	base *BaseHandler,
	adminService services.AdminService,
	importService services.ImportService,
	requireAuth gin.HandlerFunc,
	requireAdmin gin.HandlerFunc,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:   base,
		adminService:  adminService,
		importService: importService,
		requireAuth:   requireAuth,
		requireAdmin:  requireAdmin,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(h.requireAuth, h.requireAdmin)
	{
		admin.POST("/import-students", h.ImportStudents)
		admin.GET("/faculty", h.ListFaculty)
		admin.GET("/faculty/pending", h.ListPendingFaculty)
		admin.PATCH("/faculty/:facultyId/approve", h.ApproveFaculty)
		admin.DELETE("/faculty/:facultyId", h.RemoveFaculty)
		admin.GET("/stats", h.Stats)
	}
}

// ImportStudents accepts a CSV upload under the "file" form field.
func (h *AdminHandler) ImportStudents(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("CSV file is required under the 'file' field"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.ParseError(err))
		return
	}
	defer file.Close()

	result, err := h.importService.ImportStudents(file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) ListFaculty(c *gin.Context) {
	faculty, err := h.adminService.ListFaculty(nil)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"faculty": faculty})
}

func (h *AdminHandler) ListPendingFaculty(c *gin.Context) {
	approved := false
	faculty, err := h.adminService.ListFaculty(&approved)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"faculty": faculty})
}

func (h *AdminHandler) ApproveFaculty(c *gin.Context) {
	faculty, err := h.adminService.ApproveFaculty(c.Param("facultyId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"faculty": faculty})
}

func (h *AdminHandler) RemoveFaculty(c *gin.Context) {
	if err := h.adminService.RemoveFaculty(c.Param("facultyId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Faculty removed"})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
