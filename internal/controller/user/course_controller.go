package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ooskills/formation-api/internal/service"
)

// CourseController serves the public catalog. It reads through the same
// formation service the admin side writes with.
type CourseController struct {
	formationService service.AdminFormationService
}

func NewCourseController(fs service.AdminFormationService) *CourseController {
	return &CourseController{formationService: fs}
}

// ListCourses godoc
// @Summary List published courses
// @Tags Courses
// @Produce json
// @Success 200 {array} dto.CourseResponse
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.formationService.ListPublishedCourses()
	if err != nil {
		writeServiceError(ctx, err, "Failed to retrieve courses")
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

// GetCourse godoc
// @Summary Get a course with its sections and lessons
// @Tags Courses
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.CourseResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{course_id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "course_id")
	if !ok {
		return
	}

	course, err := c.formationService.GetCourse(courseID)
	if err != nil {
		writeServiceError(ctx, err, "Failed to retrieve course")
		return
	}
	ctx.JSON(http.StatusOK, course)
}
