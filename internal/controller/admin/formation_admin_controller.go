package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ooskills/formation-api/internal/dto"
	"github.com/ooskills/formation-api/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type FormationAdminController struct {
	formationService service.AdminFormationService
}

func NewFormationAdminController(fs service.AdminFormationService) *FormationAdminController {
	return &FormationAdminController{formationService: fs}
}

// CreateCourse godoc
// @Summary (Admin) Create a course with nested sections and lessons
// @Description Sequences must be unique per level. The course is created in draft status.
// @Tags Admin - Formation
// @Accept json
// @Produce json
// @Param course body dto.CourseCreateRequest true "Course structure"
// @Success 201 {object} dto.CourseResponse
// @Failure 400 {object} dto.ErrorResponse "Structural validation failed"
// @Failure 409 {object} dto.ErrorResponse "Slug already in use"
// @Router /admin/courses [post]
func (c *FormationAdminController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateCourse: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	course, err := c.formationService.CreateCourse(req)
	if err != nil {
		log.Error().Err(err).Str("slug", req.Slug).Msg("Admin CreateCourse: service error")
		writeError(ctx, err, "Failed to create course")
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// GetCourse godoc
// @Summary (Admin) Get a course with full structure
// @Tags Admin - Formation
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.CourseResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{course_id} [get]
func (c *FormationAdminController) GetCourse(ctx *gin.Context) {
	courseID, ok := parseID(ctx, "course_id")
	if !ok {
		return
	}

	course, err := c.formationService.GetCourse(courseID)
	if err != nil {
		writeError(ctx, err, "Failed to retrieve course")
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// CreateQuiz godoc
// @Summary (Admin) Attach a quiz to a section
// @Description One quiz per section. Each question's correct_answer must be a valid index into its options.
// @Tags Admin - Formation
// @Accept json
// @Produce json
// @Param section_id path int true "Section ID"
// @Param quiz body dto.QuizCreateRequest true "Quiz with questions"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse "Structural validation failed"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Failure 409 {object} dto.ErrorResponse "Section already has a quiz"
// @Router /admin/sections/{section_id}/quiz [post]
func (c *FormationAdminController) CreateQuiz(ctx *gin.Context) {
	sectionID, ok := parseID(ctx, "section_id")
	if !ok {
		return
	}

	var req dto.QuizCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateQuiz: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	quiz, err := c.formationService.CreateQuiz(sectionID, req)
	if err != nil {
		log.Error().Err(err).Uint("sectionID", sectionID).Msg("Admin CreateQuiz: service error")
		writeError(ctx, err, "Failed to create quiz")
		return
	}
	ctx.JSON(http.StatusCreated, quiz)
}

// CreateFinalQuiz godoc
// @Summary (Admin) Configure the final quiz of a course
// @Tags Admin - Formation
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param final_quiz body dto.FinalQuizCreateRequest true "Final quiz configuration"
// @Success 201 {object} dto.FinalQuizConfigResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course already has a final quiz"
// @Router /admin/courses/{course_id}/final-quiz [post]
func (c *FormationAdminController) CreateFinalQuiz(ctx *gin.Context) {
	courseID, ok := parseID(ctx, "course_id")
	if !ok {
		return
	}

	var req dto.FinalQuizCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	finalQuiz, err := c.formationService.CreateFinalQuiz(courseID, req)
	if err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Msg("Admin CreateFinalQuiz: service error")
		writeError(ctx, err, "Failed to create final quiz")
		return
	}
	ctx.JSON(http.StatusCreated, finalQuiz)
}

func parseID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

func writeError(ctx *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrAlreadyExists):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidContent):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: msg, Details: []string{err.Error()}})
	}
}
