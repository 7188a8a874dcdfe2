package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ooskills/formation-api/internal/dto"
	"github.com/ooskills/formation-api/internal/service"
	"github.com/rs/zerolog/log"
)

type FinalQuizController struct {
	finalQuizService service.FinalQuizService
}

func NewFinalQuizController(fqs service.FinalQuizService) *FinalQuizController {
	return &FinalQuizController{finalQuizService: fqs}
}

// GetConfig godoc
// @Summary Final quiz configuration for a course
// @Tags Final Quiz
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.FinalQuizConfigResponse
// @Failure 404 {object} dto.ErrorResponse "No final quiz configured"
// @Router /courses/{course_id}/final-quiz [get]
func (c *FinalQuizController) GetConfig(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "course_id")
	if !ok {
		return
	}

	config, err := c.finalQuizService.GetConfig(courseID)
	if err != nil {
		writeServiceError(ctx, err, "Failed to retrieve final quiz")
		return
	}
	ctx.JSON(http.StatusOK, config)
}

// Generate godoc
// @Summary Sample a final quiz question set
// @Description Requires a completed enrollment. Returns question ids and question bodies without answer keys; the id list must be echoed verbatim on submission.
// @Tags Final Quiz
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param request body dto.FinalQuizGenerateRequest true "User id"
// @Success 200 {object} dto.FinalQuizGenerateResponse
// @Failure 400 {object} dto.ErrorResponse "Course not completed or no questions in pool"
// @Failure 404 {object} dto.ErrorResponse "No final quiz configured or not enrolled"
// @Failure 429 {object} dto.ErrorResponse "Attempt limit reached"
// @Router /courses/{course_id}/final-quiz/generate [post]
func (c *FinalQuizController) Generate(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "course_id")
	if !ok {
		return
	}

	var req dto.FinalQuizGenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	questions, err := c.finalQuizService.GenerateQuestions(req.UserID, courseID)
	if err != nil {
		log.Warn().Err(err).Uint("userID", req.UserID).Uint("courseID", courseID).Msg("Final quiz generate failed")
		writeServiceError(ctx, err, "Failed to generate final quiz")
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// Submit godoc
// @Summary Submit a final quiz attempt
// @Description Scores the echoed question set. A passing score issues the course certificate in the same request when one is not already held.
// @Tags Final Quiz
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param submission body dto.FinalQuizSubmitRequest true "Question ids and answers"
// @Success 200 {object} dto.FinalQuizAttemptResponse
// @Failure 404 {object} dto.ErrorResponse "No final quiz configured or not enrolled"
// @Failure 429 {object} dto.ErrorResponse "Attempt limit reached"
// @Router /courses/{course_id}/final-quiz/attempts [post]
func (c *FinalQuizController) Submit(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "course_id")
	if !ok {
		return
	}

	var req dto.FinalQuizSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	req.CourseID = courseID

	attempt, err := c.finalQuizService.Submit(req)
	if err != nil {
		log.Warn().Err(err).Uint("userID", req.UserID).Uint("courseID", courseID).Msg("Final quiz submit failed")
		writeServiceError(ctx, err, "Failed to submit final quiz")
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// UserAttempts godoc
// @Summary List a user's final quiz attempts across courses
// @Tags Final Quiz
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} dto.FinalQuizAttemptResponse
// @Router /users/{user_id}/final-quiz-attempts [get]
func (c *FinalQuizController) UserAttempts(ctx *gin.Context) {
	userID, ok := parseUintParam(ctx, "user_id")
	if !ok {
		return
	}

	attempts, err := c.finalQuizService.UserAttempts(userID)
	if err != nil {
		writeServiceError(ctx, err, "Failed to retrieve final quiz attempts")
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
