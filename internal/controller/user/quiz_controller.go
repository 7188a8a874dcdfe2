package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ooskills/formation-api/internal/dto"
	"github.com/ooskills/formation-api/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(qs service.QuizService) *QuizController {
	return &QuizController{quizService: qs}
}

// Submit godoc
// @Summary Submit answers for a section quiz
// @Description Scores the answer map against the answer key and records an attempt. Hitting the attempt limit yields 429 and records nothing.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param submission body dto.QuizSubmitRequest true "Enrollment id and answers (question id -> option index)"
// @Success 200 {object} dto.QuizAttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Quiz has no questions"
// @Failure 404 {object} dto.ErrorResponse "Quiz or enrollment not found"
// @Failure 429 {object} dto.ErrorResponse "Attempt limit reached"
// @Router /quizzes/{quiz_id}/attempts [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	quizID, ok := parseUintParam(ctx, "quiz_id")
	if !ok {
		return
	}

	var req dto.QuizSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	attempt, err := c.quizService.Submit(quizID, req)
	if err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Uint("enrollmentID", req.EnrollmentID).Msg("Quiz submit failed")
		writeServiceError(ctx, err, "Failed to submit quiz")
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// RemainingAttempts godoc
// @Summary Attempts left on a quiz for an enrollment
// @Description Remaining is null for quizzes configured with unlimited attempts.
// @Tags Quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param enrollment_id query int true "Enrollment ID"
// @Success 200 {object} dto.RemainingAttemptsResponse
// @Router /quizzes/{quiz_id}/remaining-attempts [get]
func (c *QuizController) RemainingAttempts(ctx *gin.Context) {
	quizID, ok := parseUintParam(ctx, "quiz_id")
	if !ok {
		return
	}
	enrollmentID, ok := parseUintQuery(ctx, "enrollment_id")
	if !ok {
		return
	}

	remaining, err := c.quizService.RemainingAttempts(enrollmentID, quizID)
	if err != nil {
		writeServiceError(ctx, err, "Failed to compute remaining attempts")
		return
	}
	ctx.JSON(http.StatusOK, remaining)
}

// BestScore godoc
// @Summary Best score across attempts on a quiz
// @Tags Quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param enrollment_id query int true "Enrollment ID"
// @Success 200 {object} map[string]float64
// @Router /quizzes/{quiz_id}/best-score [get]
func (c *QuizController) BestScore(ctx *gin.Context) {
	quizID, ok := parseUintParam(ctx, "quiz_id")
	if !ok {
		return
	}
	enrollmentID, ok := parseUintQuery(ctx, "enrollment_id")
	if !ok {
		return
	}

	best, err := c.quizService.BestScore(enrollmentID, quizID)
	if err != nil {
		writeServiceError(ctx, err, "Failed to compute best score")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"best_score": best})
}

// GetAttempts godoc
// @Summary List past attempts on a quiz for an enrollment
// @Tags Quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param enrollment_id query int true "Enrollment ID"
// @Success 200 {array} dto.QuizAttemptResponse
// @Router /quizzes/{quiz_id}/attempts [get]
func (c *QuizController) GetAttempts(ctx *gin.Context) {
	quizID, ok := parseUintParam(ctx, "quiz_id")
	if !ok {
		return
	}
	enrollmentID, ok := parseUintQuery(ctx, "enrollment_id")
	if !ok {
		return
	}

	attempts, err := c.quizService.GetAttempts(enrollmentID, quizID)
	if err != nil {
		writeServiceError(ctx, err, "Failed to retrieve attempts")
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
