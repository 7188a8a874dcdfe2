package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ooskills/formation-api/internal/dto"
	"github.com/ooskills/formation-api/internal/service"
	"github.com/rs/zerolog/log"
)

type EnrollmentController struct {
	enrollmentService service.EnrollmentService
	progressService   service.ProgressService
}

func NewEnrollmentController(es service.EnrollmentService, ps service.ProgressService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: es, progressService: ps}
}

// Enroll godoc
// @Summary Enroll a user in a course
// @Description Creates an active enrollment for the (user, course) pair. A cancelled enrollment is reactivated; a live one conflicts.
// @Tags Enrollments & Progress
// @Accept json
// @Produce json
// @Param enrollment body dto.EnrollRequest true "User and course ids"
// @Success 201 {object} dto.EnrollmentResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Router /enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	enrollment, err := c.enrollmentService.Enroll(req.UserID, req.CourseID)
	if err != nil {
		log.Warn().Err(err).Uint("userID", req.UserID).Uint("courseID", req.CourseID).Msg("Enroll failed")
		writeServiceError(ctx, err, "Failed to enroll")
		return
	}
	ctx.JSON(http.StatusCreated, enrollment)
}

// GetUserEnrollments godoc
// @Summary List all enrollments of a user
// @Tags Enrollments & Progress
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} dto.EnrollmentResponse
// @Router /users/{user_id}/enrollments [get]
func (c *EnrollmentController) GetUserEnrollments(ctx *gin.Context) {
	userID, ok := parseUintParam(ctx, "user_id")
	if !ok {
		return
	}

	enrollments, err := c.enrollmentService.GetUserEnrollments(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetUserEnrollments: service error")
		writeServiceError(ctx, err, "Failed to retrieve enrollments")
		return
	}
	ctx.JSON(http.StatusOK, enrollments)
}

// Autosave godoc
// @Summary Save lesson progress
// @Description Periodic autosave from the lesson player. Slide position only moves forward, completion is sticky, and the course percentage is recalculated in the same transaction.
// @Tags Enrollments & Progress
// @Accept json
// @Produce json
// @Param enrollment_id path int true "Enrollment ID"
// @Param progress body dto.AutosaveProgressRequest true "Lesson state"
// @Success 200 {object} dto.LessonProgressResponse
// @Failure 404 {object} dto.ErrorResponse "Enrollment or lesson not found"
// @Router /enrollments/{enrollment_id}/progress [put]
func (c *EnrollmentController) Autosave(ctx *gin.Context) {
	enrollmentID, ok := parseUintParam(ctx, "enrollment_id")
	if !ok {
		return
	}

	var req dto.AutosaveProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	progress, err := c.progressService.Autosave(enrollmentID, req)
	if err != nil {
		log.Error().Err(err).Uint("enrollmentID", enrollmentID).Uint("lessonID", req.LessonID).Msg("Autosave: service error")
		writeServiceError(ctx, err, "Failed to save progress")
		return
	}
	ctx.JSON(http.StatusOK, progress)
}

// GetCourseProgress godoc
// @Summary Get course progress for an enrollment
// @Tags Enrollments & Progress
// @Produce json
// @Param enrollment_id path int true "Enrollment ID"
// @Success 200 {object} dto.CourseProgressResponse
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollments/{enrollment_id}/progress [get]
func (c *EnrollmentController) GetCourseProgress(ctx *gin.Context) {
	enrollmentID, ok := parseUintParam(ctx, "enrollment_id")
	if !ok {
		return
	}

	progress, err := c.progressService.GetCourseProgress(enrollmentID)
	if err != nil {
		writeServiceError(ctx, err, "Failed to retrieve progress")
		return
	}
	ctx.JSON(http.StatusOK, progress)
}

// CreateNote godoc
// @Summary Add a note to a lesson
// @Tags Enrollments & Progress
// @Accept json
// @Produce json
// @Param enrollment_id path int true "Enrollment ID"
// @Param note body dto.LessonNoteCreateRequest true "Note content and slide"
// @Success 201 {object} dto.LessonNoteResponse
// @Router /enrollments/{enrollment_id}/notes [post]
func (c *EnrollmentController) CreateNote(ctx *gin.Context) {
	enrollmentID, ok := parseUintParam(ctx, "enrollment_id")
	if !ok {
		return
	}

	var req dto.LessonNoteCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	note, err := c.progressService.CreateNote(enrollmentID, req)
	if err != nil {
		writeServiceError(ctx, err, "Failed to create note")
		return
	}
	ctx.JSON(http.StatusCreated, note)
}

// GetNotes godoc
// @Summary List notes for a lesson within an enrollment
// @Tags Enrollments & Progress
// @Produce json
// @Param enrollment_id path int true "Enrollment ID"
// @Param lesson_id query int true "Lesson ID"
// @Success 200 {array} dto.LessonNoteResponse
// @Router /enrollments/{enrollment_id}/notes [get]
func (c *EnrollmentController) GetNotes(ctx *gin.Context) {
	enrollmentID, ok := parseUintParam(ctx, "enrollment_id")
	if !ok {
		return
	}
	lessonID, ok := parseUintQuery(ctx, "lesson_id")
	if !ok {
		return
	}

	notes, err := c.progressService.GetNotes(enrollmentID, lessonID)
	if err != nil {
		writeServiceError(ctx, err, "Failed to retrieve notes")
		return
	}
	ctx.JSON(http.StatusOK, notes)
}

// DeleteNote godoc
// @Summary Delete a note
// @Tags Enrollments & Progress
// @Param enrollment_id path int true "Enrollment ID"
// @Param note_id path int true "Note ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /enrollments/{enrollment_id}/notes/{note_id} [delete]
func (c *EnrollmentController) DeleteNote(ctx *gin.Context) {
	enrollmentID, ok := parseUintParam(ctx, "enrollment_id")
	if !ok {
		return
	}
	noteID, ok := parseUintParam(ctx, "note_id")
	if !ok {
		return
	}

	if err := c.progressService.DeleteNote(enrollmentID, noteID); err != nil {
		writeServiceError(ctx, err, "Failed to delete note")
		return
	}
	ctx.Status(http.StatusNoContent)
}
