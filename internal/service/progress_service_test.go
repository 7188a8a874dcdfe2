package service

import (
	"testing"
	"time"

	"github.com/ooskills/formation-api/internal/dto"
	"github.com/ooskills/formation-api/internal/model"
	"github.com/ooskills/formation-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProgressService(db *gorm.DB) ProgressService {
	return NewProgressService(
		repository.NewEnrollmentRepository(db),
		repository.NewLessonProgressRepository(db),
		repository.NewLessonNoteRepository(db),
		repository.NewLessonRepository(db),
		db,
	)
}

func TestAutosaveCreatesRecord(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	svc := newProgressService(db)

	lesson := course.Sections[0].Lessons[0]
	resp, err := svc.Autosave(enrollment.ID, dto.AutosaveProgressRequest{
		LessonID:       lesson.ID,
		CurrentSlide:   3,
		LastPosition:   45,
		TimeSpentDelta: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.CurrentSlide)
	assert.Equal(t, 45, resp.LastPosition)
	assert.Equal(t, 60, resp.TimeSpent)
	assert.False(t, resp.Completed)
}

func TestAutosaveUpdateRules(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	svc := newProgressService(db)
	lesson := course.Sections[0].Lessons[0]

	_, err := svc.Autosave(enrollment.ID, dto.AutosaveProgressRequest{
		LessonID: lesson.ID, CurrentSlide: 5, LastPosition: 120, TimeSpentDelta: 30, Completed: true,
	})
	require.NoError(t, err)

	// A stale save cannot move the slide backwards or un-complete the lesson,
	// but last_position is last-write-wins and time keeps accumulating.
	resp, err := svc.Autosave(enrollment.ID, dto.AutosaveProgressRequest{
		LessonID: lesson.ID, CurrentSlide: 2, LastPosition: 10, TimeSpentDelta: 15, Completed: false,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.CurrentSlide)
	assert.Equal(t, 10, resp.LastPosition)
	assert.Equal(t, 45, resp.TimeSpent)
	assert.True(t, resp.Completed)
	require.NotNil(t, resp.CompletedAt)
	firstCompletedAt := *resp.CompletedAt

	// Completing again does not move the completion timestamp.
	resp, err = svc.Autosave(enrollment.ID, dto.AutosaveProgressRequest{
		LessonID: lesson.ID, CurrentSlide: 5, Completed: true,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.CompletedAt)
	assert.WithinDuration(t, firstCompletedAt, *resp.CompletedAt, time.Second)
}

func TestAutosaveRecalculatesCourseProgress(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	svc := newProgressService(db)
	lessons := course.Sections[0].Lessons

	_, err := svc.Autosave(enrollment.ID, dto.AutosaveProgressRequest{
		LessonID: lessons[0].ID, Completed: true,
	})
	require.NoError(t, err)

	var refreshed model.Enrollment
	require.NoError(t, db.First(&refreshed, enrollment.ID).Error)
	assert.Equal(t, 50.0, refreshed.Progress)
	assert.Equal(t, model.EnrollmentStatusActive, refreshed.Status)

	_, err = svc.Autosave(enrollment.ID, dto.AutosaveProgressRequest{
		LessonID: lessons[1].ID, Completed: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.First(&refreshed, enrollment.ID).Error)
	assert.Equal(t, 100.0, refreshed.Progress)
	assert.Equal(t, model.EnrollmentStatusCompleted, refreshed.Status)
	assert.NotNil(t, refreshed.CompletedAt)
}

func TestAutosaveLeavesCompletedEnrollmentAlone(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	completeEnrollment(t, db, enrollment)
	svc := newProgressService(db)

	// A late autosave on a completed enrollment must not drag the aggregate
	// back below 100.
	_, err := svc.Autosave(enrollment.ID, dto.AutosaveProgressRequest{
		LessonID: course.Sections[0].Lessons[0].ID, CurrentSlide: 1,
	})
	require.NoError(t, err)

	var refreshed model.Enrollment
	require.NoError(t, db.First(&refreshed, enrollment.ID).Error)
	assert.Equal(t, 100.0, refreshed.Progress)
	assert.Equal(t, model.EnrollmentStatusCompleted, refreshed.Status)
}

func TestAutosaveUnknownLesson(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	svc := newProgressService(db)

	_, err := svc.Autosave(enrollment.ID, dto.AutosaveProgressRequest{LessonID: 9999})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetCourseProgress(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	svc := newProgressService(db)
	lessons := course.Sections[0].Lessons

	_, err := svc.Autosave(enrollment.ID, dto.AutosaveProgressRequest{LessonID: lessons[0].ID, Completed: true})
	require.NoError(t, err)
	_, err = svc.Autosave(enrollment.ID, dto.AutosaveProgressRequest{LessonID: lessons[1].ID, CurrentSlide: 2})
	require.NoError(t, err)

	progress, err := svc.GetCourseProgress(enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, progress.Enrollment.Progress)
	require.Len(t, progress.Lessons, 2)
	assert.True(t, progress.Lessons[0].Completed)
	assert.False(t, progress.Lessons[1].Completed)
}

func TestNotesLifecycle(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	svc := newProgressService(db)
	lesson := course.Sections[0].Lessons[0]

	note, err := svc.CreateNote(enrollment.ID, dto.LessonNoteCreateRequest{
		LessonID: lesson.ID, Content: "check this slide again", SlideIndex: 4,
	})
	require.NoError(t, err)

	notes, err := svc.GetNotes(enrollment.ID, lesson.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "check this slide again", notes[0].Content)

	require.NoError(t, svc.DeleteNote(enrollment.ID, note.ID))
	assert.ErrorIs(t, svc.DeleteNote(enrollment.ID, note.ID), gorm.ErrRecordNotFound)
}

func TestCreateNoteUnknownLesson(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	svc := newProgressService(db)

	_, err := svc.CreateNote(enrollment.ID, dto.LessonNoteCreateRequest{LessonID: 9999, Content: "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
