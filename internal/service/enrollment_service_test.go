package service

import (
	"errors"
	"testing"

	"github.com/ooskills/formation-api/internal/model"
	"github.com/ooskills/formation-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEnrollmentService(db *gorm.DB) EnrollmentService {
	return NewEnrollmentService(repository.NewEnrollmentRepository(db), db)
}

func TestEnrollCreatesActiveEnrollment(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	svc := newEnrollmentService(db)

	resp, err := svc.Enroll(1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), resp.UserID)
	assert.Equal(t, course.ID, resp.CourseID)
	assert.Equal(t, model.EnrollmentStatusActive, resp.Status)
	assert.Equal(t, float64(0), resp.Progress)

	var refreshed model.Course
	require.NoError(t, db.First(&refreshed, course.ID).Error)
	assert.Equal(t, uint(1), refreshed.Students)
}

func TestEnrollTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	svc := newEnrollmentService(db)

	_, err := svc.Enroll(1, course.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(1, course.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	var count int64
	require.NoError(t, db.Model(&model.Enrollment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnrollReactivatesCancelled(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	svc := newEnrollmentService(db)

	first, err := svc.Enroll(1, course.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.Enrollment{}).
		Where("id = ?", first.ID).
		Update("status", model.EnrollmentStatusCancelled).Error)

	second, err := svc.Enroll(1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "cancelled enrollment is reactivated, not duplicated")
	assert.Equal(t, model.EnrollmentStatusActive, second.Status)

	// Reactivation does not bump the student counter a second time.
	var refreshed model.Course
	require.NoError(t, db.First(&refreshed, course.ID).Error)
	assert.Equal(t, uint(1), refreshed.Students)
}

func TestEnrollUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)

	_, err := svc.Enroll(1, 9999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestGetUserEnrollmentsIncludesCourseTitle(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	svc := newEnrollmentService(db)

	_, err := svc.Enroll(7, course.ID)
	require.NoError(t, err)

	enrollments, err := svc.GetUserEnrollments(7)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, course.Title, enrollments[0].CourseTitle)
}
