package service

import (
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollDerivesAccessLevel(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 3)

	free, err := env.enrollment.Enroll(1, course.ID, model.EnrollmentFree)
	require.NoError(t, err)
	assert.Equal(t, model.AccessLimited, free.AccessLevel)
	assert.Equal(t, float64(0), free.ProgressPercentage)

	paid, err := env.enrollment.Enroll(2, course.ID, model.EnrollmentPaid)
	require.NoError(t, err)
	assert.Equal(t, model.AccessFull, paid.AccessLevel)
	assert.Equal(t, float64(0), paid.ProgressPercentage)
}

func TestEnrollDefaultsToFree(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 3)

	enrollment, err := env.enrollment.Enroll(1, course.ID, "")
	require.NoError(t, err)

	assert.Equal(t, model.EnrollmentFree, enrollment.EnrollmentType)
	assert.Equal(t, model.AccessLimited, enrollment.AccessLevel)
}

func TestEnrollTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 3)

	first, err := env.enrollment.Enroll(1, course.ID, model.EnrollmentFree)
	require.NoError(t, err)

	// 第二次哪怕换类型也冲突，第一条记录不动
	_, err = env.enrollment.Enroll(1, course.ID, model.EnrollmentPaid)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)

	stored, err := env.enrollmentRepo.FindByUserAndCourse(1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, model.EnrollmentFree, stored.EnrollmentType)
	assert.Equal(t, model.AccessLimited, stored.AccessLevel)
}

func TestEnrollUnknownCourse(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.enrollment.Enroll(1, 999, model.EnrollmentFree)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestEnrollThenResolveRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 3)

	_, err := env.enrollment.Enroll(5, course.ID, model.EnrollmentPaid)
	require.NoError(t, err)

	// 选课后立刻解析要看到推导出的级别
	access := env.access.ResolveAccess(uintPtr(5), course.ID)
	assert.Equal(t, model.TierFull, access.Tier)
	assert.True(t, access.CanUseAI)
	assert.True(t, access.CanViewAnalytics)
}

func TestGetUserEnrollments(t *testing.T) {
	env := newTestEnv(t)
	c1 := env.seedCourse(t, 1)
	c2 := env.seedCourse(t, 1)

	_, err := env.enrollment.Enroll(3, c1.ID, model.EnrollmentFree)
	require.NoError(t, err)
	_, err = env.enrollment.Enroll(3, c2.ID, model.EnrollmentPaid)
	require.NoError(t, err)

	enrollments, err := env.enrollment.GetUserEnrollments(3)
	require.NoError(t, err)
	assert.Len(t, enrollments, 2)
}
