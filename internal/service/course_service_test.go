package service

import (
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCourseDetailGuestStripsLockedContent(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 5)

	detail, err := env.course.GetCourseDetail(nil, course.ID)
	require.NoError(t, err)

	assert.Equal(t, model.TierGuest, detail.Access.Tier)
	require.Len(t, detail.Modules, 5)

	for i, view := range detail.Modules {
		assert.Equal(t, i, view.OrderIndex)
		if i < util.PreviewModuleCount {
			assert.True(t, view.Viewable, "index %d", i)
			assert.NotEmpty(t, view.Content, "index %d", i)
		} else {
			// 标题保留做预览列表，正文不下发
			assert.False(t, view.Viewable, "index %d", i)
			assert.Empty(t, view.Content, "index %d", i)
			assert.NotEmpty(t, view.Title, "index %d", i)
		}
	}
}

func TestGetCourseDetailEnrolledSeesEverything(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 5)

	_, err := env.enrollment.Enroll(4, course.ID, model.EnrollmentFree)
	require.NoError(t, err)

	detail, err := env.course.GetCourseDetail(uintPtr(4), course.ID)
	require.NoError(t, err)

	assert.Equal(t, model.TierLimited, detail.Access.Tier)
	for i, view := range detail.Modules {
		assert.True(t, view.Viewable, "index %d", i)
		assert.NotEmpty(t, view.Content, "index %d", i)
	}
}

func TestGetCourseDetailUnknownCourse(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.course.GetCourseDetail(nil, 12345)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestAddModuleAssignsNextOrderIndex(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 0)

	first, err := env.course.AddModule(course.ID, CreateModuleRequest{Title: "入门"})
	require.NoError(t, err)
	second, err := env.course.AddModule(course.ID, CreateModuleRequest{Title: "进阶"})
	require.NoError(t, err)

	assert.Equal(t, 0, first.OrderIndex)
	assert.Equal(t, 1, second.OrderIndex)

	_, err = env.course.AddModule(999, CreateModuleRequest{Title: "孤儿章节"})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestDeleteCourse(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 1)

	require.NoError(t, env.course.DeleteCourse(course.ID))
	assert.ErrorIs(t, env.course.DeleteCourse(course.ID), util.ErrCourseNotFound)
}
