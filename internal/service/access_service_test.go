package service

import (
	"coursehub_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAccessGuest(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 5)

	access := env.access.ResolveAccess(nil, course.ID)

	assert.Equal(t, model.TierGuest, access.Tier)
	assert.False(t, access.CanViewAnalytics)
	assert.False(t, access.CanUseAI)
	assert.Nil(t, access.EnrollmentType)
}

func TestResolveAccessRegisteredWithoutEnrollment(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 5)

	// 登录但没选课，结果和游客完全一致
	access := env.access.ResolveAccess(uintPtr(42), course.ID)

	assert.Equal(t, model.TierGuest, access.Tier)
	assert.False(t, access.CanViewAnalytics)
	assert.False(t, access.CanUseAI)
	assert.Nil(t, access.EnrollmentType)
}

func TestResolveAccessFreeEnrollment(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 5)

	_, err := env.enrollment.Enroll(7, course.ID, model.EnrollmentFree)
	require.NoError(t, err)

	access := env.access.ResolveAccess(uintPtr(7), course.ID)

	assert.Equal(t, model.TierLimited, access.Tier)
	assert.False(t, access.CanViewAnalytics)
	assert.False(t, access.CanUseAI)
	require.NotNil(t, access.EnrollmentType)
	assert.Equal(t, model.EnrollmentFree, *access.EnrollmentType)
}

func TestResolveAccessPaidEnrollment(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 5)

	_, err := env.enrollment.Enroll(7, course.ID, model.EnrollmentPaid)
	require.NoError(t, err)

	access := env.access.ResolveAccess(uintPtr(7), course.ID)

	assert.Equal(t, model.TierFull, access.Tier)
	assert.True(t, access.CanViewAnalytics)
	assert.True(t, access.CanUseAI)
	require.NotNil(t, access.EnrollmentType)
	assert.Equal(t, model.EnrollmentPaid, *access.EnrollmentType)
}

func TestResolveAccessScopedToCourse(t *testing.T) {
	env := newTestEnv(t)
	enrolled := env.seedCourse(t, 3)
	other := env.seedCourse(t, 3)

	_, err := env.enrollment.Enroll(7, enrolled.ID, model.EnrollmentPaid)
	require.NoError(t, err)

	// 选课只对对应课程生效
	assert.Equal(t, model.TierFull, env.access.ResolveAccess(uintPtr(7), enrolled.ID).Tier)
	assert.Equal(t, model.TierGuest, env.access.ResolveAccess(uintPtr(7), other.ID).Tier)
}

func TestCanViewModuleGuestPreviewWindow(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 10)

	// 游客只能看前3章（0起算），和课程实际章节数无关
	for idx := 0; idx < 3; idx++ {
		assert.True(t, env.access.CanViewModule(nil, course.ID, idx), "index %d", idx)
	}
	for _, idx := range []int{3, 4, 7, 100} {
		assert.False(t, env.access.CanViewModule(nil, course.ID, idx), "index %d", idx)
	}
}

func TestCanViewModuleEnrolledUnrestricted(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 10)

	_, err := env.enrollment.Enroll(1, course.ID, model.EnrollmentFree)
	require.NoError(t, err)
	_, err = env.enrollment.Enroll(2, course.ID, model.EnrollmentPaid)
	require.NoError(t, err)

	for _, idx := range []int{0, 2, 3, 50} {
		assert.True(t, env.access.CanViewModule(uintPtr(1), course.ID, idx), "limited index %d", idx)
		assert.True(t, env.access.CanViewModule(uintPtr(2), course.ID, idx), "full index %d", idx)
	}
}

func TestCanUseAIFeedbackGuest(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 3)

	decision := env.access.CanUseAIFeedback(nil, course.ID, 0)

	assert.False(t, decision.CanUse)
	assert.Equal(t, "registration required", decision.Reason)
	assert.Nil(t, decision.AttemptsRemaining)
}

func TestCanUseAIFeedbackLimitedQuota(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 3)

	_, err := env.enrollment.Enroll(9, course.ID, model.EnrollmentFree)
	require.NoError(t, err)

	cases := []struct {
		attemptsUsed  int
		wantCanUse    bool
		wantRemaining int
		wantReason    string
	}{
		{attemptsUsed: 0, wantCanUse: true, wantRemaining: 2},
		{attemptsUsed: 1, wantCanUse: true, wantRemaining: 1},
		{attemptsUsed: 2, wantCanUse: false, wantRemaining: 0, wantReason: "trial exhausted"},
		// 超额也不会出现负数
		{attemptsUsed: 3, wantCanUse: false, wantRemaining: 0, wantReason: "trial exhausted"},
	}

	for _, tc := range cases {
		decision := env.access.CanUseAIFeedback(uintPtr(9), course.ID, tc.attemptsUsed)

		assert.Equal(t, tc.wantCanUse, decision.CanUse, "attemptsUsed=%d", tc.attemptsUsed)
		require.NotNil(t, decision.AttemptsRemaining, "attemptsUsed=%d", tc.attemptsUsed)
		assert.Equal(t, tc.wantRemaining, *decision.AttemptsRemaining, "attemptsUsed=%d", tc.attemptsUsed)
		assert.Equal(t, tc.wantReason, decision.Reason, "attemptsUsed=%d", tc.attemptsUsed)
	}
}

func TestCanUseAIFeedbackFullUnlimited(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 3)

	_, err := env.enrollment.Enroll(9, course.ID, model.EnrollmentPaid)
	require.NoError(t, err)

	// full 不限次，剩余次数字段不下发
	decision := env.access.CanUseAIFeedback(uintPtr(9), course.ID, 10000)

	assert.True(t, decision.CanUse)
	assert.Empty(t, decision.Reason)
	assert.Nil(t, decision.AttemptsRemaining)
}

func TestResolveAccessLookupFailureDegradesToGuest(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, 3)

	_, err := env.enrollment.Enroll(9, course.ID, model.EnrollmentPaid)
	require.NoError(t, err)

	// 把表删掉模拟存储故障：读路径降级为游客，不向上抛错
	require.NoError(t, env.db.Migrator().DropTable(&model.Enrollment{}))

	access := env.access.ResolveAccess(uintPtr(9), course.ID)
	assert.Equal(t, model.TierGuest, access.Tier)
	assert.False(t, access.CanUseAI)
}
