package controller

import (
	"bytes"
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/service"
	"coursehub_backend/internal/util"
	"coursehub_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

type apiEnv struct {
	router     *gin.Engine
	db         *gorm.DB
	enrollment *service.EnrollmentService
	course     *model.Course
}

// 最小化的测试路由：fakeAuth 模拟 TryAuth/Auth 注入的用户
func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Course{}, &model.CourseModule{}, &model.Enrollment{}))

	courseRepo := repository.NewCourseRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	accessService := service.NewAccessService(enrollmentRepo)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo)

	course := &model.Course{Title: "测试课程", Published: true}
	require.NoError(t, courseRepo.Create(course))
	for i := 0; i < 5; i++ {
		require.NoError(t, moduleRepo.Create(&model.CourseModule{
			CourseID: course.ID,
			Title:    fmt.Sprintf("第%d章", i+1),
		}))
	}

	accessController := NewAccessController(accessService)
	enrollmentController := NewEnrollmentController(enrollmentService)

	router := gin.New()
	router.GET("/api/courses/:id/access", accessController.GetAccess)
	router.GET("/api/courses/:id/modules/:index/access", accessController.CheckModuleAccess)
	router.POST("/api/courses/:id/enroll", fakeAuth(8), enrollmentController.Enroll)

	return &apiEnv{
		router:     router,
		db:         db,
		enrollment: enrollmentService,
		course:     course,
	}
}

func fakeAuth(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: userID, Role: model.Student})
		c.Next()
	}
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetAccessGuest(t *testing.T) {
	env := newAPIEnv(t)

	w := doRequest(t, env.router, "GET", fmt.Sprintf("/api/courses/%d/access?attemptsUsed=0", env.course.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data AccessSnapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, model.TierGuest, resp.Data.Access.Tier)
	assert.False(t, resp.Data.Access.CanUseAI)
	require.NotNil(t, resp.Data.Quota)
	assert.False(t, resp.Data.Quota.CanUse)
	assert.Equal(t, "registration required", resp.Data.Quota.Reason)
}

func TestCheckModuleAccessGuestWindow(t *testing.T) {
	env := newAPIEnv(t)

	cases := []struct {
		index   int
		canView bool
	}{
		{0, true}, {2, true}, {3, false}, {9, false},
	}

	for _, tc := range cases {
		w := doRequest(t, env.router, "GET",
			fmt.Sprintf("/api/courses/%d/modules/%d/access", env.course.ID, tc.index), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				CanView bool `json:"canView"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tc.canView, resp.Data.CanView, "index %d", tc.index)
	}
}

func TestEnrollEndpointConflict(t *testing.T) {
	env := newAPIEnv(t)
	path := fmt.Sprintf("/api/courses/%d/enroll", env.course.ID)

	w := doRequest(t, env.router, "POST", path, EnrollRequest{Type: "free"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, env.router, "POST", path, EnrollRequest{Type: "free"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEnrollEndpointUnknownCourse(t *testing.T) {
	env := newAPIEnv(t)

	w := doRequest(t, env.router, "POST", "/api/courses/99999/enroll", EnrollRequest{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
