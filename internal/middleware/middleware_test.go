package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/qa-forum-api/internal/authz"
	"github.com/yukikurage/qa-forum-api/internal/constants"
	"github.com/yukikurage/qa-forum-api/internal/logging"
	"github.com/yukikurage/qa-forum-api/internal/models"
	"github.com/yukikurage/qa-forum-api/internal/services"
)

type fakeUsers map[uint64]*models.User

func (f fakeUsers) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, services.ErrUserNotFound
}

type fakeQuestions map[uint64]*models.Question

func (f fakeQuestions) FindOneByID(ctx context.Context, id uint64) (*models.Question, error) {
	if q, ok := f[id]; ok {
		return q, nil
	}
	return nil, services.ErrQuestionNotFound
}

type fakeAnswers map[uint64]*models.Answer

func (f fakeAnswers) FindOneByID(ctx context.Context, id uint64) (*models.Answer, error) {
	if a, ok := f[id]; ok {
		return a, nil
	}
	return nil, services.ErrAnswerNotFound
}

func ptr(v uint64) *uint64 { return &v }

var (
	asker    = &models.User{ID: 1, Roles: []models.Role{models.RoleUser}}
	answerer = &models.User{ID: 2, Roles: []models.Role{models.RoleUser}}
	admin    = &models.User{ID: 3, Roles: []models.Role{models.RoleAdmin}}

	question = &models.Question{ID: 10, AuthorID: ptr(asker.ID)}
	answer   = &models.Answer{ID: 20, QuestionID: question.ID, AuthorID: ptr(answerer.ID), Question: question}

	users     = fakeUsers{asker.ID: asker, answerer.ID: answerer, admin.ID: admin}
	questions = fakeQuestions{question.ID: question}
	answers   = fakeAnswers{answer.ID: answer}
)

// newEngine stores the X-User header as the session user before LoadActor runs.
func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("test-secret"))))
	r.Use(func(c *gin.Context) {
		if raw := c.GetHeader("X-User"); raw != "" {
			id, _ := strconv.ParseUint(raw, 10, 64)
			sessions.Default(c).Set(constants.ContextKeyUserID, id)
		}
		c.Next()
	})
	r.Use(LoadActor(users, logging.Discard()))
	return r
}

func ok(c *gin.Context) {
	c.Status(http.StatusOK)
}

func do(r *gin.Engine, method, target string, userID uint64) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	if userID != 0 {
		req.Header.Set("X-User", strconv.FormatUint(userID, 10))
	}
	r.ServeHTTP(w, req)
	return w
}

func TestLoadActorAndRequireAuth(t *testing.T) {
	r := newEngine()
	r.GET("/me", RequireAuth(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": GetActor(c).ID, "session": userID})
	})
	r.GET("/anyone", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"anonymous": GetActor(c) == nil})
	})

	w := do(r, http.MethodGet, "/me", asker.ID)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"session":1}`, w.Body.String())

	w = do(r, http.MethodGet, "/me", 0)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/anyone", 0)
	assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())
}

func TestLoadActor_StaleSessionIsAnonymous(t *testing.T) {
	r := newEngine()
	r.GET("/anyone", func(c *gin.Context) {
		_, hasID := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"anonymous": GetActor(c) == nil, "has_id": hasID})
	})

	w := do(r, http.MethodGet, "/anyone", 404)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"anonymous":true,"has_id":false}`, w.Body.String())
}

func TestRequireQuestionAccess(t *testing.T) {
	r := newEngine()
	r.PUT("/question/:id", RequireQuestionAccess(questions, authz.ActionEdit), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetQuestion(c).ID})
	})

	tests := []struct {
		name   string
		target string
		user   uint64
		want   int
	}{
		{"author", "/question/10", asker.ID, http.StatusOK},
		{"admin", "/question/10", admin.ID, http.StatusOK},
		{"other user", "/question/10", answerer.ID, http.StatusForbidden},
		{"anonymous", "/question/10", 0, http.StatusUnauthorized},
		{"missing", "/question/99", asker.ID, http.StatusNotFound},
		{"bad id", "/question/abc", asker.ID, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPut, tt.target, tt.user)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireAnswerAccess(t *testing.T) {
	r := newEngine()
	r.PUT("/answer/:id", RequireAnswerAccess(answers, authz.ActionEdit), ok)
	r.PUT("/answer/:id/mark", RequireAnswerAccess(answers, authz.ActionAward), ok)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPut, "/answer/20", answerer.ID).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPut, "/answer/20", asker.ID).Code)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPut, "/answer/20/mark", asker.ID).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPut, "/answer/20/mark", admin.ID).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPut, "/answer/20/mark", answerer.ID).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPut, "/answer/20/mark", 0).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/answer/21/mark", admin.ID).Code)
}

func TestLoadQuestion_CustomParam(t *testing.T) {
	r := newEngine()
	r.POST("/answer/:question_id", LoadQuestion(questions, "question_id"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"question": GetQuestion(c).ID})
	})

	w := do(r, http.MethodPost, "/answer/10", 0)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"question":10}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/answer/11", 0).Code)
}

func TestRequireAdmin(t *testing.T) {
	r := newEngine()
	r.DELETE("/categories/:id", RequireAdmin(), ok)

	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/categories/1", admin.ID).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodDelete, "/categories/1", asker.ID).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodDelete, "/categories/1", 0).Code)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(metrics.Middleware())
	r.GET("/health", ok)

	do(r, http.MethodGet, "/health", 0)
	do(r, http.MethodGet, "/health", 0)
	do(r, http.MethodGet, "/nowhere", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.requests.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues("GET", "unmatched", "404")))

	count, err := testutil.GatherAndCount(reg, "forum_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
