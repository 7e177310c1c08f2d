package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/qa-forum-api/internal/cache"
	"github.com/yukikurage/qa-forum-api/internal/config"
	"github.com/yukikurage/qa-forum-api/internal/dto"
	"github.com/yukikurage/qa-forum-api/internal/logging"
	"github.com/yukikurage/qa-forum-api/internal/repository"
	"github.com/yukikurage/qa-forum-api/internal/services"
	"github.com/yukikurage/qa-forum-api/internal/testutil"
	"gorm.io/gorm"
)

type client struct {
	t       *testing.T
	router  http.Handler
	cookies []*http.Cookie
}

func (c *client) do(method, path string, payload any) *httptest.ResponseRecorder {
	c.t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(c.t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return w
}

func newTestRouter(t *testing.T, lookupCache *cache.Store) (*gin.Engine, *gorm.DB, *prometheus.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	registry := prometheus.NewRegistry()
	r := NewRouter(Deps{
		DB:       db,
		Sessions: cookie.NewStore([]byte("test-secret")),
		Logger:   logging.Discard(),
		Registry: registry,
		Cache:    lookupCache,
		PageSize: 10,
	})
	return r, db, registry
}

func TestRouter_ForumFlow(t *testing.T) {
	r, db, _ := newTestRouter(t, nil)

	auth := services.NewAuthService(repository.NewUserRepository(db), logging.Discard())
	_, err := auth.CreateAdmin(t.Context(), services.SignupInput{
		Email:    "admin@example.com",
		Nickname: "admin",
		Password: "supersecret",
	})
	require.NoError(t, err)

	admin := &client{t: t, router: r}
	w := admin.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com", "password": "supersecret"})
	require.Equal(t, http.StatusOK, w.Code)

	w = admin.do(http.MethodPost, "/api/categories", map[string]string{"title": "Databases"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var category dto.CategoryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))

	w = admin.do(http.MethodPost, "/api/tags", map[string]string{"title": "postgres"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var tag dto.TagDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tag))

	asker := &client{t: t, router: r}
	w = asker.do(http.MethodPost, "/api/auth/signup", map[string]string{
		"email": "asker@example.com", "nickname": "asker", "password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = asker.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "asker@example.com", "password": "supersecret"})
	require.Equal(t, http.StatusOK, w.Code)

	w = asker.do(http.MethodPost, "/api/question", map[string]any{
		"title":       "How do I index a JSON column?",
		"body":        "Details inside.",
		"category_id": category.ID,
		"tag_ids":     []uint64{tag.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var question dto.QuestionDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &question))
	require.NotNil(t, question.Author)
	assert.Equal(t, "asker", question.Author.Nickname)

	visitor := &client{t: t, router: r}
	w = visitor.do(http.MethodPost, fmt.Sprintf("/api/answer/%d", question.ID), map[string]string{"body": "Use a GIN index."})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var answer dto.AnswerDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &answer))
	assert.Nil(t, answer.AuthorID)

	w = visitor.do(http.MethodPut, fmt.Sprintf("/api/answer/%d/mark", answer.ID), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = asker.do(http.MethodPut, fmt.Sprintf("/api/answer/%d/mark", answer.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = visitor.do(http.MethodGet, fmt.Sprintf("/api/question/%d", question.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail dto.QuestionDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Answers.Items, 1)
	assert.True(t, detail.Answers.Items[0].IsBestAnswer)
	require.Len(t, detail.Question.Tags, 1)
	assert.Equal(t, "postgres", detail.Question.Tags[0].Slug)

	w = asker.do(http.MethodDelete, fmt.Sprintf("/api/categories/%d", category.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = admin.do(http.MethodDelete, fmt.Sprintf("/api/categories/%d", category.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = asker.do(http.MethodDelete, fmt.Sprintf("/api/question/%d", question.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = visitor.do(http.MethodGet, fmt.Sprintf("/api/answer/%d", answer.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = admin.do(http.MethodDelete, fmt.Sprintf("/api/categories/%d", category.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	r, _, _ := newTestRouter(t, nil)
	c := &client{t: t, router: r}

	w := c.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	c.do(http.MethodGet, "/api/question", nil)
	c.do(http.MethodGet, "/nowhere", nil)

	w = c.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `forum_http_requests_total{method="GET",route="/api/question",status="200"} 1`)
	assert.Contains(t, body, `forum_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.True(t, strings.Contains(body, "forum_http_request_duration_seconds"))
}

func TestRouter_CachedCategoryLookups(t *testing.T) {
	mr := miniredis.RunT(t)
	store := cache.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 0, logging.Discard())
	r, db, _ := newTestRouter(t, store)

	category := testutil.CreateCategory(t, db, "Networking")
	c := &client{t: t, router: r}

	w := c.do(http.MethodGet, fmt.Sprintf("/api/categories/%d", category.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mr.Exists(cache.CategoryKey(category.ID)))

	// Served from the cache even though the row changed underneath.
	require.NoError(t, db.Model(category).Update("title", "Renamed").Error)
	w = c.do(http.MethodGet, fmt.Sprintf("/api/categories/%d", category.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cached dto.CategoryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cached))
	assert.Equal(t, "Networking", cached.Title)
}

func TestNewSessionStore(t *testing.T) {
	cfg := &config.Config{SessionStore: "cookie", SessionSecret: "secret"}
	store, err := NewSessionStore(cfg)
	require.NoError(t, err)
	assert.NotNil(t, store)

	cfg.SessionStore = "memcached"
	_, err = NewSessionStore(cfg)
	assert.Error(t, err)
}
