package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/qa-forum-api/internal/constants"
	"github.com/yukikurage/qa-forum-api/internal/dto"
	apierrors "github.com/yukikurage/qa-forum-api/internal/errors"
	"github.com/yukikurage/qa-forum-api/internal/logging"
	"github.com/yukikurage/qa-forum-api/internal/middleware"
	"github.com/yukikurage/qa-forum-api/internal/repository"
	"github.com/yukikurage/qa-forum-api/internal/services"
	"github.com/yukikurage/qa-forum-api/internal/testutil"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	authService := services.NewAuthService(repository.NewUserRepository(db), logging.Discard())
	handler := NewAuthHandler(authService)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.Use(middleware.LoadActor(authService, logging.Discard()))
	r.POST("/api/auth/signup", handler.Signup)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/logout", handler.Logout)
	r.GET("/api/auth/me", middleware.RequireAuth(), handler.GetCurrentUser)
	r.PUT("/api/auth/me", middleware.RequireAuth(), handler.UpdateProfile)

	return authTestEnv{
		db:          db,
		router:      r,
		authService: authService,
	}
}

func (env authTestEnv) do(t *testing.T, method, path string, payload any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, env.router, method, path, payload, cookies)
}

// serve sends payload as JSON with the given cookies attached.
func serve(t *testing.T, r http.Handler, method, path string, payload any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "newuser@example.com",
		"nickname": "newuser",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	response := decode[dto.UserDTO](t, w)
	assert.Equal(t, "newuser@example.com", response.Email)
	assert.False(t, response.IsAdmin)

	w = env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "NewUser@example.com",
		"nickname": "again",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apierrors.ErrCodeAlreadyExists, decode[apierrors.APIError](t, w).Code)
}

func TestAuthHandler_SignupRejectsShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "short@example.com",
		"nickname": "short",
		"password": "abc",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apierrors.ErrCodeInvalidInput, decode[apierrors.APIError](t, w).Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Signup(t.Context(), services.SignupInput{
		Email:    "existing@example.com",
		Nickname: "existing",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "wrong-password",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apierrors.ErrCodeInvalidCredentials, decode[apierrors.APIError](t, w).Code)

	w = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "existing@example.com", decode[dto.UserDTO](t, w).Email)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")

	w = env.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "existing", decode[dto.UserDTO](t, w).Nickname)
}

func TestAuthHandler_GetCurrentUserRequiresSession(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/auth/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupAuthTestEnv(t)
	cookies := signupAndLogin(t, env.router, env.authService, "leaving@example.com")

	w := env.do(t, http.MethodPost, "/api/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/auth/me", nil, w.Result().Cookies())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	env := setupAuthTestEnv(t)
	cookies := signupAndLogin(t, env.router, env.authService, "profile@example.com")

	w := env.do(t, http.MethodPut, "/api/auth/me", map[string]string{
		"nickname": "renamed",
		"password": "another-secret",
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "renamed", decode[dto.UserDTO](t, w).Nickname)

	_, err := env.authService.Login(t.Context(), services.LoginInput{
		Email:    "profile@example.com",
		Password: "another-secret",
	})
	assert.NoError(t, err)
}

// signupAndLogin registers email with a fixed password and returns the session cookies.
func signupAndLogin(t *testing.T, r http.Handler, auth *services.AuthService, email string) []*http.Cookie {
	t.Helper()

	_, err := auth.Signup(t.Context(), services.SignupInput{
		Email:    email,
		Nickname: email,
		Password: "supersecret",
	})
	require.NoError(t, err)
	return login(t, r, email)
}

func login(t *testing.T, r http.Handler, email string) []*http.Cookie {
	t.Helper()

	w := serve(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}
