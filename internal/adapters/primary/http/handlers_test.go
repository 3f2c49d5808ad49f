package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/owner-dashboard/internal/adapters/primary/http/middleware"
	"github.com/lorrc/owner-dashboard/internal/auth"
	"github.com/lorrc/owner-dashboard/internal/core/domain"
	apperrors "github.com/lorrc/owner-dashboard/internal/core/errors"
	"github.com/lorrc/owner-dashboard/internal/core/mocks"
	"github.com/lorrc/owner-dashboard/internal/core/ports"
)

const testCookieName = "dashboard_session"

type testServer struct {
	router         *chi.Mux
	sessions       *auth.TokenManager
	authService    *mocks.MockAuthService
	userService    *mocks.MockUserService
	projectService *mocks.MockProjectService
	cache          *mocks.MockListingCache
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	renderer, err := NewRenderer()
	require.NoError(t, err)

	sessions := auth.NewTokenManager("test-secret", time.Hour)
	authService := mocks.NewMockAuthService()
	userService := mocks.NewMockUserService()
	projectService := mocks.NewMockProjectService()
	cache := mocks.NewMockListingCache()

	authHandler := NewAuthHandler(authService, sessions, renderer, testCookieName, time.Hour, false)
	dashboardHandler := NewDashboardHandler(userService, projectService, cache, renderer)
	userHandler := NewUserHandler(userService, cache)
	projectHandler := NewProjectHandler(projectService, cache)

	router := chi.NewRouter()
	router.Get("/login", authHandler.ShowLogin)
	router.Post("/login", authHandler.Login)
	router.Post("/logout", authHandler.Logout)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(sessions, testCookieName))
		r.Get("/", dashboardHandler.Show)
		r.Post("/users", userHandler.Create)
		r.Post("/projects", projectHandler.Create)
		r.Post("/projects/update", projectHandler.Update)
		r.Post("/projects/delete", projectHandler.Delete)
	})

	return &testServer{
		router:         router,
		sessions:       sessions,
		authService:    authService,
		userService:    userService,
		projectService: projectService,
		cache:          cache,
	}
}

func (ts *testServer) sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	token, err := ts.sessions.Issue(domain.OwnerIdentity("owner@example.com"))
	require.NoError(t, err)
	return &http.Cookie{Name: testCookieName, Value: token}
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestRequireSession(t *testing.T) {
	t.Run("redirects unauthenticated mutation to login with callback", func(t *testing.T) {
		ts := newTestServer(t)

		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, postForm("/users", url.Values{"email": {"a@b.com"}}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login?callbackUrl=%2Fusers", rec.Header().Get("Location"))
		ts.userService.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("rejects garbage session token", func(t *testing.T) {
		ts := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: "not-a-token"})
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Contains(t, rec.Header().Get("Location"), "/login?")
	})
}

func TestLogin(t *testing.T) {
	t.Run("sets session cookie and follows callback on success", func(t *testing.T) {
		ts := newTestServer(t)
		identity := domain.OwnerIdentity("owner@example.com")
		ts.authService.On("Verify", mock.Anything, "owner@example.com", "secret").Return(identity, nil)

		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, postForm("/login", url.Values{
			"email":       {"owner@example.com"},
			"password":    {"secret"},
			"callbackUrl": {"/?projectSuccess=x"},
		}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?projectSuccess=x", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, testCookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)

		verified, err := ts.sessions.Verify(cookies[0].Value)
		require.NoError(t, err)
		assert.Equal(t, identity, verified)
	})

	t.Run("redirects back with error on bad credentials", func(t *testing.T) {
		ts := newTestServer(t)
		ts.authService.On("Verify", mock.Anything, "owner@example.com", "wrong").
			Return(domain.Identity{}, apperrors.ErrInvalidCredentials)

		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, postForm("/login", url.Values{
			"email":    {"owner@example.com"},
			"password": {"wrong"},
		}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		location := rec.Header().Get("Location")
		assert.Contains(t, location, "/login?error=")
		assert.Contains(t, location, url.QueryEscape(loginFailedMessage))
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("rejects offsite callback URLs", func(t *testing.T) {
		ts := newTestServer(t)
		identity := domain.OwnerIdentity("owner@example.com")
		ts.authService.On("Verify", mock.Anything, "owner@example.com", "secret").Return(identity, nil)

		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, postForm("/login", url.Values{
			"email":       {"owner@example.com"},
			"password":    {"secret"},
			"callbackUrl": {"//evil.example.com/"},
		}))

		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("renders login page with error banner", func(t *testing.T) {
		ts := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/login?error=Invalid+email+or+password", nil)
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid email or password")
	})
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, postForm("/logout", url.Values{}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

func TestDashboard(t *testing.T) {
	t.Run("renders listing and banners on cache miss", func(t *testing.T) {
		ts := newTestServer(t)
		user, err := domain.NewUser(domain.UserParams{Email: "alice@example.com", Name: "Alice"})
		require.NoError(t, err)
		project, err := domain.NewProject("Website redesign")
		require.NoError(t, err)

		ts.cache.On("Get", mock.Anything).Return("", false, nil)
		ts.cache.On("Set", mock.Anything, mock.Anything).Return(nil)
		ts.userService.On("ListUsers", mock.Anything).Return([]*domain.User{user}, nil)
		ts.projectService.On("ListProjects", mock.Anything).Return([]*domain.Project{project}, nil)

		req := httptest.NewRequest(http.MethodGet, "/?userSuccess=User+created.", nil)
		req.AddCookie(ts.sessionCookie(t))
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "owner@example.com")
		assert.Contains(t, body, "alice@example.com")
		assert.Contains(t, body, "Website redesign")
		assert.Contains(t, body, "User created.")
		ts.cache.AssertCalled(t, "Set", mock.Anything, mock.Anything)
	})

	t.Run("serves cached listing without hitting services", func(t *testing.T) {
		ts := newTestServer(t)
		ts.cache.On("Get", mock.Anything).Return("<section>cached listing</section>", true, nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(ts.sessionCookie(t))
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "cached listing")
		ts.userService.AssertNotCalled(t, "ListUsers", mock.Anything)
		ts.projectService.AssertNotCalled(t, "ListProjects", mock.Anything)
	})

	t.Run("treats cache read failure as a miss", func(t *testing.T) {
		ts := newTestServer(t)
		ts.cache.On("Get", mock.Anything).Return("", false, assert.AnError)
		ts.cache.On("Set", mock.Anything, mock.Anything).Return(nil)
		ts.userService.On("ListUsers", mock.Anything).Return([]*domain.User{}, nil)
		ts.projectService.On("ListProjects", mock.Anything).Return([]*domain.Project{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(ts.sessionCookie(t))
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "No users yet.")
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("redirects with success message and invalidates cache", func(t *testing.T) {
		ts := newTestServer(t)
		user, err := domain.NewUser(domain.UserParams{Email: "alice@example.com"})
		require.NoError(t, err)
		ts.userService.On("CreateUser", mock.Anything, domain.UserParams{Email: "alice@example.com", Name: "Alice"}).
			Return(user, nil)
		ts.cache.On("Invalidate", mock.Anything).Return(nil)

		req := postForm("/users", url.Values{"email": {"alice@example.com"}, "name": {"Alice"}})
		req.AddCookie(ts.sessionCookie(t))
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?userSuccess=User+created.", rec.Header().Get("Location"))
		ts.cache.AssertCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("reports duplicate email with its specific message", func(t *testing.T) {
		ts := newTestServer(t)
		ts.userService.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrEmailTaken)

		req := postForm("/users", url.Values{"email": {"alice@example.com"}})
		req.AddCookie(ts.sessionCookie(t))
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?userError="+url.QueryEscape("A user with this email already exists."), rec.Header().Get("Location"))
		ts.cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("reports unexpected failures with a generic message", func(t *testing.T) {
		ts := newTestServer(t)
		ts.userService.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		req := postForm("/users", url.Values{"email": {"alice@example.com"}})
		req.AddCookie(ts.sessionCookie(t))
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?userError="+url.QueryEscape("Could not create the user. Please try again."), rec.Header().Get("Location"))
	})
}

func TestProjectMutations(t *testing.T) {
	t.Run("create redirects with success message", func(t *testing.T) {
		ts := newTestServer(t)
		project, err := domain.NewProject("Launch plan")
		require.NoError(t, err)
		ts.projectService.On("CreateProject", mock.Anything, "Launch plan").Return(project, nil)
		ts.cache.On("Invalidate", mock.Anything).Return(nil)

		req := postForm("/projects", url.Values{"title": {"Launch plan"}})
		req.AddCookie(ts.sessionCookie(t))
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?projectSuccess=Project+created.", rec.Header().Get("Location"))
	})

	t.Run("create rejects empty title", func(t *testing.T) {
		ts := newTestServer(t)
		ts.projectService.On("CreateProject", mock.Anything, "").
			Return(nil, apperrors.ErrTitleRequired)

		req := postForm("/projects", url.Values{"title": {""}})
		req.AddCookie(ts.sessionCookie(t))
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)

		assert.Equal(t, "/?projectError=Title+is+required.", rec.Header().Get("Location"))
	})

	t.Run("update reports missing project", func(t *testing.T) {
		ts := newTestServer(t)
		id := "7bb4bd9f-7799-4d42-9b5f-3cf5254b7891"
		ts.projectService.On("UpdateProject", mock.Anything, ports.UpdateProjectParams{ID: id, Title: "New title"}).
			Return(nil, apperrors.ErrProjectNotFound)

		req := postForm("/projects/update", url.Values{"id": {id}, "title": {"New title"}})
		req.AddCookie(ts.sessionCookie(t))
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?projectError="+url.QueryEscape("Project not found. It may have already been deleted."), rec.Header().Get("Location"))
	})

	t.Run("delete redirects with success message and invalidates cache", func(t *testing.T) {
		ts := newTestServer(t)
		id := "7bb4bd9f-7799-4d42-9b5f-3cf5254b7891"
		ts.projectService.On("DeleteProject", mock.Anything, id).Return(nil)
		ts.cache.On("Invalidate", mock.Anything).Return(nil)

		req := postForm("/projects/delete", url.Values{"id": {id}})
		req.AddCookie(ts.sessionCookie(t))
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?projectSuccess=Project+deleted.", rec.Header().Get("Location"))
		ts.cache.AssertCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("delete rejects malformed id", func(t *testing.T) {
		ts := newTestServer(t)
		ts.projectService.On("DeleteProject", mock.Anything, "nope").
			Return(apperrors.ErrIDInvalid)

		req := postForm("/projects/delete", url.Values{"id": {"nope"}})
		req.AddCookie(ts.sessionCookie(t))
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)

		assert.Equal(t, "/?projectError=Invalid+project+id.", rec.Header().Get("Location"))
	})
}

func TestSafeCallbackURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty falls back to root", "", "/"},
		{"local path passes through", "/projects", "/projects"},
		{"local path with query passes through", "/?userSuccess=x", "/?userSuccess=x"},
		{"absolute URL rejected", "https://evil.example.com", "/"},
		{"protocol-relative URL rejected", "//evil.example.com", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, safeCallbackURL(tt.raw))
		})
	}
}
