package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"authgate/internal/models"
	"authgate/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	user *models.User
	err  error

	calls        int
	lastUsername string
	lastPassword string
}

func (m *mockAuth) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	m.calls++
	m.lastUsername = username
	m.lastPassword = password
	return m.user, m.err
}

// ---- Shared Test Helpers ----

var (
	testAuthKey       = []byte("0123456789abcdef0123456789abcdef")
	testEncryptionKey = []byte("abcdef0123456789abcdef0123456789")
)

func newTestStore() sessions.Store {
	store := cookie.NewStore(testAuthKey, testEncryptionKey)
	store.Options(sessions.Options{Path: "/", HttpOnly: true})
	return store
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, newTestStore(), DefaultSessionName)
	return h.InitRoutes()
}

func loginBody(username, password string) *strings.Reader {
	form := url.Values{}
	form.Set("login_user", username)
	form.Set("login_pass", password)
	return strings.NewReader(form.Encode())
}

func formHeader() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/x-www-form-urlencoded")
	return h
}

// testClient replays the session cookie between requests like a browser.
type testClient struct {
	router  http.Handler
	cookies map[string]*http.Cookie
}

func newTestClient(router http.Handler) *testClient {
	return &testClient{router: router, cookies: make(map[string]*http.Cookie)}
}

func (tc *testClient) do(method, path string, body io.Reader, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	for k, v := range header {
		req.Header[k] = v
	}
	for _, ck := range tc.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		tc.cookies[ck.Name] = ck
	}
	return w
}

func (tc *testClient) get(path string) *httptest.ResponseRecorder {
	return tc.do(http.MethodGet, path, nil, nil)
}

func (tc *testClient) login(username, password string) *httptest.ResponseRecorder {
	return tc.do(http.MethodPost, "/login", loginBody(username, password), formHeader())
}
