package handlers

import (
	"net/http"

	"authgate/internal/logger"
	"authgate/internal/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services    *service.Service
	log         *logger.Logger
	store       sessions.Store
	sessionName string
	routes      map[string]route
}

// handlerFunc is a route handler. A returned error is rendered by errorBoundary.
type handlerFunc func(c *gin.Context) error

// route is one entry of the declarative route table.
type route struct {
	Method        string
	Path          string
	RequiresLogin bool
	handle        handlerFunc
}

func routeKey(method, path string) string {
	return method + " " + path
}

// NewHandler constructs a new HTTP handler with dependencies. A nil store is
// replaced with a cookie store using random per-process keys.
func NewHandler(services *service.Service, log *logger.Logger, store sessions.Store, sessionName string) *Handler {
	if store == nil {
		store = mustRandomSessionStore()
	}
	if sessionName == "" {
		sessionName = DefaultSessionName
	}
	h := &Handler{
		services:    services,
		log:         log,
		store:       store,
		sessionName: sessionName,
		routes:      make(map[string]route),
	}
	for _, rt := range h.routeTable() {
		h.routes[routeKey(rt.Method, rt.Path)] = rt
	}
	return h
}

func (h *Handler) routeTable() []route {
	return []route{
		{Method: http.MethodGet, Path: "/", handle: h.showLogin},
		{Method: http.MethodGet, Path: "/index", RequiresLogin: true, handle: h.showIndex},
		{Method: http.MethodPost, Path: "/login", handle: h.login},
		{Method: http.MethodGet, Path: "/logout", handle: h.logout},
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(logger.GinMiddleware(h.log))
	router.Use(gin.Recovery())
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(limitRequestBody(maxRequestBodyBytes))
	router.Use(sessions.Sessions(h.sessionName, h.store))

	router.SetHTMLTemplate(pageTemplates)

	// order matters: the boundary must wrap the gate and the handlers
	router.Use(h.errorBoundary, h.loginGate)

	for _, rt := range h.routeTable() {
		router.Handle(rt.Method, rt.Path, h.wrap(rt.handle))
	}

	return router
}

func (h *Handler) wrap(fn handlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := fn(c); err != nil {
			_ = c.Error(err)
		}
	}
}
