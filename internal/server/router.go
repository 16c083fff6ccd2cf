package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loykin/hypnoctl/internal/service"
)

// Router provides embeddable HTTP handlers for driving one supervisor.
// Endpoints:
//
//	GET  {basePath}/status
//	POST {basePath}/start
//	POST {basePath}/stop
//	POST {basePath}/reload
//	GET  {basePath}/timeouts
//	GET  {basePath}/commands
//	POST {basePath}/commands/:name
//
// basePath may be empty or start with '/'; no trailing slash.
type Router struct {
	ctrl     service.Controller
	basePath string
}

// NewRouter constructs a new Router with configurable basePath.
// Example basePath: "/abc" results in /abc/status, /abc/start, ...
func NewRouter(ctrl service.Controller, basePath string) *Router {
	return &Router{ctrl: ctrl, basePath: sanitizeBase(basePath)}
}

// Handler returns an http.Handler powered by gin that can be mounted in any server/mux.
func (r *Router) Handler() http.Handler {
	g := gin.New()
	g.Use(gin.Recovery())
	group := g.Group(r.basePath)
	group.GET("/status", r.handleStatus)
	group.POST("/start", r.handleStart)
	group.POST("/stop", r.handleStop)
	group.POST("/reload", r.handleReload)
	group.GET("/timeouts", r.handleTimeouts)
	group.GET("/commands", r.handleCommands)
	group.POST("/commands/:name", r.handleDispatch)
	return g
}

// NewServer starts a standalone HTTP server on addr using this router.
// Shut it down via the returned http.Server.
func NewServer(addr, basePath string, ctrl service.Controller) (*http.Server, error) {
	r := NewRouter(ctrl, basePath)
	server := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() { _ = server.ListenAndServe() }()
	return server, nil
}

// --- Handlers ---

type errorResp struct {
	Error string `json:"error"`
}

type resultResp struct {
	State string `json:"state"`
	PID   int    `json:"pid,omitempty"`
	Msg   string `json:"msg,omitempty"`
}

func toResp(res service.Result) resultResp {
	return resultResp{State: res.State.String(), PID: res.PID, Msg: res.Msg}
}

func (r *Router) respond(c *gin.Context, res service.Result, err error) {
	if err != nil {
		writeJSON(c, http.StatusInternalServerError, errorResp{Error: err.Error()})
		return
	}
	writeJSON(c, http.StatusOK, toResp(res))
}

func (r *Router) handleStatus(c *gin.Context) {
	res, err := r.ctrl.Status()
	r.respond(c, res, err)
}

func (r *Router) handleStart(c *gin.Context) {
	res, err := r.ctrl.Start()
	r.respond(c, res, err)
}

func (r *Router) handleStop(c *gin.Context) {
	res, err := r.ctrl.Stop()
	r.respond(c, res, err)
}

func (r *Router) handleReload(c *gin.Context) {
	res, err := r.ctrl.Reload()
	r.respond(c, res, err)
}

func (r *Router) handleTimeouts(c *gin.Context) {
	writeJSON(c, http.StatusOK, r.ctrl.TimeoutOptions())
}

func (r *Router) handleCommands(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"commands": r.ctrl.CustomCommandNames()})
}

func (r *Router) handleDispatch(c *gin.Context) {
	name := c.Param("name")
	res, err := r.ctrl.DispatchCustomCommand(c.Request.Context(), name)
	if errors.Is(err, service.ErrUnknownCommand) {
		writeJSON(c, http.StatusNotFound, errorResp{Error: err.Error()})
		return
	}
	r.respond(c, res, err)
}
