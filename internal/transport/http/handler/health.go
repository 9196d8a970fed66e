package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"edubot/internal/bootstrap"
	mysqlClient "edubot/internal/platform/mysql"
	rabbitmqClient "edubot/internal/platform/rabbitmq"
	redisClient "edubot/internal/platform/redis"
)

const timeLayout = time.RFC3339

type dependencyCheck struct {
	name  string
	check func(ctx context.Context) error
}

type HealthHandler struct {
	name      string
	env       string
	startedAt time.Time
	checks    []dependencyCheck
	index     func() (chunks int, builtAt time.Time)
}

type dependencyStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	h := &HealthHandler{
		name:      app.Config.App.Name,
		env:       app.Config.App.Env,
		startedAt: app.StartedAt,
		checks:    platformChecks(app),
		index: func() (int, time.Time) {
			snap := app.Index.Snapshot()
			return snap.Len(), snap.BuiltAt()
		},
	}
	return h
}

// platformChecks skips Redis when the app runs without it.
func platformChecks(app *bootstrap.App) []dependencyCheck {
	checks := []dependencyCheck{
		{name: "mysql", check: func(ctx context.Context) error { return mysqlClient.Ping(ctx, app.MySQL) }},
	}
	if app.Redis != nil {
		checks = append(checks, dependencyCheck{name: "redis", check: func(ctx context.Context) error { return redisClient.Ping(ctx, app.Redis) }})
	}
	return append(checks, dependencyCheck{name: "rabbitmq", check: func(ctx context.Context) error { return rabbitmqClient.Check(ctx, app.MQConn) }})
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	deps := make(gin.H, len(h.checks))
	allOK := true
	for _, p := range h.checks {
		status := dependencyStatus{OK: true}
		if err := p.check(ctx); err != nil {
			status = dependencyStatus{OK: false, Message: err.Error()}
			allOK = false
		}
		deps[p.name] = status
	}

	statusCode := http.StatusOK
	if !allOK {
		statusCode = http.StatusServiceUnavailable
	}

	body := gin.H{
		"app":          h.name,
		"env":          h.env,
		"uptime_sec":   int(time.Since(h.startedAt).Seconds()),
		"dependencies": deps,
	}
	if h.index != nil {
		chunks, builtAt := h.index()
		indexInfo := gin.H{"chunks": chunks}
		if !builtAt.IsZero() {
			indexInfo["built_at"] = builtAt.Format(timeLayout)
		}
		body["index"] = indexInfo
	}
	c.JSON(statusCode, body)
}
