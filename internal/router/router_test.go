package router

import (
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/school-community-platform/internal/handler"
)

func registeredRoutes(t *testing.T) map[string]bool {
	t.Helper()
	e := echo.New()
	pass := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	h := Handlers{
		Auth:          &handler.AuthHandler{},
		Users:         &handler.UserHandler{},
		Posts:         &handler.PostHandler{},
		Groups:        &handler.GroupHandler{},
		Files:         &handler.FileHandler{},
		Events:        &handler.EventHandler{},
		Notifications: &handler.NotificationHandler{},
		Reports:       &handler.ReportHandler{},
		Admin:         &handler.AdminHandler{},
		Badges:        &handler.BadgeHandler{},
		Recognitions:  &handler.RecognitionHandler{},
		Stats:         &handler.StatsHandler{},
	}
	Register(e, h, pass, pass)

	routes := make(map[string]bool)
	for _, r := range e.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	return routes
}

func TestRegisterMountsPromisedRoutes(t *testing.T) {
	routes := registeredRoutes(t)

	want := []string{
		"GET /v1/groups/:id",
		"DELETE /v1/groups/:id/messages/:messageId",
		"GET /v1/users/:id/files",
		"PATCH /v1/users/me",
		"GET /v1/groups/my",
		"POST /v1/posts/:id/reactions",
		"POST /v1/groups",
		"GET /v1/events/my",
		"POST /v1/notifications/:id/read",
		"POST /v1/admin/reports/:id/resolve",
	}
	for _, r := range want {
		if !routes[r] {
			t.Errorf("route %q not registered", r)
		}
	}

	stale := []string{
		"PUT /v1/me",
		"GET /v1/groups/mine",
		"POST /v1/posts/:id/like",
	}
	for _, r := range stale {
		if routes[r] {
			t.Errorf("stale route %q still registered", r)
		}
	}
}
