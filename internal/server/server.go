package server

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markpad/markpad/internal/editor"
	"github.com/markpad/markpad/internal/markdown"
	"github.com/markpad/markpad/internal/server/middlewares"
	"github.com/markpad/markpad/internal/store"
)

// A Controller is an Inversion Of Control pattern used to init the server package.
type Controller struct {
	Version    string
	Database   store.Client
	Session    *editor.Session
	Supervisor *editor.Supervisor
	Syncer     *editor.Syncer
	Theme      *editor.ThemeConfig
}

// EchoEngine instantiates the web server.
func EchoEngine(ctrl Controller) *echo.Echo {
	engine := echo.New()
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	engine.Pre(middleware.Rewrite(map[string]string{
		"/": "/version",
	}))

	////////////
	// Router //
	////////////

	router := engine.Group("")

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// supervision handlers
	//
	health := &health{
		supervisor: ctrl.Supervisor,
	}
	router.GET("/health", health.Show)
	router.POST("/reset", health.Reset)

	//
	// markdown handlers
	//
	md := &md{
		renderer:   markdown.NewRenderer(),
		session:    ctrl.Session,
		supervisor: ctrl.Supervisor,
		theme:      ctrl.Theme,
	}
	router.POST("/render", md.Render)
	router.GET("/editor", md.Editor)
	router.PUT("/editor", md.SetContent)
	router.POST("/editor/save", md.ForceSave)
	router.PUT("/editor/theme", md.SetTheme)

	//
	// document handlers
	//
	document := &document{
		syncer: ctrl.Syncer,
	}
	router.GET("/sync", document.State)
	router.POST("/documents", document.Save)
	router.GET("/documents", document.List)
	router.GET("/documents/:id", document.Load)
	router.PUT("/documents/:id", document.Update)
	router.DELETE("/documents/:id", document.Delete)

	//
	// draft handlers
	//
	draft := &draft{
		db: ctrl.Database,
	}
	router.GET("/drafts", draft.List)
	router.POST("/drafts", draft.Create)
	router.GET("/drafts/:id", draft.Show)
	router.DELETE("/drafts/:id", draft.Delete)

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}
