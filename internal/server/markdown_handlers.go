package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markpad/markpad/internal/editor"
	"github.com/markpad/markpad/internal/markdown"
	"github.com/markpad/markpad/internal/mderror"
)

// md contains all markdown and editor handlers. Editor mutations run
// under the supervisor so a faulted pipeline refuses them until reset.
type md struct {
	renderer   *markdown.Renderer
	session    *editor.Session
	supervisor *editor.Supervisor
	theme      *editor.ThemeConfig
}

///// Render
////
//

// Render converts a markdown payload to sanitized HTML.
func (h *md) Render(c echo.Context) error {
	var params struct {
		Markdown string `json:"markdown"`
	}
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, mderror.New(mderror.KindParse, "Could not get markdown payload."))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"html": h.renderer.Render(params.Markdown),
	})
}

///// Editor
////
//

// Editor returns the current editing state.
func (h *md) Editor(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"content": h.session.Content(),
		"preview": h.session.Render(),
		"theme":   h.theme.Current(),
	})
}

// SetContent replaces the editor content. Rendering and local
// persistence follow asynchronously through the session's schedulers.
func (h *md) SetContent(c echo.Context) error {
	var params struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, mderror.New(mderror.KindParse, "Could not get content payload."))
	}

	if err := h.supervisor.Do(func() { h.session.SetContent(params.Content) }); err != nil {
		return faulted(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ForceSave persists the editor content to the local store immediately.
func (h *md) ForceSave(c echo.Context) error {
	if err := h.supervisor.Do(h.session.ForceSave); err != nil {
		return faulted(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

///// Theme
////
//

// SetTheme switches and persists the theme.
func (h *md) SetTheme(c echo.Context) error {
	var params struct {
		Theme string `json:"theme"`
	}
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, mderror.New(mderror.KindParse, "Could not get theme payload."))
	}

	h.theme.Set(editor.Theme(params.Theme))
	return c.JSON(http.StatusOK, echo.Map{
		"theme": h.theme.Current(),
	})
}
