package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markpad/markpad/internal/editor"
)

// health contains the supervision handlers.
type health struct {
	supervisor *editor.Supervisor
}

///// Show
////
//

// Show reports the supervisor state, 503 while faulted.
func (h *health) Show(c echo.Context) error {
	payload := echo.Map{"status": h.supervisor.State()}

	if fault := h.supervisor.Fault(); fault != nil {
		payload["fault"] = fault.Error()
		return c.JSON(http.StatusServiceUnavailable, payload)
	}
	return c.JSON(http.StatusOK, payload)
}

///// Reset
////
//

// Reset clears the fault and restores the editing pipeline to its
// initial state.
func (h *health) Reset(c echo.Context) error {
	h.supervisor.Reset()
	return c.JSON(http.StatusOK, echo.Map{"status": h.supervisor.State()})
}

// faulted renders an editor call refused while the pipeline is faulted.
func faulted(c echo.Context, err error) error {
	return c.JSON(http.StatusServiceUnavailable, echo.Map{
		"status": editor.Faulted,
		"fault":  err.Error(),
	})
}
