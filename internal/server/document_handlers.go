package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/markpad/markpad/internal/editor"
	"github.com/markpad/markpad/internal/mderror"
	"github.com/markpad/markpad/pkg/mdapi"
)

// defaultListLimit bounds a document listing when no limit is given.
const defaultListLimit = 10

// document contains all remote document handlers, proxied through the
// sync orchestrator.
type document struct {
	syncer *editor.Syncer
}

///// State
////
//

// State returns a snapshot of the sync orchestrator's state.
func (h *document) State(c echo.Context) error {
	return c.JSON(http.StatusOK, h.syncer.State())
}

///// Save
////
//

// Save pushes a new document to the remote store.
func (h *document) Save(c echo.Context) error {
	var params struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Tags    string `json:"tags"`
	}
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, mderror.New(mderror.KindParse, "Could not get document payload."))
	}

	return respond(c, http.StatusCreated, h.syncer.Save(params.Title, params.Content, params.Tags))
}

///// List
////
//

// List refreshes and returns the known remote documents.
func (h *document) List(c echo.Context) error {
	limit := defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, mderror.Validation("limit must be a positive integer"))
		}
		limit = n
	}

	return respond(c, http.StatusOK, h.syncer.List(limit))
}

///// Load
////
//

// Load fetches a single document from the remote store.
func (h *document) Load(c echo.Context) error {
	return respond(c, http.StatusOK, h.syncer.Load(c.Param("id")))
}

///// Update
////
//

// Update replaces a document on the remote store.
func (h *document) Update(c echo.Context) error {
	var params struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Tags    string `json:"tags"`
	}
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, mderror.New(mderror.KindParse, "Could not get document payload."))
	}

	return respond(c, http.StatusOK, h.syncer.Update(c.Param("id"), params.Title, params.Content, params.Tags))
}

///// Delete
////
//

// Delete removes a document from the remote store.
func (h *document) Delete(c echo.Context) error {
	return respond(c, http.StatusOK, h.syncer.Delete(c.Param("id")))
}

// respond maps an operation result to an HTTP response through the
// error taxonomy. Validation failures render as 400, anything that
// reached the network as 502.
func respond(c echo.Context, status int, res mdapi.Result) error {
	if res.Success {
		return c.JSON(status, res)
	}

	switch kindOf(res) {
	case mderror.KindValidation:
		return c.JSON(http.StatusBadRequest, res)
	default:
		return c.JSON(http.StatusBadGateway, res)
	}
}

// kindOf classifies a failed result.
func kindOf(res mdapi.Result) mderror.Kind {
	switch {
	case res.Err == "validation":
		return mderror.KindValidation
	case mdapi.IsEndpointsUnavailable(res.Cause()):
		return mderror.KindEndpointsUnavailable
	default:
		return mderror.KindNetwork
	}
}
