package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markpad/markpad/internal/mderror"
	"github.com/markpad/markpad/internal/model"
	"github.com/markpad/markpad/internal/store"
)

// draft contains all local draft handlers.
type draft struct {
	db store.Client
}

///// List
////
//

// List returns all local drafts ordered by creation date.
func (h *draft) List(c echo.Context) error {
	drafts, err := h.db.AllDrafts()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"drafts": drafts,
	})
}

///// Create
////
//

// Create stores a new local draft.
func (h *draft) Create(c echo.Context) error {
	var params struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Tags    string `json:"tags"`
	}
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, mderror.New(mderror.KindParse, "Could not get draft payload."))
	}
	if params.Content == "" {
		return c.JSON(http.StatusBadRequest, mderror.Validation("Cannot save an empty draft"))
	}

	draft := &model.Draft{
		Title:   params.Title,
		Content: params.Content,
		Tags:    params.Tags,
	}
	if err := h.db.SaveDraft(draft); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, draft)
}

///// Show
////
//

// Show returns the draft for the given id.
func (h *draft) Show(c echo.Context) error {
	draft, err := h.db.FindDraft(c.Param("id"))
	if err != nil {
		if h.db.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, mderror.New(mderror.KindStorage, "Draft not found."))
		}
		return err
	}
	return c.JSON(http.StatusOK, draft)
}

///// Delete
////
//

// Delete removes the draft for the given id.
func (h *draft) Delete(c echo.Context) error {
	if err := h.db.DeleteDraft(c.Param("id")); err != nil {
		if h.db.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, mderror.New(mderror.KindStorage, "Draft not found."))
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
