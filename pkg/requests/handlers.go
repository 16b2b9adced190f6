package requests

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/openshelf/openshelf/pkg/auth"
	"github.com/openshelf/openshelf/pkg/errcodes"
	"github.com/openshelf/openshelf/pkg/models"
	"github.com/pkg/errors"
)

type handler struct {
	requestService *Service
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateRequestPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	request, err := h.requestService.Create(ctx, CreateRequestOptions{
		UserID:    userID,
		BookTitle: params.BookTitle,
		Author:    params.Author,
		ISBN:      params.ISBN,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, request))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	requests, err := h.requestService.ListForUser(ctx, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Requests []*models.Request `json:"requests"`
		Total    int               `json:"total"`
	}{requests, len(requests)}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Request")
	}

	deleted, err := h.requestService.Delete(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]bool{"deleted": deleted}))
}
