package ratings

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/openshelf/openshelf/pkg/auth"
	"github.com/openshelf/openshelf/pkg/errcodes"
	"github.com/pkg/errors"
)

type handler struct {
	ratingService *Service
}

func (h *handler) upsert(c echo.Context) error {
	ctx := c.Request().Context()

	params := UpsertRatingPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	rating, err := h.ratingService.Upsert(ctx, userID, params.ISBN, params.Rating)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, rating))
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	rating, err := h.ratingService.Get(ctx, userID, c.Param("isbn"))
	if err != nil {
		return errors.WithStack(err)
	}
	if rating == nil {
		return errcodes.NotFound("Rating")
	}

	return errors.WithStack(c.JSON(http.StatusOK, rating))
}

func (h *handler) average(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.ratingService.Average(ctx, c.Param("isbn"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, result))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	deleted, err := h.ratingService.Delete(ctx, userID, c.Param("isbn"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]bool{"deleted": deleted}))
}
