package reviews

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
	reviewService *Service
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateReviewPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	review, err := h.reviewService.Create(ctx, CreateReviewOptions{
		UserID:  userID,
		ISBN:    params.ISBN,
		Comment: params.Comment,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, review))
}

func (h *handler) listByISBN(c echo.Context) error {
	ctx := c.Request().Context()

	reviews, err := h.reviewService.ListByISBN(ctx, c.Param("isbn"))
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Reviews []*models.Review `json:"reviews"`
		Total   int              `json:"total"`
	}{reviews, len(reviews)}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) edit(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Review")
	}

	params := EditReviewPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	review, err := h.reviewService.Edit(ctx, id, params.Comment)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, review))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Review")
	}

	deleted, err := h.reviewService.Delete(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]bool{"deleted": deleted}))
}
