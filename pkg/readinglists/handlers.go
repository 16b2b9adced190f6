package readinglists

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
	listService *Service
}

func actorID(c echo.Context) (int, error) {
	userID, ok := auth.GetUserIDFromContext(c)
	if !ok {
		return 0, errcodes.Unauthorized("Authentication required")
	}
	return userID, nil
}

func listID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errcodes.NotFound("Reading list")
	}
	return id, nil
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateListPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	userID, err := actorID(c)
	if err != nil {
		return err
	}

	list, err := h.listService.Create(ctx, userID, params.Name)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, list))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := actorID(c)
	if err != nil {
		return err
	}

	lists, err := h.listService.ListForOwner(ctx, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Lists []*models.ReadingList `json:"lists"`
		Total int                   `json:"total"`
	}{lists, len(lists)}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) detail(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := listID(c)
	if err != nil {
		return err
	}

	detail, err := h.listService.GetDetail(ctx, id, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, detail))
}

func (h *handler) rename(c echo.Context) error {
	ctx := c.Request().Context()

	params := RenameListPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := listID(c)
	if err != nil {
		return err
	}

	renamed, err := h.listService.Rename(ctx, id, userID, params.Name)
	if err != nil {
		return errors.WithStack(err)
	}
	if !renamed {
		return errcodes.NotFound("Reading list")
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]string{"name": params.Name}))
}

func (h *handler) toggleVisibility(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := listID(c)
	if err != nil {
		return err
	}

	result, err := h.listService.ToggleVisibility(ctx, id, userID)
	if err != nil {
		return errors.WithStack(err)
	}
	if result == nil {
		return errcodes.NotFound("Reading list")
	}

	return errors.WithStack(c.JSON(http.StatusOK, result))
}

func (h *handler) addBook(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := listID(c)
	if err != nil {
		return err
	}

	list, err := h.listService.AddBook(ctx, id, userID, params.ISBN)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, list))
}

func (h *handler) removeBook(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := listID(c)
	if err != nil {
		return err
	}

	list, err := h.listService.RemoveBook(ctx, id, userID, c.Param("isbn"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, list))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := listID(c)
	if err != nil {
		return err
	}

	deleted, err := h.listService.Delete(ctx, id, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]bool{"deleted": deleted}))
}

func (h *handler) publicForUser(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		return errcodes.NotFound("User")
	}

	summaries, err := h.listService.GetPublicForUser(ctx, ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Lists []models.ReadingListSummary `json:"lists"`
		Total int                         `json:"total"`
	}{summaries, len(summaries)}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}
