package books

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/openshelf/openshelf/pkg/models"
	"github.com/pkg/errors"
)

type handler struct {
	bookService *Service
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.Create(ctx, CreateBookOptions{
		ISBN:      params.ISBN,
		Title:     params.Title,
		Author:    params.Author,
		Year:      params.Year,
		Publisher: params.Publisher,
		ImageS:    params.ImageS,
		ImageM:    params.ImageM,
		ImageL:    params.ImageL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, book))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.bookService.Retrieve(ctx, c.Param("isbn"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.Update(ctx, c.Param("isbn"), UpdateBookOptions{
		Title:     params.Title,
		Author:    params.Author,
		Year:      params.Year,
		Publisher: params.Publisher,
		ImageS:    params.ImageS,
		ImageM:    params.ImageM,
		ImageL:    params.ImageL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	deleted, err := h.bookService.Delete(ctx, c.Param("isbn"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]bool{"deleted": deleted}))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := SearchBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, err := h.bookService.Search(ctx, params.Query)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Books []*models.Book `json:"books"`
		Total int            `json:"total"`
	}{books, len(books)}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}
