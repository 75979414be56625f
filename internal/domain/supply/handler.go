package supply

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/httperr"
	"github.com/hms/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/inventory", h.ListItems)
	api.GET("/inventory/:id", h.GetItem)
	api.POST("/inventory", h.CreateItem)
	api.PUT("/inventory/:id", h.UpdateItem)
	api.DELETE("/inventory/:id", h.DeleteItem)
	api.POST("/inventory/:id/restock", h.Restock)
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) CreateItem(c echo.Context) error {
	var f InventoryForm
	if err := c.Bind(&f); err != nil {
		return httperr.Bind(err)
	}
	i, err := h.svc.CreateItem(c.Request().Context(), f)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, i)
}

func (h *Handler) GetItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	i, err := h.svc.GetItem(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, i)
}

func (h *Handler) ListItems(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListItems(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var f InventoryForm
	if err := c.Bind(&f); err != nil {
		return httperr.Bind(err)
	}
	i, err := h.svc.UpdateItem(c.Request().Context(), id, f)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, i)
}

func (h *Handler) DeleteItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteItem(c.Request().Context(), id); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Restock(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req RestockRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Bind(err)
	}
	i, err := h.svc.Restock(c.Request().Context(), id, req.Quantity)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, i)
}
