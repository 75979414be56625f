package billing

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/httperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/bills", h.GenerateBill)
	api.POST("/bills/export", h.ExportBill)
}

// BillResponse is a generated bill together with its rendered text.
type BillResponse struct {
	Bill
	Text string `json:"text"`
	Path string `json:"path,omitempty"`
}

// ExportRequest generates a bill and writes it to Path.
type ExportRequest struct {
	BillRequest
	Path string `json:"path"`
}

func (h *Handler) GenerateBill(c echo.Context) error {
	var req BillRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Bind(err)
	}
	b, err := h.svc.Generate(c.Request().Context(), req)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, BillResponse{Bill: b, Text: b.Text()})
}

func (h *Handler) ExportBill(c echo.Context) error {
	var req ExportRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Bind(err)
	}
	b, err := h.svc.Generate(c.Request().Context(), req.BillRequest)
	if err != nil {
		return httperr.From(err)
	}
	path, err := h.svc.Export(c.Request().Context(), req.Path, b)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, BillResponse{Bill: b, Text: b.Text(), Path: path})
}
