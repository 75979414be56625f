package store

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes explicit save and reload of the whole store.
type Handler struct {
	store *Store
}

func NewHandler(s *Store) *Handler {
	return &Handler{store: s}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/store/save", h.Save)
	api.POST("/store/load", h.Load)
}

// OutcomeView is the JSON form of an Outcome.
type OutcomeView struct {
	Kind    string `json:"kind"`
	Records int    `json:"records"`
	Missing bool   `json:"missing,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ResultView is the JSON form of a Result.
type ResultView struct {
	Op       string        `json:"op"`
	OK       bool          `json:"ok"`
	Outcomes []OutcomeView `json:"outcomes"`
}

// View converts r for display.
func (r Result) View() ResultView {
	v := ResultView{Op: r.Op, OK: r.OK(), Outcomes: make([]OutcomeView, 0, len(r.Outcomes))}
	for _, o := range r.Outcomes {
		ov := OutcomeView{Kind: string(o.Kind), Records: o.Records, Missing: o.Missing}
		if o.Err != nil {
			ov.Error = o.Err.Error()
		}
		v.Outcomes = append(v.Outcomes, ov)
	}
	return v
}

// Save persists every collection. Partial failures still answer 200; the
// body says which collections failed.
func (h *Handler) Save(c echo.Context) error {
	res := h.store.Save(c.Request().Context())
	return c.JSON(http.StatusOK, res.View())
}

// Load discards in-memory state and reloads it from storage.
func (h *Handler) Load(c echo.Context) error {
	res := h.store.Load(c.Request().Context())
	return c.JSON(http.StatusOK, res.View())
}
