package prescription

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rxledger/rxledger/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the prescription endpoints on g. The group must
// already carry the access-guard middleware; every handler reads the
// owner from the request context, never from the request body or path.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/all", h.ListAll)
	g.POST("", h.Create)
	g.GET("/report/daywise", h.DayWiseReport)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	filter, err := ParseDateFilter(
		c.QueryParam("startDate"),
		c.QueryParam("endDate"),
		c.QueryParam("month"),
		c.QueryParam("date"),
	)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	list, err := h.svc.List(c.Request().Context(), ownerID(c), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, list)
}

// ListAll returns every prescription for the owner, ignoring query
// parameters.
func (h *Handler) ListAll(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context(), ownerID(c), DateFilter{})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), ownerID(c), id)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.svc.Create(c.Request().Context(), ownerID(c), in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.svc.Update(c.Request().Context(), ownerID(c), id, in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), ownerID(c), id); err != nil {
		return mapErr(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Prescription deleted successfully"})
}

func (h *Handler) DayWiseReport(c echo.Context) error {
	report, err := h.svc.DayWiseReport(c.Request().Context(), ownerID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, report)
}

func ownerID(c echo.Context) uuid.UUID {
	return auth.CurrentUserID(c.Request().Context())
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, "Prescription not found")
	}
	return id, nil
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Prescription not found")
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
