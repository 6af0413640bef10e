package api

import (
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"howwillidie/internal/engine"
	"howwillidie/internal/models"
)

// state is swapped in whole once the background load finishes.
type state struct {
	store     *engine.Store
	locations []string // collated for display
	etag      string
	err       error
}

type Handler struct {
	state atomic.Pointer[state]
}

// NewHandler accepts a nil store. Until SetStore is called the API answers 503.
func NewHandler(store *engine.Store) *Handler {
	h := &Handler{}
	if store != nil {
		h.SetStore(store)
	}
	return h
}

func (h *Handler) SetStore(store *engine.Store) {
	locations := store.Locations()
	collate.New(language.English).SortStrings(locations)
	h.state.Store(&state{
		store:     store,
		locations: locations,
		etag:      `"` + store.FingerprintHex() + `"`,
	})
}

// SetLoadError records a failed load. The API then answers 500 instead of 503.
func (h *Handler) SetLoadError(err error) {
	h.state.Store(&state{err: err})
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api", h.ready, h.etag)
	api.GET("/predict", h.Predict)
	api.GET("/locations", h.GetLocations)
	api.GET("/dataset", h.GetDataset)
}

// --- HANDLERS ---

func getSegmentParams(c echo.Context) (string, uint32, string, error) {
	location := c.QueryParam("location")
	if location == "" {
		return "", 0, "", echo.NewHTTPError(http.StatusBadRequest, "location is required")
	}
	sex := c.QueryParam("sex")
	if sex == "" {
		return "", 0, "", echo.NewHTTPError(http.StatusBadRequest, "sex is required")
	}
	age, err := strconv.ParseUint(c.QueryParam("age"), 10, 32)
	if err != nil {
		return "", 0, "", echo.NewHTTPError(http.StatusBadRequest, "age must be a non-negative integer").SetInternal(err)
	}
	return location, uint32(age), sex, nil
}

// returns the top 10 causes for a segment
func (h *Handler) Predict(c echo.Context) error {
	location, age, sex, err := getSegmentParams(c)
	if err != nil {
		return err
	}
	causes := h.state.Load().store.Predict(location, age, sex)
	return c.JSON(http.StatusOK, models.Prediction{
		Location: location,
		Age:      age,
		Sex:      sex,
		Causes:   causes,
	})
}

func (h *Handler) GetLocations(c echo.Context) error {
	return c.JSON(http.StatusOK, models.LocationList{Locations: h.state.Load().locations})
}

func (h *Handler) GetDataset(c echo.Context) error {
	return c.JSON(http.StatusOK, h.state.Load().store.Info())
}

func (h *Handler) Health(c echo.Context) error {
	st := h.state.Load()
	switch {
	case st == nil:
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
	case st.err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"status": "failed"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
