package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"darksky-forecast/internal/models"
	"darksky-forecast/internal/services/requests"
	"darksky-forecast/pkg/forecast"
	"darksky-forecast/pkg/httpserver"
)

// RequestsResponse lists the request URL built for each provider.
type RequestsResponse struct {
	Latitude  float64           `json:"latitude" example:"40.7128"`
	Longitude float64           `json:"longitude" example:"-74.006"`
	Requests  map[string]string `json:"requests"`
}

// handleBuildRequest godoc
// @Summary Build a forecast request URL
// @Description Builds the forecast request URL for one provider
// @Tags Forecast
// @Produce json
// @Param provider query string false "Provider name, defaults to the first configured"
// @Param lat query number true "Latitude coordinate (-90 to 90)" minimum(-90) maximum(90)
// @Param lon query number true "Longitude coordinate (-180 to 180)" minimum(-180) maximum(180)
// @Param lang query string false "Response language" Enums(de, en)
// @Param units query string false "Response units" Enums(auto, ca, si, uk2, us)
// @Param exclude query string false "Comma separated blocks to exclude"
// @Param extend query string false "Set to hourly for 168 hours of hourly data" Enums(hourly)
// @Success 200 {object} models.RequestURL
// @Failure 400 {object} httpserver.ErrorResponse
// @Failure 404 {object} httpserver.ErrorResponse
// @Router /forecast/request [get]
func (r *routes) handleBuildRequest(c *fiber.Ctx) error {
	q, err := parseQuery(c)
	if err != nil {
		return err
	}

	provider := strings.TrimSpace(c.Query("provider"))

	provider, req, err := r.service.BuildRequest(c.UserContext(), provider, q)
	if err != nil {
		return r.fail(c, err, q)
	}

	return c.JSON(models.RequestURL{
		Provider: provider,
		URL:      r.render(req),
	})
}

// handleBuildRequests godoc
// @Summary Build forecast request URLs for all providers
// @Tags Forecast
// @Produce json
// @Param lat query number true "Latitude coordinate (-90 to 90)"
// @Param lon query number true "Longitude coordinate (-180 to 180)"
// @Param lang query string false "Response language" Enums(de, en)
// @Param units query string false "Response units" Enums(auto, ca, si, uk2, us)
// @Param exclude query string false "Comma separated blocks to exclude"
// @Param extend query string false "Set to hourly for 168 hours of hourly data" Enums(hourly)
// @Success 200 {object} RequestsResponse
// @Failure 400 {object} httpserver.ErrorResponse
// @Router /forecast/requests [get]
func (r *routes) handleBuildRequests(c *fiber.Ctx) error {
	q, err := parseQuery(c)
	if err != nil {
		return err
	}

	results, err := r.service.BuildRequests(c.UserContext(), q)
	if err != nil {
		return r.fail(c, err, q)
	}

	response := RequestsResponse{
		Latitude:  q.Lat,
		Longitude: q.Lon,
		Requests:  make(map[string]string, len(results)),
	}
	for name, req := range results {
		response.Requests[name] = r.render(req)
	}

	return c.JSON(response)
}

func (r *routes) render(req forecast.Request) string {
	if r.exposeAPIKey {
		return req.String()
	}
	return req.Redacted()
}

func (r *routes) fail(c *fiber.Ctx, err error, q models.Query) error {
	switch {
	case errors.Is(err, requests.ErrUnknownProvider):
		return c.Status(fiber.StatusNotFound).JSON(httpserver.ErrorResponse{Error: err.Error()})
	case errors.Is(err, forecast.ErrInvalidArgument), errors.Is(err, forecast.ErrInvalidState):
		r.l.Warning("rejected forecast request", map[string]any{"err": err, "params": q.RequestParams()})
		return c.Status(fiber.StatusBadRequest).JSON(httpserver.ErrorResponse{Error: err.Error()})
	}

	r.l.Error(err, map[string]any{"params": q.RequestParams()})

	return c.Status(fiber.StatusInternalServerError).JSON(httpserver.ErrorResponse{
		Error: "Failed to build forecast request",
	})
}

func badRequest(msg string) error {
	return fiber.NewError(fiber.StatusBadRequest, msg)
}

func parseQuery(c *fiber.Ctx) (models.Query, error) {
	var q models.Query

	lat := c.Query("lat")
	lon := c.Query("lon")

	// Check for required parameters
	if lat == "" {
		return q, badRequest("Missing required parameter: lat")
	}
	if lon == "" {
		return q, badRequest("Missing required parameter: lon")
	}

	var err error
	if q.Lat, err = strconv.ParseFloat(lat, 64); err != nil {
		return q, badRequest("Invalid latitude format")
	}
	if q.Lon, err = strconv.ParseFloat(lon, 64); err != nil {
		return q, badRequest("Invalid longitude format")
	}

	q.Language = strings.TrimSpace(c.Query("lang"))
	q.Units = strings.TrimSpace(c.Query("units"))

	if exclude := c.Query("exclude"); exclude != "" {
		for _, name := range strings.Split(exclude, ",") {
			if name = strings.TrimSpace(name); name != "" {
				q.Exclude = append(q.Exclude, name)
			}
		}
	}

	switch extend := c.Query("extend"); extend {
	case "":
	case string(forecast.BlockHourly):
		q.ExtendHourly = true
	default:
		return q, badRequest("Invalid extend value: " + extend)
	}

	return q, nil
}
