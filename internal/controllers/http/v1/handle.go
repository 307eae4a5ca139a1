package http

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weather-backcast/internal/models"
	"weather-backcast/internal/repositories"
	"weather-backcast/internal/services/backcast"
	"weather-backcast/internal/services/units"
)

var validate = validator.New()

// GetBackcast godoc
// @Summary Get the five-day backcast
// @Description Noon-nearest observations for each of the five days before today at a location
// @Tags Backcast
// @Produce json
// @Param lat query number true "Latitude coordinate (-90 to 90)" minimum(-90) maximum(90) example(52.52)
// @Param lon query number true "Longitude coordinate (-180 to 180)" minimum(-180) maximum(180) example(13.41)
// @Param temp query string false "Temperature unit (C or F, default C)" example(F)
// @Param speed query string false "Speed unit (m/s or km/h, default m/s)" example(km/h)
// @Success 200 {object} BackcastResponse "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 404 {object} ErrorResponse "No historical data for the location"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Failure 502 {object} ErrorResponse "Archive provider error"
// @Router /backcast [get]
// @Example {curl} Example usage:
//
//	curl -X GET "http://localhost:8080/backcast?lat=52.52&lon=13.41&temp=F"
func (r *routes) handleBackcastCall(c *fiber.Ctx) error {
	coord, msg := parseCoordinates(c.Query("lat"), c.Query("lon"))
	if msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
	}

	u, err := parseUnits(c.Query("temp"), c.Query("speed"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	records, err := r.backcast.Backcast(c.UserContext(), coord)
	if err != nil {
		return writeBackcastError(c, err)
	}

	return c.JSON(BackcastResponse{
		Latitude:  *coord.Lat,
		Longitude: *coord.Lon,
		Units:     u,
		Days:      newDayResponses(records, u),
	})
}

func writeBackcastError(c *fiber.Ctx, err error) error {
	kind := backcast.KindOf(err)

	switch kind {
	case backcast.KindInput:
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error(), Kind: kind})
	case backcast.KindTransport:
		var transportErr *repositories.TransportError
		errors.As(err, &transportErr)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error:  err.Error(),
			Kind:   kind,
			Status: transportErr.StatusCode,
		})
	case backcast.KindDataUnavailable:
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error(), Kind: kind})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to load backcast",
			Kind:  kind,
		})
	}
}

// parseCoordinates returns the coordinates or a message for the client.
func parseCoordinates(lat, lon string) (*models.Coordinates, string) {
	if lat == "" {
		return nil, "Missing required parameter: lat"
	}
	if lon == "" {
		return nil, "Missing required parameter: lon"
	}

	latFloat, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, "Invalid latitude format"
	}
	lonFloat, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return nil, "Invalid longitude format"
	}

	coord := models.NewCoordinates(latFloat, lonFloat)
	if msg := validateCoordinates(coord); msg != "" {
		return nil, msg
	}
	return coord, ""
}

func validateCoordinates(coord *models.Coordinates) string {
	err := validate.Struct(coord)
	if err == nil {
		return ""
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}

	fe := fieldErrs[0]
	switch {
	case fe.Tag() == "required" && fe.Field() == "Lat":
		return "Missing required parameter: lat"
	case fe.Tag() == "required":
		return "Missing required parameter: lon"
	case fe.Field() == "Lat":
		return "Latitude must be between -90 and 90"
	default:
		return "Longitude must be between -180 and 180"
	}
}

// parseUnits reads the optional display units, metric when absent.
func parseUnits(temp, speed string) (models.Units, error) {
	u := models.MetricUnits()

	if temp != "" {
		t, err := units.ParseTemperatureUnit(temp)
		if err != nil {
			return models.Units{}, err
		}
		u.Temperature = t
	}
	if speed != "" {
		s, err := units.ParseSpeedUnit(speed)
		if err != nil {
			return models.Units{}, err
		}
		u.Speed = s
	}
	return u, nil
}
