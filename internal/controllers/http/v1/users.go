package http

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"weather-backcast/internal/models"
	"weather-backcast/internal/repositories"
	"weather-backcast/internal/services/preferences"
)

// PutLocation godoc
// @Summary Search a location and load its backcast
// @Description Starts a new load in the user's view; a load still running for an older search is superseded
// @Tags Users
// @Accept json
// @Produce json
// @Param user path string true "User id"
// @Param location body LocationRequest true "Coordinates"
// @Success 200 {object} ViewResponse
// @Failure 400 {object} ErrorResponse
// @Router /users/{user}/location [put]
func (r *routes) handlePutLocation(c *fiber.Ctx) error {
	userID := utils.CopyString(c.Params("user"))

	var req LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	coord := &models.Coordinates{Lat: req.Lat, Lon: req.Lon}
	if msg := validateCoordinates(coord); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
	}

	prefs, err := r.preferences.Get(c.UserContext(), userID)
	if err != nil {
		return r.writePreferencesError(c, userID, err)
	}

	state := r.backcast.LoadView(c.UserContext(), userID, coord)
	return c.JSON(newViewResponse(state, prefs.Units))
}

// GetUserBackcast godoc
// @Summary Get the user's backcast view
// @Description Returns the latest view state in the user's preferred units
// @Tags Users
// @Produce json
// @Param user path string true "User id"
// @Success 200 {object} ViewResponse
// @Router /users/{user}/backcast [get]
func (r *routes) handleGetUserBackcast(c *fiber.Ctx) error {
	userID := utils.CopyString(c.Params("user"))

	prefs, err := r.preferences.Get(c.UserContext(), userID)
	if err != nil {
		return r.writePreferencesError(c, userID, err)
	}

	return c.JSON(newViewResponse(r.backcast.View(userID), prefs.Units))
}

// GetPreferences godoc
// @Summary Get the user's preferences
// @Tags Preferences
// @Produce json
// @Param user path string true "User id"
// @Success 200 {object} models.Preferences
// @Router /users/{user}/preferences [get]
func (r *routes) handleGetPreferences(c *fiber.Ctx) error {
	userID := utils.CopyString(c.Params("user"))

	prefs, err := r.preferences.Get(c.UserContext(), userID)
	if err != nil {
		return r.writePreferencesError(c, userID, err)
	}
	return c.JSON(prefs)
}

// PutPreferences godoc
// @Summary Update units and dark mode
// @Tags Preferences
// @Accept json
// @Produce json
// @Param user path string true "User id"
// @Param preferences body PreferencesRequest true "Changes"
// @Success 200 {object} models.Preferences
// @Failure 400 {object} ErrorResponse
// @Router /users/{user}/preferences [put]
func (r *routes) handlePutPreferences(c *fiber.Ctx) error {
	userID := utils.CopyString(c.Params("user"))

	var req PreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	ctx := c.UserContext()

	if req.Units != nil {
		if _, err := parseUnits(req.Units.Temperature, req.Units.Speed); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
	}

	prefs, err := r.preferences.Get(ctx, userID)
	if err != nil {
		return r.writePreferencesError(c, userID, err)
	}

	if req.Units != nil {
		temp, speed := req.Units.Temperature, req.Units.Speed
		if temp == "" {
			temp = string(prefs.Units.Temperature)
		}
		if speed == "" {
			speed = string(prefs.Units.Speed)
		}
		if prefs, err = r.preferences.SetUnits(ctx, userID, temp, speed); err != nil {
			return r.writePreferencesError(c, userID, err)
		}
	}

	if req.DarkMode != nil {
		if prefs, err = r.preferences.SetDarkMode(ctx, userID, *req.DarkMode); err != nil {
			return r.writePreferencesError(c, userID, err)
		}
	}

	return c.JSON(prefs)
}

// ToggleFavorite godoc
// @Summary Add or remove a favorite city
// @Tags Preferences
// @Produce json
// @Param user path string true "User id"
// @Param city path string true "City name"
// @Success 200 {object} models.Preferences
// @Router /users/{user}/favorites/{city} [post]
func (r *routes) handleToggleFavorite(c *fiber.Ctx) error {
	userID := utils.CopyString(c.Params("user"))

	city, err := url.PathUnescape(utils.CopyString(c.Params("city")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid city"})
	}

	prefs, err := r.preferences.ToggleFavorite(c.UserContext(), userID, city)
	if err != nil {
		return r.writePreferencesError(c, userID, err)
	}
	return c.JSON(prefs)
}

// ToggleUnits godoc
// @Summary Toggle the temperature or speed unit
// @Tags Preferences
// @Produce json
// @Param user path string true "User id"
// @Param kind path string true "Unit kind" Enums(temp, speed)
// @Success 200 {object} models.Preferences
// @Failure 400 {object} ErrorResponse
// @Router /users/{user}/units/{kind}/toggle [post]
func (r *routes) handleToggleUnits(c *fiber.Ctx) error {
	userID := utils.CopyString(c.Params("user"))

	prefs, err := r.preferences.ToggleUnits(c.UserContext(), userID, c.Params("kind"))
	if err != nil {
		return r.writePreferencesError(c, userID, err)
	}
	return c.JSON(prefs)
}

func (r *routes) writePreferencesError(c *fiber.Ctx, userID string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrEmptyUserID),
		errors.Is(err, preferences.ErrEmptyCity),
		errors.Is(err, preferences.ErrUnknownUnitKind):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	r.l.Error(err, map[string]any{"userID": userID})
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Failed to update preferences"})
}
