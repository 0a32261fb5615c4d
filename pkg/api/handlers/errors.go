package handlers

import "github.com/gofiber/fiber/v3"

// ErrIndustryNotFound is returned when no industry directory has the requested name
var ErrIndustryNotFound = fiber.NewError(fiber.StatusNotFound, "industry not found")

// ErrInvalidIndustryName is returned when the name is not a plain directory name
var ErrInvalidIndustryName = fiber.NewError(fiber.StatusBadRequest, "invalid industry name")

// ErrQueueDisabled is returned when compile requests are not accepted
var ErrQueueDisabled = fiber.NewError(fiber.StatusServiceUnavailable, "compile queue is not configured")
