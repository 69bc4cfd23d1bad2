package handlers

import (
	"errors"

	"frauddetect/internal/models"
	"frauddetect/internal/repositories"
	"frauddetect/internal/utils"
	"frauddetect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProfileRequest is the payload for PUT /api/users/:id/profile.
type ProfileRequest struct {
	AvgTransactionAmount float64  `json:"avg_transaction_amount"`
	PreferredLocations   []string `json:"preferred_locations"`
	PreferredMerchants   []string `json:"preferred_merchants"`
	AccountAgeDays       int      `json:"account_age_days"`
}

type UserHandler struct {
	profiles repositories.UserProfileRepository
}

func NewUserHandler(profiles repositories.UserProfileRepository) *UserHandler {
	return &UserHandler{profiles: profiles}
}

// GetProfile returns a user's spending baseline.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.profiles.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return utils.NotFound(c, "no profile for user")
		}
		return utils.InternalError(c, "failed to get profile")
	}
	return utils.Success(c, profile)
}

// UpsertProfile creates or replaces a user's spending baseline.
func (h *UserHandler) UpsertProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.Check(req.AvgTransactionAmount >= 0, "avg_transaction_amount", "must not be negative")
	v.Check(req.AccountAgeDays >= 0, "account_age_days", "must not be negative")
	if !v.Valid() {
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{
			"error":  "validation failed",
			"fields": v.Messages(),
		})
	}

	profile := &models.UserProfile{
		UserID:               c.Params("id"),
		AvgTransactionAmount: req.AvgTransactionAmount,
		PreferredLocations:   req.PreferredLocations,
		PreferredMerchants:   req.PreferredMerchants,
		AccountAgeDays:       req.AccountAgeDays,
	}
	if err := h.profiles.Upsert(c.UserContext(), profile); err != nil {
		return utils.InternalError(c, "failed to save profile")
	}
	return utils.Success(c, profile)
}

// DeleteProfile removes a user's spending baseline.
func (h *UserHandler) DeleteProfile(c *fiber.Ctx) error {
	if err := h.profiles.Delete(c.UserContext(), c.Params("id")); err != nil {
		return utils.InternalError(c, "failed to delete profile")
	}
	return utils.Success(c, fiber.Map{"deleted": true})
}
