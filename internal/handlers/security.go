package handlers

import (
	"errors"
	"net"

	"frauddetect/internal/middleware"
	"frauddetect/internal/models"
	"frauddetect/internal/repositories"
	"frauddetect/internal/services/auth"
	"frauddetect/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type BlacklistRequest struct {
	IPAddress string `json:"ip_address"`
	Reason    string `json:"reason"`
}

type SecurityHandler struct {
	authService auth.Service
	blacklist   repositories.BlacklistRepository
}

func NewSecurityHandler(authService auth.Service, blacklist repositories.BlacklistRepository) *SecurityHandler {
	return &SecurityHandler{
		authService: authService,
		blacklist:   blacklist,
	}
}

// Login exchanges admin credentials for a JWT.
func (h *SecurityHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return utils.Unauthorized(c, "invalid credentials")
		}
		return utils.InternalError(c, "login failed")
	}
	return utils.Success(c, fiber.Map{"access_token": token, "token_type": "Bearer"})
}

// ListBlacklist returns all denylisted IPs.
func (h *SecurityHandler) ListBlacklist(c *fiber.Ctx) error {
	entries, err := h.blacklist.List(c.UserContext())
	if err != nil {
		return utils.InternalError(c, "failed to list blacklist")
	}
	return utils.Success(c, fiber.Map{"blacklisted_ips": entries})
}

// AddBlacklistedIP adds an IP to the denylist.
func (h *SecurityHandler) AddBlacklistedIP(c *fiber.Ctx) error {
	var req BlacklistRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if net.ParseIP(req.IPAddress) == nil {
		return utils.BadRequest(c, "invalid ip address")
	}

	addedBy := ""
	if claims, ok := c.Locals(middleware.AdminClaimsKey).(*models.AdminClaims); ok {
		addedBy = claims.Username
	}

	entry := &models.BlacklistedIP{
		IPAddress: req.IPAddress,
		Reason:    req.Reason,
		AddedBy:   addedBy,
	}
	if err := h.blacklist.Add(c.UserContext(), entry); err != nil {
		return utils.InternalError(c, "failed to add to blacklist")
	}
	return utils.Respond(c, fiber.StatusCreated, entry)
}

// RemoveBlacklistedIP removes an IP from the denylist.
func (h *SecurityHandler) RemoveBlacklistedIP(c *fiber.Ctx) error {
	ip := c.Params("ip")
	if net.ParseIP(ip) == nil {
		return utils.BadRequest(c, "invalid ip address")
	}
	if err := h.blacklist.Remove(c.UserContext(), ip); err != nil {
		return utils.InternalError(c, "failed to remove from blacklist")
	}
	return utils.Success(c, fiber.Map{"removed": ip})
}
