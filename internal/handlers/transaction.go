// Package handlers contains the HTTP handlers for the fraud detection
// API. Handlers translate requests into engine and repository calls;
// all scoring policy lives in the risk service.
package handlers

import (
	"errors"
	"log"
	"time"

	"frauddetect/internal/models"
	"frauddetect/internal/repositories"
	"frauddetect/internal/services/alert"
	"frauddetect/internal/services/risk"
	"frauddetect/internal/utils"
	"frauddetect/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AnalyzeRequest is the payload for POST /api/transactions/analyze.
// TransactionID is optional; one is assigned when absent.
type AnalyzeRequest struct {
	TransactionID     string  `json:"transaction_id"`
	UserID            string  `json:"user_id"`
	Amount            float64 `json:"amount"`
	MerchantCategory  string  `json:"merchant_category"`
	Location          string  `json:"location"`
	PaymentMethod     string  `json:"payment_method"`
	DeviceFingerprint string  `json:"device_fingerprint"`
	IPAddress         string  `json:"ip_address"`
}

type TransactionHandler struct {
	engine  risk.Service
	records repositories.TransactionRepository
	alerts  alert.Service
}

func NewTransactionHandler(engine risk.Service, records repositories.TransactionRepository, alerts alert.Service) *TransactionHandler {
	return &TransactionHandler{
		engine:  engine,
		records: records,
		alerts:  alerts,
	}
}

// Analyze scores one transaction and returns its risk assessment. The
// record and any alert are persisted best-effort: a storage failure is
// logged but never blocks the scoring response.
func (h *TransactionHandler) Analyze(c *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	tx := risk.Transaction{
		UserID:            req.UserID,
		Amount:            req.Amount,
		MerchantCategory:  req.MerchantCategory,
		Location:          req.Location,
		PaymentMethod:     req.PaymentMethod,
		DeviceFingerprint: req.DeviceFingerprint,
		IPAddress:         req.IPAddress,
	}

	v := validation.New()
	validation.CheckTransaction(v, tx)
	if !v.Valid() {
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{
			"error":  "validation failed",
			"fields": v.Messages(),
		})
	}

	transactionID := req.TransactionID
	if transactionID == "" {
		transactionID = uuid.NewString()
	}

	assessment, err := h.engine.Assess(c.UserContext(), tx, transactionID)
	if err != nil {
		if errors.Is(err, risk.ErrInvalidTransaction) {
			return utils.BadRequest(c, err.Error())
		}
		log.Printf("assessment failed for transaction %s: %v", transactionID, err)
		return utils.InternalError(c, "failed to assess transaction")
	}

	record := &models.TransactionRecord{
		TransactionID:     assessment.TransactionID,
		UserID:            tx.UserID,
		Amount:            tx.Amount,
		MerchantCategory:  tx.MerchantCategory,
		Location:          tx.Location,
		PaymentMethod:     tx.PaymentMethod,
		DeviceFingerprint: tx.DeviceFingerprint,
		IPAddress:         tx.IPAddress,
		RiskScore:         assessment.RiskScore,
		RiskLevel:         assessment.RiskLevel,
		Confidence:        assessment.Confidence,
		Reasons:           assessment.Reasons,
		RecommendedAction: assessment.RecommendedAction,
		AnalyzedAt:        time.Now(),
	}
	if err := h.records.Create(c.UserContext(), record); err != nil {
		log.Printf("failed to persist transaction %s: %v", assessment.TransactionID, err)
	}

	if _, err := h.alerts.MaybeRaise(c.UserContext(), tx.UserID, assessment); err != nil {
		log.Printf("failed to raise alert for transaction %s: %v", assessment.TransactionID, err)
	}

	return utils.Success(c, assessment)
}

// Get returns a previously analyzed transaction by its ID.
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	record, err := h.records.GetByTransactionID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return utils.NotFound(c, "transaction not found")
		}
		return utils.InternalError(c, "failed to get transaction")
	}
	return utils.Success(c, record)
}

// ListByUser returns a user's recent analyzed transactions.
func (h *TransactionHandler) ListByUser(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	records, err := h.records.ListByUser(c.UserContext(), c.Params("id"), limit)
	if err != nil {
		return utils.InternalError(c, "failed to list transactions")
	}
	return utils.Success(c, fiber.Map{"transactions": records})
}
