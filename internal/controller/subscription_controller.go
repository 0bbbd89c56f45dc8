package controller

import (
	"github.com/gofiber/fiber/v2"

	"nexfolio_backend/internal/service"
	"nexfolio_backend/pkg/subscription"
)

type SubscriptionController struct {
	subscriptions *service.SubscriptionService
}

func NewSubscriptionController(subscriptions *service.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{subscriptions: subscriptions}
}

// ListTiers is public and returns the static tier table ordered by priority.
func (sc *SubscriptionController) ListTiers(c *fiber.Ctx) error {
	return c.JSON(subscription.Ordered())
}

func (sc *SubscriptionController) Current(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	cur, err := sc.subscriptions.Current(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newCurrentSubscriptionResponse(cur))
}

func (sc *SubscriptionController) Upgrade(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req UpgradeSubscriptionRequest
	if err := bindJSON(c, &req); err != nil {
		return badRequest(c, err)
	}

	res, err := sc.subscriptions.Upgrade(c.UserContext(), userID, subscription.Tier(req.Tier), req.PaymentMethodID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"message":          res.Message,
		"subscriptionTier": res.Tier,
	})
}

func (sc *SubscriptionController) Cancel(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	msg, err := sc.subscriptions.Cancel(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": msg,
	})
}

func (sc *SubscriptionController) History(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := sc.subscriptions.History(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]SubscriptionHistoryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, newSubscriptionHistoryResponse(&rows[i]))
	}
	return c.JSON(out)
}
