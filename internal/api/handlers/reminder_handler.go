package handlers

import (
	"pantrypal/domain"
	"pantrypal/internal/api/presenters"
	"pantrypal/pkg/notification"

	"github.com/gofiber/fiber/v2"
)

type (
	ReminderHandler interface {
		GetReminders(c *fiber.Ctx) error
		RunSweep(c *fiber.Ctx) error
		ClearReminders(c *fiber.Ctx) error
	}

	reminderHandler struct {
		notificationService notification.NotificationService
	}
)

func NewReminderHandler(notificationService notification.NotificationService) ReminderHandler {
	return &reminderHandler{notificationService: notificationService}
}

func (h *reminderHandler) GetReminders(c *fiber.Ctx) error {
	res, err := h.notificationService.GetStatus(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetReminders, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReminders)
}

func (h *reminderHandler) RunSweep(c *fiber.Ctx) error {
	res, err := h.notificationService.CheckNow(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedRunSweep, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRunSweep)
}

func (h *reminderHandler) ClearReminders(c *fiber.Ctx) error {
	n, err := h.notificationService.ClearAll(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedClearReminders, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"cleared": n}, fiber.StatusOK, domain.MessageSuccessClearReminders)
}
