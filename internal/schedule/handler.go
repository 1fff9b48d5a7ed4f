package schedule

import (
	"fmt"

	"mobilya-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

type AssignRequest struct {
	WorkshopID      uint `json:"workshop_id"`
	ProcessingOrder int  `json:"processing_order"`
}

type ScheduleEntryResponse struct {
	WorkshopID      uint   `json:"workshop_id"`
	Workshop        string `json:"workshop"`
	ProcessingTime  int    `json:"processing_time"`
	ProcessingOrder int    `json:"processing_order"`
}

type ScheduleResponse struct {
	ProductID           uint                    `json:"product_id"`
	Entries             []ScheduleEntryResponse `json:"entries"`
	TotalProcessingTime int                     `json:"total_processing_time"`
}

func parseProductID(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
	}
	return id, nil
}

func mapErr(err error) error {
	return fiber.NewError(apperr.StatusCode(err), err.Error())
}

// POST /api/products/:id/schedule
func AssignWorkshopHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, err := parseProductID(c)
		if err != nil {
			return err
		}

		var body AssignRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		entry, err := svc.Assign(productID, body.WorkshopID, body.ProcessingOrder)
		if err != nil {
			return mapErr(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"product_id":       entry.ProductID,
			"workshop_id":      entry.WorkshopID,
			"processing_order": entry.ProcessingOrder,
		})
	}
}

// GET /api/products/:id/schedule
func GetScheduleHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, err := parseProductID(c)
		if err != nil {
			return err
		}

		entries, err := svc.SequenceFor(productID)
		if err != nil {
			return mapErr(err)
		}
		total, err := svc.TotalProcessingTime(productID)
		if err != nil {
			return mapErr(err)
		}

		res := ScheduleResponse{
			ProductID:           productID,
			Entries:             make([]ScheduleEntryResponse, 0, len(entries)),
			TotalProcessingTime: total,
		}
		for _, e := range entries {
			res.Entries = append(res.Entries, ScheduleEntryResponse{
				WorkshopID:      e.WorkshopID,
				Workshop:        e.Workshop.Name,
				ProcessingTime:  e.Workshop.ProcessingTime,
				ProcessingOrder: e.ProcessingOrder,
			})
		}
		return c.JSON(res)
	}
}
