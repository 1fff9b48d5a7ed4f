package catalog

import (
	"mobilya-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type WorkshopResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	WorkerCount    int    `json:"worker_count"`
	ProcessingTime int    `json:"processing_time"`
}

type CreateWorkshopRequest struct {
	Name           string `json:"name"`
	WorkerCount    int    `json:"worker_count"`
	ProcessingTime int    `json:"processing_time"`
}

func toWorkshopResponse(w *models.Workshop) WorkshopResponse {
	return WorkshopResponse{
		ID:             w.ID,
		Name:           w.Name,
		WorkerCount:    w.WorkerCount,
		ProcessingTime: w.ProcessingTime,
	}
}

// GET /api/workshops
func ListWorkshopsHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		workshops, err := store.ListWorkshops(c.Query("order"))
		if err != nil {
			return mapErr(err)
		}
		res := make([]WorkshopResponse, 0, len(workshops))
		for i := range workshops {
			res = append(res, toWorkshopResponse(&workshops[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/admin/workshops (sadece admin)
func CreateWorkshopHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateWorkshopRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		w, err := store.CreateWorkshop(body.Name, body.WorkerCount, body.ProcessingTime)
		if err != nil {
			return mapErr(err)
		}
		return c.Status(fiber.StatusCreated).JSON(toWorkshopResponse(w))
	}
}

// DELETE /api/admin/workshops/:id
func DeleteWorkshopHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}
		if err := store.DeleteWorkshop(id); err != nil {
			return mapErr(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
