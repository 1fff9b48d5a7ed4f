package catalog

import (
	"mobilya-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MaterialResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	LossPercentage float64 `json:"loss_percentage"`
}

type CreateMaterialRequest struct {
	Name           string  `json:"name"`
	LossPercentage float64 `json:"loss_percentage"`
}

func toMaterialResponse(m *models.Material) MaterialResponse {
	return MaterialResponse{
		ID:             m.ID,
		Name:           m.Name,
		LossPercentage: m.LossPercentage,
	}
}

// GET /api/materials
func ListMaterialsHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		materials, err := store.ListMaterials(c.Query("order"))
		if err != nil {
			return mapErr(err)
		}
		res := make([]MaterialResponse, 0, len(materials))
		for i := range materials {
			res = append(res, toMaterialResponse(&materials[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/admin/materials (sadece admin)
func CreateMaterialHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMaterialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		m, err := store.CreateMaterial(body.Name, body.LossPercentage)
		if err != nil {
			return mapErr(err)
		}
		return c.Status(fiber.StatusCreated).JSON(toMaterialResponse(m))
	}
}

// DELETE /api/admin/materials/:id
func DeleteMaterialHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}
		if err := store.DeleteMaterial(id); err != nil {
			return mapErr(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
