package catalog

import (
	"fmt"

	"mobilya-backend/internal/apperr"
	"mobilya-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductTypeResponse struct {
	ID                    uint    `json:"id"`
	Name                  string  `json:"name"`
	ProductionCoefficient float64 `json:"production_coefficient"`
}

type CreateProductTypeRequest struct {
	Name                  string  `json:"name"`
	ProductionCoefficient float64 `json:"production_coefficient"`
}

func toProductTypeResponse(pt *models.ProductType) ProductTypeResponse {
	return ProductTypeResponse{
		ID:                    pt.ID,
		Name:                  pt.Name,
		ProductionCoefficient: pt.ProductionCoefficient,
	}
}

// Parametreden id çözümü, tüm handler'larda ortak
func parseIDParam(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
	}
	return id, nil
}

func mapErr(err error) error {
	return fiber.NewError(apperr.StatusCode(err), err.Error())
}

// GET /api/product-types
func ListProductTypesHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		types, err := store.ListProductTypes(c.Query("order"))
		if err != nil {
			return mapErr(err)
		}
		res := make([]ProductTypeResponse, 0, len(types))
		for i := range types {
			res = append(res, toProductTypeResponse(&types[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/admin/product-types (sadece admin)
func CreateProductTypeHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductTypeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		pt, err := store.CreateProductType(body.Name, body.ProductionCoefficient)
		if err != nil {
			return mapErr(err)
		}
		return c.Status(fiber.StatusCreated).JSON(toProductTypeResponse(pt))
	}
}

// DELETE /api/admin/product-types/:id
func DeleteProductTypeHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}
		if err := store.DeleteProductType(id); err != nil {
			return mapErr(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
