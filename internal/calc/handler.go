package calc

import (
	"mobilya-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

type MaterialCalculationRequest struct {
	ProductTypeID uint    `json:"product_type_id"`
	MaterialID    uint    `json:"material_id"`
	Quantity      int     `json:"quantity"`
	Param1        float64 `json:"param1"`
	Param2        float64 `json:"param2"`
}

type MaterialCalculationResponse struct {
	RawMaterialNeeded int          `json:"raw_material_needed"`
	Details           *Calculation `json:"calculation_details"`
}

// POST /api/calculations/material-needed
func MaterialNeededHandler(calculator *Calculator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MaterialCalculationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		result, err := calculator.Calculate(body.ProductTypeID, body.MaterialID, body.Quantity, body.Param1, body.Param2)
		if err != nil {
			return fiber.NewError(apperr.StatusCode(err), err.Error())
		}

		return c.JSON(MaterialCalculationResponse{
			RawMaterialNeeded: result.RawMaterialNeeded,
			Details:           result,
		})
	}
}
