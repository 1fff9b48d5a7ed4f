package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"mobilya-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// GET /api/reports/statistics
func StatisticsHandler(agg *Aggregator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := agg.Statistics()
		if err != nil {
			return fiber.NewError(apperr.StatusCode(err), err.Error())
		}
		return c.JSON(stats)
	}
}

// GET /api/export/:type (products | workshops | materials)
func ExportHandler(agg *Aggregator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dataType := c.Params("type")

		rows, err := agg.Export(dataType)
		if err != nil {
			return fiber.NewError(apperr.StatusCode(err), err.Error())
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.WriteAll(rows); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "CSV oluşturulamadı")
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s.csv", dataType))
		return c.Send(buf.Bytes())
	}
}
