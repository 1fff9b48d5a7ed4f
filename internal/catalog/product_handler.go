package catalog

import (
	"time"

	"mobilya-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductResponse struct {
	ID              uint    `json:"id"`
	Article         string  `json:"article"`
	ProductTypeID   uint    `json:"product_type_id"`
	ProductType     string  `json:"product_type"`
	Name            string  `json:"name"`
	MinPartnerPrice float64 `json:"min_partner_price"`
	MainMaterialID  uint    `json:"main_material_id"`
	MainMaterial    string  `json:"main_material"`
	Param1          float64 `json:"param1"`
	Param2          float64 `json:"param2"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type CreateProductRequest struct {
	Article         string  `json:"article"`
	ProductTypeID   uint    `json:"product_type_id"`
	Name            string  `json:"name"`
	MinPartnerPrice float64 `json:"min_partner_price"`
	MainMaterialID  uint    `json:"main_material_id"`
	Param1          float64 `json:"param1"`
	Param2          float64 `json:"param2"`
}

type UpdateProductRequest struct {
	Article         *string  `json:"article"`
	ProductTypeID   *uint    `json:"product_type_id"`
	Name            *string  `json:"name"`
	MinPartnerPrice *float64 `json:"min_partner_price"`
	MainMaterialID  *uint    `json:"main_material_id"`
	Param1          *float64 `json:"param1"`
	Param2          *float64 `json:"param2"`
}

type BatchDeleteRequest struct {
	IDs []uint `json:"ids"`
}

type BatchDeleteResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

func toProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Article:         p.Article,
		ProductTypeID:   p.ProductTypeID,
		ProductType:     p.ProductType.Name,
		Name:            p.Name,
		MinPartnerPrice: p.MinPartnerPrice,
		MainMaterialID:  p.MainMaterialID,
		MainMaterial:    p.MainMaterial.Name,
		Param1:          p.Param1,
		Param2:          p.Param2,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       p.UpdatedAt.Format(time.RFC3339),
	}
}

// GET /api/products (tüm authenticated kullanıcılar görebilir)
func ListProductsHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		order := c.Query("order", "created_at")
		products, err := store.ListProducts(order)
		if err != nil {
			return mapErr(err)
		}
		res := make([]ProductResponse, 0, len(products))
		for i := range products {
			res = append(res, toProductResponse(&products[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/products/:id
func GetProductHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}
		p, err := store.GetProduct(id)
		if err != nil {
			return mapErr(err)
		}
		return c.JSON(toProductResponse(p))
	}
}

// POST /api/admin/products (sadece admin)
func CreateProductHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		p, err := store.CreateProduct(ProductInput{
			Article:         body.Article,
			ProductTypeID:   body.ProductTypeID,
			Name:            body.Name,
			MinPartnerPrice: body.MinPartnerPrice,
			MainMaterialID:  body.MainMaterialID,
			Param1:          body.Param1,
			Param2:          body.Param2,
		})
		if err != nil {
			return mapErr(err)
		}

		// İlişki adlarıyla birlikte dön
		p, err = store.GetProduct(p.ID)
		if err != nil {
			return mapErr(err)
		}
		return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
	}
}

// PUT /api/admin/products/:id
func UpdateProductHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		p, err := store.UpdateProduct(id, ProductUpdate{
			Article:         body.Article,
			ProductTypeID:   body.ProductTypeID,
			Name:            body.Name,
			MinPartnerPrice: body.MinPartnerPrice,
			MainMaterialID:  body.MainMaterialID,
			Param1:          body.Param1,
			Param2:          body.Param2,
		})
		if err != nil {
			return mapErr(err)
		}
		return c.JSON(toProductResponse(p))
	}
}

// DELETE /api/admin/products/:id
func DeleteProductHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}
		if err := store.DeleteProduct(id); err != nil {
			return mapErr(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/admin/products/batch-delete
func BatchDeleteProductsHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BatchDeleteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		deleted, err := store.DeleteProductsBatch(body.IDs)
		if err != nil {
			return mapErr(err)
		}
		return c.JSON(BatchDeleteResponse{DeletedCount: deleted})
	}
}
