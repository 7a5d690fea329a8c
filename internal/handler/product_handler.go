package handler

import (
	"errors"
	"os"
	"path/filepath"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/internal/service"
	"go-inventory-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	products service.ProductService
	importer service.ImportService
}

func NewProductHandler(products service.ProductService, importer service.ImportService) *ProductHandler {
	return &ProductHandler{products: products, importer: importer}
}

// Helper to read the actor identity set by the auth middleware
func getUserEmail(c *fiber.Ctx) string {
	email, ok := c.Locals("user_email").(string)
	if !ok {
		return "unknown"
	}
	return email
}

// GetProducts returns one filtered/sorted page plus the total match count
// GET /api/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}

	opts := repository.ListOptions{
		Page:     page,
		Limit:    limit,
		Sort:     c.Query("sort", "name"),
		Order:    c.Query("order", "asc"),
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}

	products, total, err := h.products.ListProducts(opts)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{
		"data":  products,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// SearchProducts does a case-insensitive name substring search
// GET /api/products/search?name=xyz
func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	products, err := h.products.SearchProducts(c.Query("name"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	return c.JSON(products)
}

// CreateProduct inserts a product with a server-derived status
// POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"errors": errs})
	}

	if err := h.products.CreateProduct(&product, getUserEmail(c)); err != nil {
		if errors.Is(err, service.ErrNameInUse) {
			return c.Status(400).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}

	return c.Status(201).JSON(product)
}

// UpdateProduct fully replaces the mutable fields of a product
// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"errors": errs})
	}

	updated, err := h.products.UpdateProduct(uint(id), &product, getUserEmail(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			return c.Status(404).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, service.ErrNameInUse):
			return c.Status(400).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
		}
	}

	return c.JSON(updated)
}

// DeleteProduct hard-deletes; history rows are left behind
// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	if err := h.products.DeleteProduct(uint(id), getUserEmail(c)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// ImportProducts ingests a multipart CSV and reports per-row outcomes
// POST /api/products/import
func (h *ProductHandler) ImportProducts(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "CSV file is required"})
	}

	// Spool the upload to a temp file; it is removed whatever happens.
	tmpPath := filepath.Join(os.TempDir(), "import-"+uuid.New().String()+".csv")
	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	defer os.Remove(tmpPath)

	f, err := os.Open(tmpPath)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	defer f.Close()

	result, err := h.importer.ImportCSV(f, getUserEmail(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}

	return c.JSON(result)
}

// ExportProducts dumps every product as a CSV attachment
// GET /api/products/export
func (h *ProductHandler) ExportProducts(c *fiber.Ctx) error {
	csvData, err := h.products.ExportCSV()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.SendString(csvData)
}

// GetHistory returns the stock audit trail, newest first
// GET /api/products/:id/history
func (h *ProductHandler) GetHistory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	logs, err := h.products.GetHistory(uint(id))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	return c.JSON(logs)
}
