package adminapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"github.com/stockpilehq/stockpile/internal/app"
	"github.com/stockpilehq/stockpile/internal/inventory"
	"github.com/stockpilehq/stockpile/internal/webserver"
)

type productPayload struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Stock    *int   `json:"stock" validate:"required,gte=0"`
	Image    string `json:"image"`
}

type productHandler struct {
	app app.InventoryProvider
}

// Initialize registers the product API routes on the web server.
func Initialize(ws *webserver.WebServer, provider app.InventoryProvider) {
	registerProductRoutes(ws, &productHandler{app: provider})
}

// registerProductRoutes registers product CRUD, history and bulk
// import/export endpoints
func registerProductRoutes(ws *webserver.WebServer, h *productHandler) {
	ws.ApiGET("/products", h.listProducts)
	ws.ApiGET("/products/export", h.exportProducts)
	ws.ApiGET("/products/export/xlsx", h.exportProductsXlsx)
	ws.ApiGET("/products/stats", h.statsProducts)
	ws.ApiGET("/products/:id", h.getProduct)
	ws.ApiGET("/products/:id/history", h.productHistory)
	ws.ApiPOST("/products", h.createProduct)
	ws.ApiPOST("/products/import", h.importProducts)
	ws.ApiPUT("/products/:id", h.updateProduct)
	ws.ApiDELETE("/products/:id", h.deleteProduct)
}

// bindProductPayload parses and validates the request body, answering
// the 400 itself when the payload is unusable.
func (h *productHandler) bindProductPayload(c echo.Context) (*productPayload, bool) {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		_ = failFields(c, []inventory.FieldError{
			{Field: "body", Message: "Unable to parse request body."},
		})
		return nil, false
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if err := c.Validate(&payload); err != nil {
		_ = failFields(c, validationFields(err))
		return nil, false
	}
	return &payload, true
}

func (p *productPayload) toInput() inventory.ProductInput {
	return inventory.ProductInput{
		Name:     p.Name,
		Unit:     p.Unit,
		Category: p.Category,
		Brand:    p.Brand,
		Stock:    *p.Stock,
		Image:    p.Image,
	}
}

func (h *productHandler) createProduct(c echo.Context) error {
	payload, ok := h.bindProductPayload(c)
	if !ok {
		return nil
	}

	product, err := h.app.Inventory().Create(c.Request().Context(), payload.toInput())
	if err != nil {
		return failService(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *productHandler) listProducts(c echo.Context) error {
	nameFilter := c.QueryParam("name")
	categoryFilter := c.QueryParam("category")

	products, err := h.app.Inventory().List(c.Request().Context(), nameFilter, categoryFilter)
	if err != nil {
		return failService(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *productHandler) getProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return failMessage(c, http.StatusNotFound, "Product not found")
	}
	product, err := h.app.Inventory().Get(c.Request().Context(), id)
	if err != nil {
		return failService(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *productHandler) updateProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return failMessage(c, http.StatusNotFound, "Product not found")
	}

	payload, ok := h.bindProductPayload(c)
	if !ok {
		return nil
	}

	product, err := h.app.Inventory().Update(c.Request().Context(), id, payload.toInput())
	if err != nil {
		return failService(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *productHandler) deleteProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return failMessage(c, http.StatusNotFound, "Product not found")
	}
	if err := h.app.Inventory().Delete(c.Request().Context(), id); err != nil {
		return failService(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product deleted successfully",
		"id":      id,
	})
}

func (h *productHandler) productHistory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return failMessage(c, http.StatusNotFound, "Product not found")
	}

	var from, to time.Time
	if v := strings.TrimSpace(c.QueryParam("from")); v != "" {
		if from, err = dateparse.ParseAny(v); err != nil {
			return failMessage(c, http.StatusBadRequest, "Invalid from date")
		}
	}
	if v := strings.TrimSpace(c.QueryParam("to")); v != "" {
		if to, err = dateparse.ParseAny(v); err != nil {
			return failMessage(c, http.StatusBadRequest, "Invalid to date")
		}
	}

	entries, err := h.app.Inventory().History(c.Request().Context(), id, from, to)
	if err != nil {
		return failService(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *productHandler) importProducts(c echo.Context) error {
	fileHeader, err := c.FormFile("csvFile")
	if err != nil {
		return failMessage(c, http.StatusBadRequest, "No file uploaded")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return failError(c, err)
	}
	defer src.Close()

	result, err := h.app.Port().Import(c.Request().Context(), src)
	if err != nil {
		return failError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "CSV import complete.",
		"added":      result.Added,
		"skipped":    result.Skipped,
		"duplicates": result.Duplicates,
	})
}

func (h *productHandler) exportProducts(c echo.Context) error {
	csvText, err := h.app.Port().ExportCSV(c.Request().Context())
	if err != nil {
		return failError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(csvText))
}

func (h *productHandler) exportProductsXlsx(c echo.Context) error {
	f, err := h.app.Port().ExportXLSX(c.Request().Context())
	if err != nil {
		return failError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}

func (h *productHandler) statsProducts(c echo.Context) error {
	summary, err := h.app.Inventory().Summarize(c.Request().Context())
	if err != nil {
		return failService(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
