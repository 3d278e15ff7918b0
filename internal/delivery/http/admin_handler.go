package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func actor(c *gin.Context) *entity.User {
	return currentSession(c).User
}

func (h *Handler) AdminSearch(c *gin.Context) {
	products, err := h.admin.Search(c.Request.Context(), actor(c), c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": h.presenter(c).products(products)})
}

type createProductRequest struct {
	entity.ProductDraft
	// Currency the price was entered in; defaults to the session currency
	Currency string `json:"currency"`
}

// AdminCreateProduct yangi mahsulot qo'shish
func (h *Handler) AdminCreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("invalid product", err))
		return
	}
	code := entity.CurrencyCode(req.Currency)
	if code == "" {
		code = currentSession(c).Currency
	}
	product, err := h.admin.CreateProduct(c.Request.Context(), actor(c), req.ProductDraft, code)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.presenter(c).product(product))
}

type stockRequest struct {
	Delta *int `json:"delta"`
	Stock *int `json:"stock"`
}

// AdminUpdateStock takes either a delta or an absolute stock
func (h *Handler) AdminUpdateStock(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("invalid stock update", err))
		return
	}

	var (
		product entity.Product
		err     error
	)
	switch {
	case req.Delta != nil && req.Stock != nil:
		fail(c, badRequest("send either delta or stock, not both", nil))
		return
	case req.Delta != nil:
		product, err = h.admin.AdjustStock(c.Request.Context(), actor(c), id, *req.Delta)
	case req.Stock != nil:
		product, err = h.admin.SetStock(c.Request.Context(), actor(c), id, *req.Stock)
	default:
		fail(c, badRequest("delta or stock is required", nil))
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.presenter(c).product(product))
}

func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.admin.DeleteProduct(c.Request.Context(), actor(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type nameRequest struct {
	Name string `json:"name"`
}

func (h *Handler) AdminCreateBrand(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("name is required", err))
		return
	}
	brand, err := h.admin.CreateBrand(c.Request.Context(), actor(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, brand)
}

func (h *Handler) AdminCreateCategory(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("name is required", err))
		return
	}
	category, err := h.admin.CreateCategory(c.Request.Context(), actor(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// AdminImport multipart "file" maydonidagi Excel faylni import qilish
func (h *Handler) AdminImport(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, badRequest("xlsx file is required in field \"file\"", err))
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		fail(c, err)
		return
	}

	count, err := h.admin.ImportCatalog(c.Request.Context(), actor(c), data, fh.Filename)
	if err != nil {
		fail(c, err)
		return
	}
	h.log.Info("catalog imported",
		zap.String("file", fh.Filename),
		zap.Int("products", count),
		zap.String("admin", actor(c).Email))
	c.JSON(http.StatusOK, gin.H{"imported": count})
}

func (h *Handler) AdminExport(c *gin.Context) {
	data, err := h.admin.ExportCatalog(c.Request.Context(), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	filename := fmt.Sprintf("catalog_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *Handler) AdminInfo(c *gin.Context) {
	info, err := h.admin.CatalogInfo(c.Request.Context(), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"info":                    info,
		"display_inventory_value": h.presenter(c).money(info.InventoryValue),
	})
}

func (h *Handler) AdminActions(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fail(c, badRequest("limit must be a positive integer", err))
			return
		}
		limit = n
	}
	actions, err := h.admin.Actions(c.Request.Context(), actor(c), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actions": actions})
}

// AdminReset katalogni boshlang'ich holatiga qaytarish
func (h *Handler) AdminReset(c *gin.Context) {
	if err := h.admin.Reset(c.Request.Context(), actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
