package handlers

import (
	"net/http"

	"github.com/diewo77/go-videoshop/httpx"
	"github.com/diewo77/go-videoshop/internal/models"
	"github.com/diewo77/go-videoshop/internal/queries"
	"github.com/diewo77/go-videoshop/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const salePK = "id_vente"

type SaleHandler struct {
	db    *gorm.DB
	sales *queries.SaleQueryRepository
}

func NewSaleHandler(db *gorm.DB, sales *queries.SaleQueryRepository) *SaleHandler {
	return &SaleHandler{db: db, sales: sales}
}

// List returns sales with film title, vendor and client names.
func (h *SaleHandler) List(c *gin.Context) {
	sales, err := h.sales.List(c.Request.Context())
	if err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.JSON(c, http.StatusOK, sales)
}

func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if sale, ok := findByID[models.Sale](c, h.db, salePK, id); ok {
		httpx.JSON(c, http.StatusOK, sale)
	}
}

// decode binds and validates a sale, defaulting its date to today.
func (h *SaleHandler) decode(c *gin.Context) (*models.Sale, bool) {
	var sale models.Sale
	if !bindJSON(c, &sale) {
		return nil, false
	}
	sale.ID = 0
	if sale.DateVente.IsZero() {
		sale.DateVente = models.Today()
	}
	v := validation.Struct(&sale)
	err := checkRefs(c.Request.Context(), h.db, v,
		ref{field: "ID_PROD", table: "produit", pk: productPK, id: &sale.ProductID},
		ref{field: "ID_VENDEUR", table: "vendeur", pk: vendorPK, id: &sale.VendorID},
		ref{field: "ID_CLIENT", table: "client", pk: clientPK, id: sale.ClientID},
	)
	if err != nil {
		httpx.StoreError(c, err)
		return nil, false
	}
	if !v.Empty() {
		invalid(c, v)
		return nil, false
	}
	return &sale, true
}

func (h *SaleHandler) Create(c *gin.Context) {
	sale, ok := h.decode(c)
	if !ok {
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Create(sale).Error; err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.JSON(c, http.StatusCreated, sale)
}

func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sale, ok := h.decode(c)
	if !ok {
		return
	}
	if err := updateByID(c.Request.Context(), h.db, salePK, id, sale); err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.Message(c, http.StatusOK, "sale updated")
}

func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := deleteByID[models.Sale](c.Request.Context(), h.db, salePK, id); err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.Message(c, http.StatusOK, "sale deleted")
}
