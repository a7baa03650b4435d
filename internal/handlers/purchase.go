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

const purchasePK = "id_achat"

type PurchaseHandler struct {
	db        *gorm.DB
	purchases *queries.PurchaseQueryRepository
}

func NewPurchaseHandler(db *gorm.DB, purchases *queries.PurchaseQueryRepository) *PurchaseHandler {
	return &PurchaseHandler{db: db, purchases: purchases}
}

// List returns purchases with client name and film title.
func (h *PurchaseHandler) List(c *gin.Context) {
	rows, err := h.purchases.List(c.Request.Context())
	if err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.JSON(c, http.StatusOK, rows)
}

// ListByClient returns the purchase history of the :id client, 404 when the
// client does not exist.
func (h *PurchaseHandler) ListByClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, ok := findByID[models.Client](c, h.db, clientPK, id); !ok {
		return
	}
	rows, err := h.purchases.ListByClient(c.Request.Context(), id)
	if err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.JSON(c, http.StatusOK, rows)
}

func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if p, ok := findByID[models.Purchase](c, h.db, purchasePK, id); ok {
		httpx.JSON(c, http.StatusOK, p)
	}
}

func (h *PurchaseHandler) decode(c *gin.Context) (*models.Purchase, bool) {
	var p models.Purchase
	if !bindJSON(c, &p) {
		return nil, false
	}
	p.ID = 0
	if p.DateAchat.IsZero() {
		p.DateAchat = models.Today()
	}
	v := validation.Struct(&p)
	err := checkRefs(c.Request.Context(), h.db, v,
		ref{field: "ID_CLIENT", table: "client", pk: clientPK, id: &p.ClientID},
		ref{field: "ID_PROD", table: "produit", pk: productPK, id: &p.ProductID},
		ref{field: "ID_VENDEUR", table: "vendeur", pk: vendorPK, id: p.VendorID},
	)
	if err != nil {
		httpx.StoreError(c, err)
		return nil, false
	}
	if !v.Empty() {
		invalid(c, v)
		return nil, false
	}
	return &p, true
}

func (h *PurchaseHandler) Create(c *gin.Context) {
	p, ok := h.decode(c)
	if !ok {
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Create(p).Error; err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.JSON(c, http.StatusCreated, p)
}

func (h *PurchaseHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, ok := h.decode(c)
	if !ok {
		return
	}
	if err := updateByID(c.Request.Context(), h.db, purchasePK, id, p); err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.Message(c, http.StatusOK, "purchase updated")
}

func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := deleteByID[models.Purchase](c.Request.Context(), h.db, purchasePK, id); err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.Message(c, http.StatusOK, "purchase deleted")
}
