package handlers

import (
	"net/http"

	"github.com/diewo77/go-videoshop/httpx"
	"github.com/diewo77/go-videoshop/internal/models"
	"github.com/diewo77/go-videoshop/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const vendorPK = "id_vendeur"

type VendorHandler struct {
	db *gorm.DB
}

func NewVendorHandler(db *gorm.DB) *VendorHandler {
	return &VendorHandler{db: db}
}

func (h *VendorHandler) List(c *gin.Context) {
	vendors, err := listAll[models.Vendor](c.Request.Context(), h.db, vendorPK)
	if err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.JSON(c, http.StatusOK, vendors)
}

func (h *VendorHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if vendor, ok := findByID[models.Vendor](c, h.db, vendorPK, id); ok {
		httpx.JSON(c, http.StatusOK, vendor)
	}
}

func (h *VendorHandler) Create(c *gin.Context) {
	var vendor models.Vendor
	if !bindJSON(c, &vendor) {
		return
	}
	vendor.ID = 0
	if v := validation.Struct(&vendor); !v.Empty() {
		invalid(c, v)
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&vendor).Error; err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.JSON(c, http.StatusCreated, vendor)
}

func (h *VendorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var vendor models.Vendor
	if !bindJSON(c, &vendor) {
		return
	}
	if v := validation.Struct(&vendor); !v.Empty() {
		invalid(c, v)
		return
	}
	if err := updateByID(c.Request.Context(), h.db, vendorPK, id, &vendor); err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.Message(c, http.StatusOK, "vendor updated")
}

func (h *VendorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := deleteByID[models.Vendor](c.Request.Context(), h.db, vendorPK, id); err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.Message(c, http.StatusOK, "vendor deleted")
}
