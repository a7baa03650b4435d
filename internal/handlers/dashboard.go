package handlers

import (
	"context"
	"net/http"

	"github.com/diewo77/go-videoshop/httpx"
	"github.com/diewo77/go-videoshop/internal/models"
	"github.com/diewo77/go-videoshop/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

func (h *DashboardHandler) Show(c *gin.Context) {
	in, err := loadDashboardInput(c.Request.Context(), h.db)
	if err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.JSON(c, http.StatusOK, services.ComputeDashboard(in))
}

func loadDashboardInput(ctx context.Context, db *gorm.DB) (services.DashboardInput, error) {
	var in services.DashboardInput
	var err error
	if in.Clients, err = listAll[models.Client](ctx, db, clientPK); err != nil {
		return in, err
	}
	if in.Products, err = listAll[models.Product](ctx, db, productPK); err != nil {
		return in, err
	}
	if in.Vendors, err = listAll[models.Vendor](ctx, db, vendorPK); err != nil {
		return in, err
	}
	if in.Sales, err = listAll[models.Sale](ctx, db, salePK); err != nil {
		return in, err
	}
	in.Purchases, err = listAll[models.Purchase](ctx, db, purchasePK)
	return in, err
}
