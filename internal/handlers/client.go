package handlers

import (
	"net/http"

	"github.com/diewo77/go-videoshop/httpx"
	"github.com/diewo77/go-videoshop/internal/models"
	"github.com/diewo77/go-videoshop/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const clientPK = "id_client"

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := listAll[models.Client](c.Request.Context(), h.db, clientPK)
	if err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.JSON(c, http.StatusOK, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if client, ok := findByID[models.Client](c, h.db, clientPK, id); ok {
		httpx.JSON(c, http.StatusOK, client)
	}
}

func (h *ClientHandler) Create(c *gin.Context) {
	var client models.Client
	if !bindJSON(c, &client) {
		return
	}
	client.ID = 0
	if v := validation.Struct(&client); !v.Empty() {
		invalid(c, v)
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.JSON(c, http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var client models.Client
	if !bindJSON(c, &client) {
		return
	}
	if v := validation.Struct(&client); !v.Empty() {
		invalid(c, v)
		return
	}
	if err := updateByID(c.Request.Context(), h.db, clientPK, id, &client); err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.Message(c, http.StatusOK, "client updated")
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := deleteByID[models.Client](c.Request.Context(), h.db, clientPK, id); err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.Message(c, http.StatusOK, "client deleted")
}
