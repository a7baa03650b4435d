package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/diewo77/go-videoshop/httpx"
	"github.com/diewo77/go-videoshop/internal/models"
	"github.com/diewo77/go-videoshop/validation"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const productPK = "id_prod"

type ProductHandler struct {
	db          *gorm.DB
	uploads     Uploader
	photoPrefix string
}

// NewProductHandler serves films. photoPrefix is prepended to stored file
// names to build Photo_url, e.g. "http://localhost:5000/uploads".
func NewProductHandler(db *gorm.DB, uploads Uploader, photoPrefix string) *ProductHandler {
	return &ProductHandler{db: db, uploads: uploads, photoPrefix: photoPrefix}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := listAll[models.Product](c.Request.Context(), h.db, productPK)
	if err != nil {
		httpx.StoreError(c, err)
		return
	}
	for i := range products {
		products[i].WithPhotoURL(h.photoPrefix)
	}
	httpx.JSON(c, http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if p, ok := findByID[models.Product](c, h.db, productPK, id); ok {
		p.WithPhotoURL(h.photoPrefix)
		httpx.JSON(c, http.StatusOK, p)
	}
}

// decode accepts JSON or multipart/form-data. An uploaded Photo file is only
// written once the rest of the product is valid.
func (h *ProductHandler) decode(c *gin.Context) (*models.Product, bool) {
	var p models.Product
	v := validation.Violations{}
	var upload *multipart.FileHeader

	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		fh, err := c.FormFile("Photo")
		switch {
		case err == nil:
			upload = fh
			if code := h.uploads.Check(fh); code != "" {
				v.Add("Photo", code)
			}
		case !errors.Is(err, http.ErrMissingFile):
			httpx.JSONError(c, http.StatusBadRequest, httpx.CodeInvalidForm, err.Error())
			return nil, false
		}
		productFromForm(c, &p, v)
	} else if !bindJSON(c, &p) {
		return nil, false
	}
	p.ID = 0
	p.PhotoURL = ""

	v.Merge(validation.Struct(&p))
	if !v.Empty() {
		invalid(c, v)
		return nil, false
	}
	if upload != nil {
		name, err := h.uploads.Save(c, upload)
		if err != nil {
			httpx.StoreError(c, err)
			return nil, false
		}
		p.Photo = name
	}
	return &p, true
}

// productFromForm reads the text fields of a multipart product form.
func productFromForm(c *gin.Context, p *models.Product, v validation.Violations) {
	p.Titre = c.PostForm("Titre")
	p.Realisateur = c.PostForm("Realisateur")
	p.PaysOrigine = c.PostForm("Pays_origine")
	p.Acteurs = c.PostForm("Acteurs")
	p.Langue = c.PostForm("Langue")
	p.Genre = c.PostForm("Genre")
	p.Photo = c.PostForm("Photo")

	if s := strings.TrimSpace(c.PostForm("Prix")); s != "" {
		prix, err := decimal.NewFromString(s)
		if err != nil {
			v.Add("Prix", validation.CodeInvalid)
		}
		p.Prix = prix
	}
	if s := strings.TrimSpace(c.PostForm("Duree")); s != "" {
		duree, err := strconv.Atoi(s)
		if err != nil {
			v.Add("Duree", validation.CodeInvalid)
		}
		p.Duree = duree
	}
	if d, err := models.ParseDate(c.PostForm("Date_sortie")); err != nil {
		v.Add("Date_sortie", validation.CodeInvalid)
	} else {
		p.DateSortie = d
	}
}

func (h *ProductHandler) Create(c *gin.Context) {
	p, ok := h.decode(c)
	if !ok {
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Create(p).Error; err != nil {
		httpx.StoreError(c, err)
		return
	}
	p.WithPhotoURL(h.photoPrefix)
	httpx.JSON(c, http.StatusCreated, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, ok := h.decode(c)
	if !ok {
		return
	}
	if err := updateByID(c.Request.Context(), h.db, productPK, id, p); err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.Message(c, http.StatusOK, "product updated")
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := deleteByID[models.Product](c.Request.Context(), h.db, productPK, id); err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.Message(c, http.StatusOK, "product deleted")
}
