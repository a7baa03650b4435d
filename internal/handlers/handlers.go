// Package handlers serves the JSON API of the shop, one handler per resource.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/diewo77/go-videoshop/httpx"
	"github.com/diewo77/go-videoshop/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// parseID reads the :id path parameter, replying 400 when it is not a
// positive integer.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httpx.JSONError(c, http.StatusBadRequest, httpx.CodeInvalidID, nil)
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httpx.JSONError(c, http.StatusBadRequest, httpx.CodeInvalidJSON, err.Error())
		return false
	}
	return true
}

func invalid(c *gin.Context, v validation.Violations) {
	httpx.JSONError(c, http.StatusBadRequest, httpx.CodeValidation, v)
}

// ref is a foreign id that must point at an existing row of table.
type ref struct {
	field string
	table string
	pk    string
	id    *uint
}

// checkRefs adds unknown_reference for every set id with no row. Fields
// that already carry a violation are skipped.
func checkRefs(ctx context.Context, db *gorm.DB, v validation.Violations, refs ...ref) error {
	for _, r := range refs {
		if r.id == nil || *r.id == 0 {
			continue
		}
		if _, bad := v[r.field]; bad {
			continue
		}
		var n int64
		if err := db.WithContext(ctx).Table(r.table).Where(r.pk+" = ?", *r.id).Count(&n).Error; err != nil {
			return fmt.Errorf("check %s: %w", r.field, err)
		}
		if n == 0 {
			v.Add(r.field, validation.CodeUnknownReference)
		}
	}
	return nil
}

// findByID loads one row, replying 404 or 500 itself on failure.
func findByID[T any](c *gin.Context, db *gorm.DB, pk string, id uint) (*T, bool) {
	var row T
	err := db.WithContext(c.Request.Context()).Where(pk+" = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(c, http.StatusNotFound, httpx.CodeNotFound, nil)
		return nil, false
	}
	if err != nil {
		httpx.StoreError(c, err)
		return nil, false
	}
	return &row, true
}

// listAll returns every row ordered by primary key, never nil.
func listAll[T any](ctx context.Context, db *gorm.DB, pk string) ([]T, error) {
	rows := make([]T, 0)
	if err := db.WithContext(ctx).Order(pk).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// updateByID overwrites every column but the primary key. A missing row is
// not reported.
func updateByID[T any](ctx context.Context, db *gorm.DB, pk string, id uint, input *T) error {
	var model T
	return db.WithContext(ctx).Model(&model).Where(pk+" = ?", id).Select("*").Omit(pk).Updates(input).Error
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, pk string, id uint) error {
	var model T
	return db.WithContext(ctx).Where(pk+" = ?", id).Delete(&model).Error
}
