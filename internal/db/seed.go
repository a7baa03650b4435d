package db

import (
	"errors"
	"fmt"

	"github.com/diewo77/go-videoshop/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seed inserts a small catalogue for local development. Rows are matched on a
// natural key so running it twice is harmless.
func Seed(db *gorm.DB) error {
	films := []models.Product{
		{Titre: "Casablanca", Realisateur: "Michael Curtiz", Duree: 102, PaysOrigine: "USA", Langue: "Anglais", Genre: "Drame", Prix: decimal.NewFromInt(80)},
		{Titre: "Ali Zaoua", Realisateur: "Nabil Ayouch", Duree: 90, PaysOrigine: "Maroc", Langue: "Arabe", Genre: "Drame", Prix: decimal.NewFromInt(60)},
		{Titre: "Le Grand Voyage", Realisateur: "Ismaël Ferroukhi", Duree: 108, PaysOrigine: "France", Langue: "Français", Genre: "Aventure", Prix: decimal.RequireFromString("75.50")},
	}
	for _, f := range films {
		if err := firstOrCreate(db, &models.Product{}, "titre = ?", f.Titre, &f); err != nil {
			return err
		}
	}
	vendors := []models.Vendor{
		{Nom: "Bennani", Prenom: "Youssef", CIN: "BK123456", Email: "youssef@videoshop.ma"},
		{Nom: "Idrissi", Prenom: "Salma", CIN: "AB654321", Email: "salma@videoshop.ma"},
	}
	for _, v := range vendors {
		if err := firstOrCreate(db, &models.Vendor{}, "cin = ?", v.CIN, &v); err != nil {
			return err
		}
	}
	client := models.Client{Nom: "Alaoui", Prenom: "Sara", Email: "sara@example.com", Ville: "Rabat", Pays: "Maroc"}
	return firstOrCreate(db, &models.Client{}, "email = ?", client.Email, &client)
}

func firstOrCreate(db *gorm.DB, probe any, query string, key any, row any) error {
	err := db.Where(query, key).First(probe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := db.Create(row).Error; err != nil {
			return fmt.Errorf("seed %T: %w", row, err)
		}
		return nil
	}
	return err
}
