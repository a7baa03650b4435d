package models

import "strings"

// Vendor is a salesperson of the shop.
type Vendor struct {
	ID        uint   `gorm:"column:id_vendeur;primaryKey" db:"id_vendeur" json:"ID_VENDEUR"`
	Nom       string `gorm:"column:nom;size:100;not null" db:"nom" json:"Nom" validate:"required"`
	Prenom    string `gorm:"column:prenom;size:100" db:"prenom" json:"Prenom"`
	CIN       string `gorm:"column:cin;size:50;not null" db:"cin" json:"CIN" validate:"required"`
	Email     string `gorm:"column:email;size:255" db:"email" json:"Email" validate:"omitempty,email"`
	Telephone string `gorm:"column:telephone;size:50" db:"telephone" json:"Telephone"`
	Adresse   string `gorm:"column:adresse;size:500" db:"adresse" json:"Adresse"`
	Photo     string `gorm:"column:photo;size:255" db:"photo" json:"Photo"`
}

func (Vendor) TableName() string { return "vendeur" }

func (v *Vendor) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(v.Prenom) + " " + strings.TrimSpace(v.Nom))
}
