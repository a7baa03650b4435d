package models

import "strings"

// Client is a customer of the shop.
type Client struct {
	ID          uint   `gorm:"column:id_client;primaryKey" db:"id_client" json:"ID_CLIENT"`
	Nom         string `gorm:"column:nom;size:100;not null" db:"nom" json:"Nom" validate:"required"`
	Prenom      string `gorm:"column:prenom;size:100;not null" db:"prenom" json:"Prenom" validate:"required"`
	Email       string `gorm:"column:email;size:255" db:"email" json:"Email" validate:"required,email"`
	Telephone   string `gorm:"column:telephone;size:50" db:"telephone" json:"Telephone"`
	Adresse     string `gorm:"column:adresse;size:500" db:"adresse" json:"Adresse"`
	Ville       string `gorm:"column:ville;size:100" db:"ville" json:"Ville"`
	Pays        string `gorm:"column:pays;size:100" db:"pays" json:"Pays"`
	Preferences string `gorm:"column:preferences;type:text" db:"preferences" json:"Preferences"`
	Photo       string `gorm:"column:photo;size:255" db:"photo" json:"Photo"`
}

func (Client) TableName() string { return "client" }

// FullName returns "Prenom Nom", skipping empty parts.
func (c *Client) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.Prenom) + " " + strings.TrimSpace(c.Nom))
}

// FullAddress returns the formatted postal address.
func (c *Client) FullAddress() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Adresse, c.Ville, c.Pays} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n")
}
