package queries

import (
	"context"
	"fmt"

	"github.com/diewo77/go-videoshop/internal/models"
	"github.com/jmoiron/sqlx"
)

const saleDetailSelect = `
	SELECT v.id_vente, v.id_prod, v.id_vendeur, v.id_client, v.date_vente,
	       p.titre AS titre,
	       ve.nom AS nom_vendeur, ve.prenom AS prenom_vendeur,
	       c.nom AS nom_client, c.prenom AS prenom_client
	FROM vente_produit v
	LEFT JOIN produit p ON p.id_prod = v.id_prod
	LEFT JOIN vendeur ve ON ve.id_vendeur = v.id_vendeur
	LEFT JOIN client c ON c.id_client = v.id_client`

// SaleQueryRepository lists sales with film, vendor and client names.
type SaleQueryRepository struct {
	baseRepository
}

func NewSaleQueryRepository(db *sqlx.DB) *SaleQueryRepository {
	return &SaleQueryRepository{baseRepository{db: db}}
}

func (r *SaleQueryRepository) List(ctx context.Context) ([]models.SaleDetail, error) {
	out := make([]models.SaleDetail, 0)
	if err := r.db.SelectContext(ctx, &out, r.q(saleDetailSelect+` ORDER BY v.id_vente`)); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return out, nil
}
