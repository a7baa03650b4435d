package queries

import (
	"context"
	"fmt"

	"github.com/diewo77/go-videoshop/internal/models"
	"github.com/jmoiron/sqlx"
)

const purchaseDetailSelect = `
	SELECT a.id_achat, a.id_client, a.id_prod, a.id_vendeur, a.date_achat,
	       a.prix_unitaire, a.quantite,
	       c.nom AS nom_client, c.prenom AS prenom_client,
	       p.titre AS titre
	FROM acheter a
	LEFT JOIN client c ON c.id_client = a.id_client
	LEFT JOIN produit p ON p.id_prod = a.id_prod`

// PurchaseQueryRepository lists purchases with client and film names.
type PurchaseQueryRepository struct {
	baseRepository
}

func NewPurchaseQueryRepository(db *sqlx.DB) *PurchaseQueryRepository {
	return &PurchaseQueryRepository{baseRepository{db: db}}
}

// List returns every purchase, oldest first. Dangling references come back
// with nil names.
func (r *PurchaseQueryRepository) List(ctx context.Context) ([]models.PurchaseDetail, error) {
	out := make([]models.PurchaseDetail, 0)
	if err := r.db.SelectContext(ctx, &out, r.q(purchaseDetailSelect+` ORDER BY a.id_achat`)); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return out, nil
}

// ListByClient returns the purchases of one client.
func (r *PurchaseQueryRepository) ListByClient(ctx context.Context, clientID uint) ([]models.PurchaseDetail, error) {
	out := make([]models.PurchaseDetail, 0)
	query := r.q(purchaseDetailSelect + ` WHERE a.id_client = ? ORDER BY a.id_achat`)
	if err := r.db.SelectContext(ctx, &out, query, clientID); err != nil {
		return nil, fmt.Errorf("list purchases of client %d: %w", clientID, err)
	}
	return out, nil
}
