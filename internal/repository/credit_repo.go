package repository

import (
	"context"

	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CreditRepository struct {
	db DBTX
}

func NewCreditRepository(db DBTX) *CreditRepository {
	return &CreditRepository{db: db}
}

func (r *CreditRepository) ListPackages(ctx context.Context) ([]models.CreditPackage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, credit_amount, price, created_at
		FROM credit_packages
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]models.CreditPackage, 0)
	for rows.Next() {
		var pkg models.CreditPackage
		if err := rows.Scan(&pkg.ID, &pkg.Name, &pkg.CreditAmount, &pkg.Price, &pkg.CreatedAt); err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *CreditRepository) CreatePackage(ctx context.Context, pkg *models.CreditPackage) error {
	query := `
		INSERT INTO credit_packages (name, credit_amount, price)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, pkg.Name, pkg.CreditAmount, pkg.Price).Scan(&pkg.ID, &pkg.CreatedAt)
}

func (r *CreditRepository) DeletePackage(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM credit_packages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Purchase copies the package's credits and price into a new purchase row.
// pgx.ErrNoRows when the package does not exist.
func (r *CreditRepository) Purchase(ctx context.Context, userID, packageID uuid.UUID) (*models.CreditPurchase, error) {
	query := `
		INSERT INTO credit_purchases (user_id, credit_package_id, package_name, purchased_credits, price_paid)
		SELECT $1, p.id, p.name, p.credit_amount, p.price
		FROM credit_packages p
		WHERE p.id = $2
		RETURNING id, user_id, credit_package_id, purchased_credits, price_paid, purchase_at
	`
	var purchase models.CreditPurchase
	err := r.db.QueryRow(ctx, query, userID, packageID).Scan(
		&purchase.ID,
		&purchase.UserID,
		&purchase.CreditPackageID,
		&purchase.PurchasedCredits,
		&purchase.PricePaid,
		&purchase.PurchaseAt,
	)
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *CreditRepository) SumPurchasedCredits(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(purchased_credits), 0) FROM credit_purchases WHERE user_id = $1
	`, userID).Scan(&total)
	return total, err
}

func (r *CreditRepository) ListPurchases(ctx context.Context, userID uuid.UUID) ([]models.PurchasedPackage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT package_name, purchased_credits, price_paid, purchase_at
		FROM credit_purchases
		WHERE user_id = $1
		ORDER BY purchase_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	purchases := make([]models.PurchasedPackage, 0)
	for rows.Next() {
		var purchase models.PurchasedPackage
		if err := rows.Scan(
			&purchase.Name,
			&purchase.PurchasedCredits,
			&purchase.PricePaid,
			&purchase.PurchaseAt,
		); err != nil {
			return nil, err
		}
		purchases = append(purchases, purchase)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return purchases, nil
}

// PackageTotals sums price and credit_amount over every catalogue package.
type PackageTotals struct {
	Price   int64
	Credits int64
}

func (r *CreditRepository) PackageTotals(ctx context.Context) (PackageTotals, error) {
	var totals PackageTotals
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(price), 0)::bigint, COALESCE(SUM(credit_amount), 0)::bigint
		FROM credit_packages
	`).Scan(&totals.Price, &totals.Credits)
	return totals, err
}
