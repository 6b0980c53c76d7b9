package payment

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(p Payment) (Payment, error) {
	err := r.db.QueryRow(`INSERT INTO payments ("orderID", "userName", "userEmail", provider, reference, amount, status, "createdAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING "paymentID"`,
		p.OrderID, p.UserName, p.UserEmail, p.Provider, p.Reference, p.Amount, p.Status, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return Payment{}, err
	}
	return p, nil
}

func (r *PostgresRepository) GetByProviderReference(provider, reference string) (Payment, error) {
	var p Payment
	err := r.db.QueryRow(`SELECT "paymentID", "orderID", "userName", "userEmail", provider, reference, amount, status, "createdAt"
        FROM payments WHERE provider = $1 AND reference = $2`, provider, reference).
		Scan(&p.ID, &p.OrderID, &p.UserName, &p.UserEmail, &p.Provider, &p.Reference, &p.Amount, &p.Status, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return Payment{}, ErrNotFound
	}
	if err != nil {
		return Payment{}, err
	}
	return p, nil
}

// MarkStatusIfPending relies on the WHERE clause for the compare-and-set;
// a zero row count means another verification already settled the record.
func (r *PostgresRepository) MarkStatusIfPending(provider, reference, status string) (bool, error) {
	res, err := r.db.Exec(`UPDATE payments SET status = $3 WHERE provider = $1 AND reference = $2 AND status = 'pending'`,
		provider, reference, status)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
