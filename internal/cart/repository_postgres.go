package cart

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(userID int) (Cart, error) {
	var itemsJSON []byte
	var c Cart
	err := r.db.QueryRow(`SELECT "userID", items, total FROM carts WHERE "userID" = $1`, userID).
		Scan(&c.UserID, &itemsJSON, &c.Total)
	if err == sql.ErrNoRows {
		return Cart{}, ErrNotFound
	}
	if err != nil {
		return Cart{}, err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &c.Items); err != nil {
			return Cart{}, err
		}
	}
	return c, nil
}

func (r *PostgresRepository) Save(c Cart) error {
	itemsJSON, err := json.Marshal(c.Items)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`INSERT INTO carts ("userID", items, total)
        VALUES ($1,$2,$3)
        ON CONFLICT ("userID") DO UPDATE SET items = EXCLUDED.items, total = EXCLUDED.total`,
		c.UserID, itemsJSON, c.Total)
	return err
}

func (r *PostgresRepository) Delete(userID int) error {
	_, err := r.db.Exec(`DELETE FROM carts WHERE "userID" = $1`, userID)
	return err
}
