package address

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const addressColumns = `"addressID", "userID", address, city, state, country, "postalCode", phone, "isDefault", "createdAt", "updatedAt"`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAddress(row rowScanner) (Address, error) {
	var a Address
	var createdAt, updatedAt sql.NullString
	err := row.Scan(&a.AddressID, &a.UserID, &a.Address, &a.City, &a.State, &a.Country, &a.PostalCode, &a.Phone, &a.IsDefault, &createdAt, &updatedAt)
	if err != nil {
		return Address{}, err
	}
	a.CreatedAt = createdAt.String
	a.UpdatedAt = updatedAt.String
	return a, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Address, error) {
	rows, err := r.db.Query(`SELECT `+addressColumns+` FROM address WHERE "userID" = $1 ORDER BY "addressID"`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addrs := make([]Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, rows.Err()
}

func (r *PostgresRepository) GetByID(userID, addressID int) (Address, error) {
	row := r.db.QueryRow(`SELECT `+addressColumns+` FROM address WHERE "userID" = $1 AND "addressID" = $2`, userID, addressID)
	a, err := scanAddress(row)
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	return a, err
}

func (r *PostgresRepository) Create(a Address) (Address, error) {
	err := r.db.QueryRow(`INSERT INTO address ("userID", address, city, state, country, "postalCode", phone, "isDefault", "createdAt", "updatedAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING "addressID"`,
		a.UserID, a.Address, a.City, a.State, a.Country, a.PostalCode, a.Phone, a.IsDefault, a.CreatedAt, a.UpdatedAt).Scan(&a.AddressID)
	if err != nil {
		return Address{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Update(userID, addressID int, a Address) (Address, error) {
	res, err := r.db.Exec(`UPDATE address SET address=$1, city=$2, state=$3, country=$4, "postalCode"=$5, phone=$6, "isDefault"=$7, "updatedAt"=$8
        WHERE "userID"=$9 AND "addressID"=$10`,
		a.Address, a.City, a.State, a.Country, a.PostalCode, a.Phone, a.IsDefault, a.UpdatedAt, userID, addressID)
	if err != nil {
		return Address{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Address{}, ErrNotFound
	}
	a.AddressID = addressID
	a.UserID = userID
	return a, nil
}

func (r *PostgresRepository) Delete(userID, addressID int) error {
	res, err := r.db.Exec(`DELETE FROM address WHERE "userID"=$1 AND "addressID"=$2`, userID, addressID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
