package user

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `"userID", email, password, "firstName", "lastName", phone, "createdAt", "updatedAt"`

func scanUser(row *sql.Row) (User, error) {
	var u User
	var createdAt, updatedAt sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Phone, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	u.CreatedAt = createdAt.String
	u.UpdatedAt = updatedAt.String
	return u, nil
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE "userID" = $1`, id)
	return scanUser(row)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(`INSERT INTO users (email, password, "firstName", "lastName", phone, "createdAt", "updatedAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING "userID"`,
		u.Email, u.Password, u.FirstName, u.LastName, u.Phone, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	res, err := r.db.Exec(`UPDATE users SET email=$1, password=$2, "firstName"=$3, "lastName"=$4, phone=$5, "updatedAt"=$6 WHERE "userID"=$7`,
		u.Email, u.Password, u.FirstName, u.LastName, u.Phone, u.UpdatedAt, id)
	if err != nil {
		return User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return User{}, ErrNotFound
	}
	u.ID = id
	return u, nil
}
