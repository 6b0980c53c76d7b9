package product

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `product_id, product_name, brand, category, product_type, product_desc, images, sizes, created_at, updated_at`

func (r *PostgresRepository) List() ([]Product, error) {
	rows, err := r.db.Query(`SELECT ` + productColumns + ` FROM products ORDER BY product_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products WHERE product_id = $1`, id)
	if err != nil {
		return Product{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		return Product{}, ErrNotFound
	}
	return scanProduct(rows)
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	sizesJSON, err := json.Marshal(p.Sizes)
	if err != nil {
		return Product{}, err
	}

	err = r.db.QueryRow(`INSERT INTO products (product_name, brand, category, product_type, product_desc, images, sizes, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING product_id`,
		p.Name, p.Brand, p.Category, p.ProductType, p.Description, pq.Array(p.Images), sizesJSON, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	sizesJSON, err := json.Marshal(p.Sizes)
	if err != nil {
		return Product{}, err
	}

	res, err := r.db.Exec(`UPDATE products SET product_name=$1, brand=$2, category=$3, product_type=$4, product_desc=$5, images=$6, sizes=$7, updated_at=$8 WHERE product_id=$9`,
		p.Name, p.Brand, p.Category, p.ProductType, p.Description, pq.Array(p.Images), sizesJSON, p.UpdatedAt, id)
	if err != nil {
		return Product{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(rows rowScanner) (Product, error) {
	var p Product
	var desc, createdAt, updatedAt sql.NullString
	var sizesJSON []byte
	if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Category, &p.ProductType, &desc, pq.Array(&p.Images), &sizesJSON, &createdAt, &updatedAt); err != nil {
		return Product{}, err
	}
	p.Description = desc.String
	p.CreatedAt = createdAt.String
	p.UpdatedAt = updatedAt.String
	if len(sizesJSON) > 0 {
		json.Unmarshal(sizesJSON, &p.Sizes)
	}
	return p, nil
}
