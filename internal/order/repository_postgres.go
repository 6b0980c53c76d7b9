package order

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

const orderColumns = `"orderID", "orderNumber", "userID", "userData", "shippingData", "cartData", "paymentData", "deliveryMode", status, "orderActivities", "isRefunded", "isCancelled", "createdAt", "updatedAt"`

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	userData, shippingData, cartData, paymentData, activities, err := marshalOrder(ord)
	if err != nil {
		return Order{}, err
	}

	err = r.db.QueryRow(`INSERT INTO orders ("orderNumber", "userID", "userData", "shippingData", "cartData", "paymentData", "deliveryMode", status, "orderActivities", "isRefunded", "isCancelled", "createdAt", "updatedAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING "orderID"`,
		ord.OrderNumber, ord.UserID, userData, shippingData, cartData, paymentData,
		ord.DeliveryMode, string(ord.Status), activities, ord.IsRefunded, ord.IsCancelled,
		ord.CreatedAt, ord.UpdatedAt).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders WHERE "orderID" = $1`, id)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		return Order{}, ErrNotFound
	}
	return scanOrder(rows)
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders WHERE "userID" = $1 ORDER BY "orderID" DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) Update(ord Order) (Order, error) {
	_, shippingData, _, paymentData, activities, err := marshalOrder(ord)
	if err != nil {
		return Order{}, err
	}

	res, err := r.db.Exec(`UPDATE orders SET status=$1, "paymentData"=$2, "shippingData"=$3, "orderActivities"=$4, "isRefunded"=$5, "isCancelled"=$6, "updatedAt"=$7 WHERE "orderID"=$8`,
		string(ord.Status), paymentData, shippingData, activities, ord.IsRefunded, ord.IsCancelled, ord.UpdatedAt, ord.ID)
	if err != nil {
		return Order{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Order{}, ErrNotFound
	}
	return ord, nil
}

func marshalOrder(ord Order) (userData, shippingData, cartData, paymentData, activities []byte, err error) {
	if userData, err = json.Marshal(ord.UserData); err != nil {
		return
	}
	if shippingData, err = json.Marshal(ord.ShippingData); err != nil {
		return
	}
	if cartData, err = json.Marshal(ord.CartData); err != nil {
		return
	}
	if ord.PaymentData != nil {
		if paymentData, err = json.Marshal(ord.PaymentData); err != nil {
			return
		}
	}
	activities, err = json.Marshal(ord.Activities)
	return
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(rows rowScanner) (Order, error) {
	var ord Order
	var status string
	var userData, shippingData, cartData, activities []byte
	var paymentData []byte
	var createdAt, updatedAt sql.NullString

	if err := rows.Scan(&ord.ID, &ord.OrderNumber, &ord.UserID, &userData, &shippingData, &cartData, &paymentData,
		&ord.DeliveryMode, &status, &activities, &ord.IsRefunded, &ord.IsCancelled, &createdAt, &updatedAt); err != nil {
		return Order{}, err
	}

	ord.Status = Status(status)
	ord.CreatedAt = createdAt.String
	ord.UpdatedAt = updatedAt.String
	json.Unmarshal(userData, &ord.UserData)
	json.Unmarshal(shippingData, &ord.ShippingData)
	json.Unmarshal(cartData, &ord.CartData)
	json.Unmarshal(activities, &ord.Activities)
	if len(paymentData) > 0 {
		pd := PaymentData{}
		if err := json.Unmarshal(paymentData, &pd); err == nil {
			ord.PaymentData = &pd
		}
	}
	return ord, nil
}
