package order

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"orderID", "orderNumber", "userID", "userData", "shippingData", "cartData", "paymentData",
		"deliveryMode", "status", "orderActivities", "isRefunded", "isCancelled", "createdAt", "updatedAt",
	})
}

func TestPostgresGetByIDUnmarshalsSnapshots(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM orders WHERE "orderID"`).
		WithArgs(42).
		WillReturnRows(orderRows().AddRow(
			42, "ORD-1-0a1b2c3d", 7,
			[]byte(`{"firstName":"Ada","lastName":"Obi","email":"ada@example.com","phone":"0801"}`),
			[]byte(`{"address":"12 Broad St","city":"Lagos","state":"Lagos","postalCode":"100001","deliveryStatus":"pending"}`),
			[]byte(`{"items":[{"productId":1,"sizeInfo":{"sizeId":"42","us":8.5,"uk":8,"price":45000},"quantity":2,"unitPrice":45000,"totalPrice":90000}],"totalAmount":90000}`),
			[]byte(`{"reference":"PSK_1","provider":"paystack","status":"success","amountPaid":90000,"paymentDate":"2026-08-29T10:00:00Z"}`),
			1, "payment-confirmed",
			[]byte(`[{"status":"initialized","message":"order created, awaiting payment","timestamp":"2026-08-29T09:00:00Z"}]`),
			false, false, "2026-08-29T09:00:00Z", "2026-08-29T10:00:00Z",
		))

	repo := NewPostgresRepository(db)
	ord, err := repo.GetByID(42)
	require.NoError(t, err)

	assert.Equal(t, StatusPaymentConfirmed, ord.Status)
	assert.Equal(t, "Ada", ord.UserData.FirstName)
	assert.Equal(t, DeliveryPending, ord.ShippingData.DeliveryStatus)
	require.Len(t, ord.CartData.Items, 1)
	assert.Equal(t, 90000.0, ord.CartData.TotalAmount)
	require.NotNil(t, ord.PaymentData)
	assert.Equal(t, "PSK_1", ord.PaymentData.Reference)
	require.Len(t, ord.Activities, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM orders WHERE "orderID"`).
		WithArgs(99).
		WillReturnRows(orderRows())

	repo := NewPostgresRepository(db)
	_, err = repo.GetByID(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresUpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE orders SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	_, err = repo.Update(Order{ID: 99, Status: StatusPaymentFailed})
	assert.ErrorIs(t, err, ErrNotFound)
}
