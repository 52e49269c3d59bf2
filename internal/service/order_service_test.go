package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"concert-tickets/internal/model"
)

type mockOfferStore struct{ mock.Mock }

func (m *mockOfferStore) GetWithConcert(ctx context.Context, id uint64) (model.TicketOffer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.TicketOffer), args.Error(1)
}

func (m *mockOfferStore) DecrementTicketsTx(ctx context.Context, tx *sql.Tx, id uint64, qty int) error {
	args := m.Called(ctx, tx, id, qty)
	return args.Error(0)
}

type mockOrderStore struct{ mock.Mock }

func (m *mockOrderStore) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	args := m.Called(ctx, tx, o)
	return args.Error(0)
}

func (m *mockOrderStore) GetByID(ctx context.Context, id uint64) (model.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *mockOrderStore) GetDetailByID(ctx context.Context, id uint64) (model.OrderDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.OrderDetail), args.Error(1)
}

func (m *mockOrderStore) UpdatePaid(ctx context.Context, id uint64, paid bool) error {
	args := m.Called(ctx, id, paid)
	return args.Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByID(ctx context.Context, id uint64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func newTestService(offers *mockOfferStore, orders *mockOrderStore, users *mockUserStore) *OrderService {
	// The db handle is only touched once all pre-checks pass; failure
	// path tests never reach it.
	return NewOrderService(nil, orders, offers, users, nil)
}

func testOffer(numTickets int) model.TicketOffer {
	return model.TicketOffer{
		ID:         7,
		ConcertID:  3,
		TicketType: "Staanplaats",
		NumTickets: numTickets,
		Price:      decimal.RequireFromString("85.00"),
		Concert:    &model.Concert{ID: 3, Artist: "Taylor Swift", Location: "Brussel"},
	}
}

func TestPlaceOrderRejectsQuantityOutOfRange(t *testing.T) {
	offers := new(mockOfferStore)
	orders := new(mockOrderStore)
	users := new(mockUserStore)
	svc := newTestService(offers, orders, users)

	for _, qty := range []int{0, -1, 11} {
		_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{TicketOfferID: 7, UserID: 1, Quantity: qty})
		assert.ErrorIs(t, err, ErrInvalidQuantity, "qty %d", qty)
	}
	offers.AssertNotCalled(t, "GetWithConcert", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrderOfferNotFound(t *testing.T) {
	offers := new(mockOfferStore)
	orders := new(mockOrderStore)
	users := new(mockUserStore)
	svc := newTestService(offers, orders, users)

	offers.On("GetWithConcert", mock.Anything, uint64(7)).Return(model.TicketOffer{}, sql.ErrNoRows)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{TicketOfferID: 7, UserID: 1, Quantity: 2})
	assert.ErrorIs(t, err, ErrOfferNotFound)
	orders.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrderInsufficientInventory(t *testing.T) {
	offers := new(mockOfferStore)
	orders := new(mockOrderStore)
	users := new(mockUserStore)
	svc := newTestService(offers, orders, users)

	offers.On("GetWithConcert", mock.Anything, uint64(7)).Return(testOffer(2), nil)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{TicketOfferID: 7, UserID: 1, Quantity: 5})
	assert.ErrorIs(t, err, ErrInsufficientTickets)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrderUnknownUser(t *testing.T) {
	offers := new(mockOfferStore)
	orders := new(mockOrderStore)
	users := new(mockUserStore)
	svc := newTestService(offers, orders, users)

	offers.On("GetWithConcert", mock.Anything, uint64(7)).Return(testOffer(100), nil)
	users.On("GetByID", mock.Anything, uint64(42)).Return(model.User{}, sql.ErrNoRows)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{TicketOfferID: 7, UserID: 42, Quantity: 2})
	assert.ErrorIs(t, err, ErrUserNotFound)
	orders.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePaidIsIdempotent(t *testing.T) {
	offers := new(mockOfferStore)
	orders := new(mockOrderStore)
	users := new(mockUserStore)
	svc := newTestService(offers, orders, users)

	orders.On("GetByID", mock.Anything, uint64(9)).Return(model.Order{ID: 9, Paid: true}, nil)

	// Confirming an already paid order succeeds without a write.
	err := svc.UpdatePaid(context.Background(), 9, true)
	assert.NoError(t, err)
	orders.AssertNotCalled(t, "UpdatePaid", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePaidFlipsUnpaidOrder(t *testing.T) {
	offers := new(mockOfferStore)
	orders := new(mockOrderStore)
	users := new(mockUserStore)
	svc := newTestService(offers, orders, users)

	orders.On("GetByID", mock.Anything, uint64(9)).Return(model.Order{ID: 9, Paid: false}, nil)
	orders.On("UpdatePaid", mock.Anything, uint64(9), true).Return(nil)

	assert.NoError(t, svc.ConfirmPayment(context.Background(), 9))
	orders.AssertExpectations(t)
}

func TestUpdatePaidUnknownOrder(t *testing.T) {
	offers := new(mockOfferStore)
	orders := new(mockOrderStore)
	users := new(mockUserStore)
	svc := newTestService(offers, orders, users)

	orders.On("GetByID", mock.Anything, uint64(404)).Return(model.Order{}, sql.ErrNoRows)

	err := svc.UpdatePaid(context.Background(), 404, true)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrderNotFound(t *testing.T) {
	offers := new(mockOfferStore)
	orders := new(mockOrderStore)
	users := new(mockUserStore)
	svc := newTestService(offers, orders, users)

	orders.On("GetDetailByID", mock.Anything, uint64(404)).Return(model.OrderDetail{}, sql.ErrNoRows)

	_, err := svc.GetOrder(context.Background(), 404)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
