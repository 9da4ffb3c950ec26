package customer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindViews(ctx context.Context, q customer.Query) ([]customer.CustomerView, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]customer.CustomerView), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func newTestCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(customer.Input{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"})
	require.NoError(t, err)
	return c
}

func TestService_Create(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewService(repo)
	ctx := context.Background()
	birth := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)

	repo.On("ExistsByEmail", ctx, "ada@example.com", mock.AnythingOfType("uuid.UUID")).Return(false, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*customer.Customer")).Return(nil)

	result, err := service.Create(ctx, CustomerRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "Ada@Example.com",
		BirthDate: &birth,
	})

	require.NoError(t, err)
	assert.Equal(t, "B", result.Membership)
	assert.Equal(t, "Bronze", result.MembershipLabel)
	require.NotNil(t, result.BirthDate)
	assert.Equal(t, "1990-05-17", *result.BirthDate)
	assert.Nil(t, result.OrdersCount)
	repo.AssertExpectations(t)
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewService(repo)
	ctx := context.Background()

	repo.On("ExistsByEmail", ctx, "ada@example.com", mock.AnythingOfType("uuid.UUID")).Return(true, nil)

	_, err := service.Create(ctx, CustomerRequest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_UpdateMembership(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewService(repo)
	ctx := context.Background()
	c := newTestCustomer(t)

	repo.On("FindByID", ctx, c.ID).Return(c, nil)
	repo.On("Save", ctx, c).Return(nil)

	result, err := service.UpdateMembership(ctx, c.ID, UpdateMembershipRequest{Membership: "G"})

	require.NoError(t, err)
	assert.Equal(t, "G", result.Membership)
	assert.Equal(t, "Gold", result.MembershipLabel)
	assert.Equal(t, "Grace", result.FirstName)
}

func TestService_Update_KeepsMembershipWhenOmitted(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewService(repo)
	ctx := context.Background()
	c := newTestCustomer(t)
	require.NoError(t, c.SetMembership(customer.MembershipSilver))

	repo.On("FindByID", ctx, c.ID).Return(c, nil)
	repo.On("ExistsByEmail", ctx, "grace@navy.mil", c.ID).Return(false, nil)
	repo.On("Save", ctx, c).Return(nil)

	result, err := service.Update(ctx, c.ID, CustomerRequest{FirstName: "Grace", LastName: "Hopper", Email: "grace@navy.mil"})

	require.NoError(t, err)
	assert.Equal(t, "S", result.Membership)
	assert.Equal(t, "grace@navy.mil", result.Email)
}

func TestService_List(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewService(repo)
	ctx := context.Background()
	c := newTestCustomer(t)

	repo.On("FindViews", ctx, mock.MatchedBy(func(q customer.Query) bool {
		return q.Search == "gr" && q.Membership == customer.MembershipBronze && q.PageSize == 10
	})).Return([]customer.CustomerView{{Customer: *c, OrdersCount: 4}}, int64(1), nil)

	result, err := service.List(ctx, ListFilter{Search: "gr", Membership: "B"})

	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.NotNil(t, result.Items[0].OrdersCount)
	assert.Equal(t, int64(4), *result.Items[0].OrdersCount)
}

func TestService_Get_NotFound(t *testing.T) {
	repo := new(MockCustomerRepository)
	service := NewService(repo)
	ctx := context.Background()
	id := uuid.New()

	repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	_, err := service.Get(ctx, id)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
