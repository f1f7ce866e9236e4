package calendar

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/calendar"
	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/domain/property"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, e *calendar.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEventRepository) Update(ctx context.Context, e *calendar.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*calendar.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.Event), args.Error(1)
}

func (m *MockEventRepository) FindAll(ctx context.Context, filter calendar.Filter) ([]*calendar.Event, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*calendar.Event), args.Error(1)
}

type propertyLookup struct {
	property.Repository
	known map[uuid.UUID]bool
}

func (l *propertyLookup) FindByID(_ context.Context, id uuid.UUID) (*property.Property, error) {
	if l.known[id] {
		return &property.Property{}, nil
	}
	return nil, shared.ErrNotFound
}

type userLookup struct {
	identity.UserRepository
	known map[uuid.UUID]bool
}

func (l *userLookup) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	if l.known[id] {
		return &identity.User{}, nil
	}
	return nil, shared.ErrNotFound
}

var (
	flatOne  = uuid.MustParse("0b6f7d0e-1c2a-4f3b-8d9e-5a6b7c8d9e0f")
	attendee = uuid.MustParse("2c3d4e5f-6a7b-4c8d-9e0f-1a2b3c4d5e6f")
)

func newService(repo *MockEventRepository) *CalendarService {
	return NewCalendarService(repo,
		&propertyLookup{known: map[uuid.UUID]bool{flatOne: true}},
		&userLookup{known: map[uuid.UUID]bool{attendee: true}},
		zap.NewNop())
}

func TestCalendarService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEventRepository)
	svc := newService(repo)
	repo.On("FindAll", ctx, calendar.Filter{From: "2024-01-01", To: "2024-01-31"}).Return([]*calendar.Event{}, nil)

	events, err := svc.List(ctx, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Empty(t, events)

	_, err = svc.List(ctx, "01/01/2024", "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestCalendarService_CreateUpdate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEventRepository)
	svc := newService(repo)
	admin := uuid.New()
	repo.On("Create", ctx, mock.AnythingOfType("*calendar.Event")).Return(nil)

	info, err := svc.Create(ctx, admin, EventInput{Title: "Inspection", Property: "Flat 1", Type: "inspection", Date: "2024-03-01", Time: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, "scheduled", info.Status)

	_, err = svc.Create(ctx, admin, EventInput{Title: "Bad", Date: "2024-13-01"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	e, err := calendar.NewEvent(calendar.Details{Title: "Viewing", Date: "2024-03-02"}, admin)
	require.NoError(t, err)
	repo.On("FindByID", ctx, e.ID).Return(e, nil)
	repo.On("Update", ctx, e).Return(nil)

	updated, err := svc.Update(ctx, e.ID, EventInput{Title: "Viewing moved", Type: "viewing", Date: "2024-03-09", Time: "14:30"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09", updated.Date)
	assert.Equal(t, "viewing", updated.Type)
}

func TestCalendarService_Transitions(t *testing.T) {
	ctx := context.Background()
	attendee := uuid.New()

	newEvent := func(t *testing.T, repo *MockEventRepository) *calendar.Event {
		e, err := calendar.NewEvent(calendar.Details{Title: "Lease signing", Type: calendar.TypeLease, Date: "2024-04-01", UserID: &attendee}, uuid.New())
		require.NoError(t, err)
		repo.On("FindByID", ctx, e.ID).Return(e, nil)
		repo.On("Update", ctx, e).Return(nil)
		return e
	}

	t.Run("attendee confirms then completes", func(t *testing.T) {
		repo := new(MockEventRepository)
		svc := newService(repo)
		e := newEvent(t, repo)
		caller := identity.Principal{UserID: attendee, Role: identity.RoleTenant}

		info, err := svc.Confirm(ctx, caller, e.ID)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", info.Status)

		info, err = svc.Complete(ctx, caller, e.ID)
		require.NoError(t, err)
		assert.Equal(t, "completed", info.Status)

		_, err = svc.Confirm(ctx, caller, e.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("other tenant is forbidden", func(t *testing.T) {
		repo := new(MockEventRepository)
		svc := newService(repo)
		e := newEvent(t, repo)

		_, err := svc.Confirm(ctx, identity.Principal{UserID: uuid.New(), Role: identity.RoleTenant}, e.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("admin can complete", func(t *testing.T) {
		repo := new(MockEventRepository)
		svc := newService(repo)
		e := newEvent(t, repo)

		info, err := svc.Complete(ctx, identity.Principal{UserID: uuid.New(), Role: identity.RoleAdmin}, e.ID)

		require.NoError(t, err)
		assert.Equal(t, "completed", info.Status)
	})
}

func TestCalendarService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEventRepository)
	svc := newService(repo)
	id := uuid.New()
	repo.On("Delete", ctx, id).Return(shared.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, id), shared.ErrNotFound)
}

func TestCalendarService_References(t *testing.T) {
	ctx := context.Background()
	admin := uuid.New()
	flat, person := flatOne, attendee
	unknown := uuid.New()

	t.Run("known property and attendee", func(t *testing.T) {
		repo := new(MockEventRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*calendar.Event")).Return(nil)

		info, err := newService(repo).Create(ctx, admin, EventInput{Title: "Viewing", Date: "2024-03-01", PropertyID: &flat, UserID: &person})

		require.NoError(t, err)
		assert.Equal(t, &person, info.UserID)
	})

	t.Run("unknown property", func(t *testing.T) {
		repo := new(MockEventRepository)

		_, err := newService(repo).Create(ctx, admin, EventInput{Title: "Viewing", Date: "2024-03-01", PropertyID: &unknown})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.EqualError(t, err, "Property not found")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown attendee on update", func(t *testing.T) {
		repo := new(MockEventRepository)
		e, err := calendar.NewEvent(calendar.Details{Title: "Viewing", Date: "2024-03-02"}, admin)
		require.NoError(t, err)
		repo.On("FindByID", ctx, e.ID).Return(e, nil)

		_, err = newService(repo).Update(ctx, e.ID, EventInput{Title: "Viewing", Date: "2024-03-02", UserID: &unknown})

		assert.EqualError(t, err, "User not found")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
