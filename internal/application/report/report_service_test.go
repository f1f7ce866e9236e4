package report

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/domain/property"
	"github.com/propmanager/backend/internal/domain/report"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockArchiveRepository struct {
	mock.Mock
}

func (m *MockArchiveRepository) Create(ctx context.Context, a *report.Archive) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockArchiveRepository) FindByID(ctx context.Context, id uuid.UUID) (*report.Archive, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Archive), args.Error(1)
}

func (m *MockArchiveRepository) FindRecent(ctx context.Context, limit int) ([]*report.Archive, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*report.Archive), args.Error(1)
}

// propertyLister answers ListAll and counts calls
type propertyLister struct {
	property.Repository
	props []*property.Property
	calls int
}

func (l *propertyLister) ListAll(context.Context) ([]*property.Property, error) {
	l.calls++
	return l.props, nil
}

type userLoader struct {
	identity.UserRepository
	users []*identity.User
}

func (l *userLoader) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*identity.User, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []*identity.User
	for _, u := range l.users {
		if want[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

type mapCache struct {
	entries     map[string][]byte
	invalidated int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *mapCache) Invalidate(context.Context) error {
	c.entries = make(map[string][]byte)
	c.invalidated++
	return nil
}

type recordingRenderer struct {
	sheets []Sheet
}

func (r *recordingRenderer) Render(sheets ...Sheet) ([]byte, error) {
	r.sheets = append(r.sheets, sheets...)
	return []byte("workbook:" + sheets[0].Name), nil
}

func (r *recordingRenderer) ContentType() string { return "application/test" }
func (r *recordingRenderer) Extension() string   { return "xlsx" }

type memoryStorage struct {
	objects map[string][]byte
	failing bool
}

func (m *memoryStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	if m.failing {
		return errors.New("bucket unavailable")
	}
	m.objects[key] = data
	return nil
}

func (m *memoryStorage) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	return "https://files.test/" + key, time.Now().Add(expiresIn), nil
}

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func testProperty(name, rent string, created time.Time, tenant *uuid.UUID) *property.Property {
	return &property.Property{
		BaseEntity: shared.BaseEntity{ID: uuid.New(), CreatedAt: created, UpdatedAt: created},
		Name:       name,
		Address:    name + " Street",
		Type:       property.TypeApartment,
		Rent:       decimal.RequireFromString(rent),
		TenantID:   tenant,
		Status:     property.StatusVacant,
	}
}

type fixture struct {
	props    *propertyLister
	users    *userLoader
	archives *MockArchiveRepository
	cache    *mapCache
	renderer *recordingRenderer
	storage  *memoryStorage
	svc      *ReportService
	tenant   *identity.User
}

func newFixture() *fixture {
	tenant := &identity.User{BaseEntity: shared.BaseEntity{ID: uuid.New()}, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	tid := tenant.ID
	f := &fixture{
		props: &propertyLister{props: []*property.Property{
			testProperty("A", "1000", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), &tid),
			testProperty("B", "750.50", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), nil),
		}},
		users:    &userLoader{users: []*identity.User{tenant}},
		archives: new(MockArchiveRepository),
		cache:    newMapCache(),
		renderer: &recordingRenderer{},
		storage:  &memoryStorage{objects: make(map[string][]byte)},
		tenant:   tenant,
	}
	f.svc = NewReportService(f.props, f.users, f.archives, f.renderer, zap.NewNop(),
		WithCache(f.cache),
		WithStorage(f.storage, time.Hour),
		WithClock(func() time.Time { return fixedNow }),
	)
	return f
}

func TestReportService_OccupancyIsCached(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	o, err := f.svc.Occupancy(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, o.Total)
	assert.Equal(t, 1, o.Occupied)
	assert.Equal(t, "50.00%", o.OccupancyRate)

	_, err = f.svc.Occupancy(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.props.calls)

	require.NoError(t, f.svc.Invalidate(ctx))
	_, err = f.svc.Occupancy(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.props.calls)
}

func TestReportService_Revenue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	r, err := f.svc.Revenue(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, "1000.00", r.TotalRent.StringFixed(2))
	assert.Equal(t, "All time", r.Period)

	r, err = f.svc.Revenue(ctx, "2024-02-01", "2024-02-28")
	require.NoError(t, err)
	assert.True(t, r.TotalRent.IsZero())
	assert.Equal(t, 1, r.TotalProperties)
	assert.Contains(t, f.cache.entries, "revenue:2024-02-01:2024-02-28")

	_, err = f.svc.Revenue(ctx, "2024-03-01", "2024-02-01")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestReportService_PropertiesSummary(t *testing.T) {
	f := newFixture()

	summary, err := f.svc.PropertiesSummary(context.Background())

	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, "Ada Lovelace", *summary[0].TenantName)
	assert.Equal(t, report.LabelVacant, summary[1].Status)
}

func TestReportService_Export(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	file, err := f.svc.Export(ctx, report.KindPropertiesSummary, "", "")
	require.NoError(t, err)
	assert.Equal(t, "properties-summary-20240601.xlsx", file.Filename)
	assert.Equal(t, "application/test", file.ContentType)
	require.Len(t, f.renderer.sheets, 1)
	sheet := f.renderer.sheets[0]
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, len(sheet.Headers), len(sheet.Rows[0]))
	assert.Equal(t, "Ada Lovelace", sheet.Rows[0][8])

	_, err = f.svc.Export(ctx, report.Kind("payroll"), "", "")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestReportService_Archive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin := uuid.New()
	f.archives.On("Create", ctx, mock.AnythingOfType("*report.Archive")).Return(nil)

	result, err := f.svc.Archive(ctx, report.KindOccupancy, &admin)

	require.NoError(t, err)
	assert.Equal(t, "reports/occupancy/2024/06/01/occupancy-093000.xlsx", result.Archive.StorageKey)
	assert.Equal(t, &admin, result.Archive.CreatedBy)
	assert.Equal(t, int64(len("workbook:Occupancy")), result.Archive.SizeBytes)
	assert.True(t, strings.HasPrefix(result.DownloadURL, "https://files.test/reports/occupancy/"))
	assert.Contains(t, f.storage.objects, result.Archive.StorageKey)
	f.archives.AssertExpectations(t)
}

func TestReportService_ArchiveFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("storage not configured", func(t *testing.T) {
		svc := NewReportService(&propertyLister{}, &userLoader{}, new(MockArchiveRepository), &recordingRenderer{}, zap.NewNop())

		_, err := svc.Archive(ctx, report.KindOccupancy, nil)

		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("upload error records nothing", func(t *testing.T) {
		f := newFixture()
		f.storage.failing = true

		_, err := f.svc.Archive(ctx, report.KindRevenue, nil)

		require.Error(t, err)
		f.archives.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestReportService_Snapshot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.archives.On("Create", ctx, mock.MatchedBy(func(a *report.Archive) bool {
		return a.CreatedBy == nil
	})).Return(nil)

	require.NoError(t, f.svc.Snapshot(ctx, nil))

	f.archives.AssertNumberOfCalls(t, "Create", len(report.AllKinds()))
}

func TestReportService_ListArchives(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := report.NewArchive(report.KindRevenue, "reports/x.xlsx", "xlsx", 10, nil)
	f.archives.On("FindRecent", ctx, defaultArchiveLimit).Return([]*report.Archive{a}, nil)
	f.archives.On("FindRecent", ctx, maxArchiveLimit).Return([]*report.Archive{}, nil)

	list, err := f.svc.ListArchives(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "revenue", list[0].Kind)

	list, err = f.svc.ListArchives(ctx, 1000)
	require.NoError(t, err)
	assert.Empty(t, list)
}
