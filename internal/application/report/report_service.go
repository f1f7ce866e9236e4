package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/domain/property"
	"github.com/propmanager/backend/internal/domain/report"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/propmanager/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	cacheKeyOccupancy = "occupancy"
	cacheKeyRevenue   = "revenue:"

	defaultArchiveLimit = 50
	maxArchiveLimit     = 200
)

// ReportService computes the admin reports and handles their export and archival
type ReportService struct {
	properties  property.Repository
	users       identity.UserRepository
	archives    report.ArchiveRepository
	cache       Cache
	renderer    WorkbookRenderer
	storage     ObjectStorage
	downloadTTL time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// Option configures a ReportService
type Option func(*ReportService)

// WithCache enables caching of occupancy and revenue
func WithCache(c Cache) Option {
	return func(s *ReportService) { s.cache = c }
}

// WithStorage enables archival to object storage
func WithStorage(storage ObjectStorage, downloadTTL time.Duration) Option {
	return func(s *ReportService) {
		s.storage = storage
		s.downloadTTL = downloadTTL
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *ReportService) { s.now = now }
}

// NewReportService creates a new ReportService
func NewReportService(
	properties property.Repository,
	users identity.UserRepository,
	archives report.ArchiveRepository,
	renderer WorkbookRenderer,
	logger *zap.Logger,
	opts ...Option,
) *ReportService {
	s := &ReportService{
		properties:  properties,
		users:       users,
		archives:    archives,
		renderer:    renderer,
		downloadTTL: 15 * time.Minute,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Occupancy returns the occupied/vacant counts
func (s *ReportService) Occupancy(ctx context.Context) (*report.Occupancy, error) {
	var cached report.Occupancy
	if s.cacheGet(ctx, cacheKeyOccupancy, &cached) {
		return &cached, nil
	}

	props, err := s.properties.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	o := report.ComputeOccupancy(props, s.now())
	s.cacheSet(ctx, cacheKeyOccupancy, o)
	return &o, nil
}

// Revenue returns expected rent from let properties, optionally bounded
// by property creation date.
func (s *ReportService) Revenue(ctx context.Context, startDate, endDate string) (*report.Revenue, error) {
	period, err := report.ParsePeriod(startDate, endDate)
	if err != nil {
		return nil, err
	}

	key := cacheKeyRevenue + "all"
	if period != nil {
		key = cacheKeyRevenue + startDate + ":" + endDate
	}
	var cached report.Revenue
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	props, err := s.properties.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	r := report.ComputeRevenue(props, period, s.now())
	s.cacheSet(ctx, key, r)
	return &r, nil
}

// PropertiesSummary returns every property joined with its tenant
func (s *ReportService) PropertiesSummary(ctx context.Context) ([]report.PropertySummary, error) {
	props, err := s.properties.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	tenants := make(map[uuid.UUID]*identity.User)
	if ids := report.TenantIDs(props); len(ids) > 0 {
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			tenants[u.ID] = u
		}
	}
	return report.BuildPropertiesSummary(props, tenants), nil
}

// Export renders a report as a workbook
func (s *ReportService) Export(ctx context.Context, kind report.Kind, startDate, endDate string) (*ExportFile, error) {
	if !kind.IsValid() {
		return nil, shared.NotFound("Report")
	}
	sheet, err := s.sheet(ctx, kind, startDate, endDate)
	if err != nil {
		return nil, err
	}
	data, err := s.renderer.Render(sheet)
	if err != nil {
		return nil, fmt.Errorf("render %s report: %w", kind, err)
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", kind, s.now().UTC().Format("20060102"), s.renderer.Extension()),
		ContentType: s.renderer.ContentType(),
		Data:        data,
	}, nil
}

// Archive renders a report, stores it and returns a download link.
// createdBy is nil for scheduled snapshots.
func (s *ReportService) Archive(ctx context.Context, kind report.Kind, createdBy *uuid.UUID) (_ *ArchiveResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "archive", attribute.String("report.kind", string(kind)))
	defer func() { telemetry.EndSpan(span, err) }()

	if s.storage == nil {
		return nil, shared.InvalidState("Report archival is not configured")
	}
	file, err := s.Export(ctx, kind, "", "")
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	key := fmt.Sprintf("reports/%s/%s/%s-%s.%s",
		kind, now.Format("2006/01/02"), kind, now.Format("150405"), s.renderer.Extension())
	if err := s.storage.Upload(ctx, key, file.Data, file.ContentType); err != nil {
		return nil, fmt.Errorf("upload %s report: %w", kind, err)
	}

	a := report.NewArchive(kind, key, s.renderer.Extension(), int64(len(file.Data)), createdBy)
	if err := s.archives.Create(ctx, a); err != nil {
		return nil, err
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, s.downloadTTL)
	if err != nil {
		return nil, fmt.Errorf("presign %s report: %w", kind, err)
	}

	s.logger.Info("Report archived",
		zap.String("archive_id", a.ID.String()),
		zap.String("kind", string(kind)),
		zap.String("storage_key", key),
		zap.Int64("size_bytes", a.SizeBytes))

	return &ArchiveResult{Archive: ToArchiveInfo(a), DownloadURL: url, ExpiresAt: expiresAt}, nil
}

// ListArchives returns stored reports, newest first
func (s *ReportService) ListArchives(ctx context.Context, limit int) ([]ArchiveInfo, error) {
	if limit <= 0 {
		limit = defaultArchiveLimit
	}
	if limit > maxArchiveLimit {
		limit = maxArchiveLimit
	}
	archives, err := s.archives.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]ArchiveInfo, len(archives))
	for i, a := range archives {
		out[i] = ToArchiveInfo(a)
	}
	return out, nil
}

// Snapshot archives each of kinds; an empty list means every report.
// It stops at the first failure.
func (s *ReportService) Snapshot(ctx context.Context, kinds []report.Kind) error {
	if len(kinds) == 0 {
		kinds = report.AllKinds()
	}
	for _, kind := range kinds {
		if _, err := s.Archive(ctx, kind, nil); err != nil {
			return fmt.Errorf("snapshot %s: %w", kind, err)
		}
	}
	return nil
}

// Invalidate drops cached report results
func (s *ReportService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx)
}

func (s *ReportService) sheet(ctx context.Context, kind report.Kind, startDate, endDate string) (Sheet, error) {
	switch kind {
	case report.KindOccupancy:
		o, err := s.Occupancy(ctx)
		if err != nil {
			return Sheet{}, err
		}
		return occupancySheet(o), nil
	case report.KindRevenue:
		r, err := s.Revenue(ctx, startDate, endDate)
		if err != nil {
			return Sheet{}, err
		}
		return revenueSheet(r), nil
	default:
		summary, err := s.PropertiesSummary(ctx)
		if err != nil {
			return Sheet{}, err
		}
		return summarySheet(summary), nil
	}
}

func (s *ReportService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("Report cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return ok
}

func (s *ReportService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("Report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
