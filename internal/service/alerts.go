package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
	"github.com/nikicasio/traffic-alert-app/internal/geo"
	"github.com/nikicasio/traffic-alert-app/pkg/e"
	"github.com/nikicasio/traffic-alert-app/pkg/validator"
)

// AlertService owns alert lifecycle rules: validation, expiry, ownership and
// the spatial filtering that runs after the storage prefilter.
type AlertService struct {
	repo   AlertRepository
	users  *UserDirectory
	logger *slog.Logger
	ttl    time.Duration
	now    func() time.Time
}

func NewAlertService(logger *slog.Logger, repo AlertRepository, users *UserDirectory, ttl time.Duration) *AlertService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AlertService{
		repo:   repo,
		users:  users,
		logger: logger,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *AlertService) ReportAlert(ctx context.Context, userID uuid.UUID, req domain.ReportAlertRequest) (*domain.Alert, error) {
	const op = "service.Alert.ReportAlert"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	severity := domain.DefaultSeverity
	if req.Severity != nil {
		severity = *req.Severity
	}

	now := s.now().UTC()
	expires := now.Add(s.ttl)
	a := &domain.Alert{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        domain.AlertType(req.Type),
		Lat:         *req.Lat,
		Lng:         *req.Lng,
		Severity:    severity,
		Description: req.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
		ExpiresAt:   &expires,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ref := s.users.Ref(ctx, userID)
	a.Reporter = &ref

	s.logger.Info("alert reported",
		slog.String("id", a.ID.String()),
		slog.String("type", string(a.Type)),
		slog.Float64("lat", a.Lat),
		slog.Float64("lng", a.Lng),
	)
	return a, nil
}

// QueryNearby returns effectively active alerts within the radius, nearest first.
func (s *AlertService) QueryNearby(ctx context.Context, q domain.NearbyQuery) ([]domain.AlertWithDistance, error) {
	const op = "service.Alert.QueryNearby"

	if q.RadiusMeters == 0 {
		q.RadiusMeters = domain.DefaultNearbyRadiusMeters
	}
	if err := validator.ValidateStruct(q); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	lat, lng := *q.Lat, *q.Lng
	radiusKm := float64(q.RadiusMeters) / 1000

	f := filterFor(lat, lng, radiusKm, now)
	if q.Type != nil {
		t := domain.AlertType(*q.Type)
		f.Type = &t
	}
	f.Severity = q.Severity

	candidates, err := s.repo.ListCandidates(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]domain.AlertWithDistance, 0, len(candidates))
	for _, a := range candidates {
		if !a.EffectivelyActive(now) {
			continue
		}
		d := geo.HaversineKm(lat, lng, a.Lat, a.Lng)
		if d <= radiusKm {
			out = append(out, domain.NewAlertWithDistance(a, d))
		}
	}
	sortByDistance(out)
	s.attachReporters(ctx, out)

	return out, nil
}

// QueryDirectional keeps alerts ahead of the heading, within angle/2 on either side.
func (s *AlertService) QueryDirectional(ctx context.Context, q domain.DirectionalQuery) ([]domain.AlertWithDistance, error) {
	const op = "service.Alert.QueryDirectional"

	if q.RadiusMeters == 0 {
		q.RadiusMeters = domain.DefaultDirectionalRadiusMeters
	}
	if q.AngleDegrees == 0 {
		q.AngleDegrees = domain.DefaultDirectionalAngle
	}
	if err := validator.ValidateStruct(q); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	lat, lng := *q.Lat, *q.Lng
	radiusKm := float64(q.RadiusMeters) / 1000
	heading := geo.DegToRad(*q.Heading)
	half := geo.DegToRad(q.AngleDegrees / 2)

	candidates, err := s.repo.ListCandidates(ctx, filterFor(lat, lng, radiusKm, now))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]domain.AlertWithDistance, 0, len(candidates))
	for _, a := range candidates {
		if !a.EffectivelyActive(now) {
			continue
		}
		d := geo.HaversineKm(lat, lng, a.Lat, a.Lng)
		if d > radiusKm {
			continue
		}
		bearing := geo.BearingRad(lat, lng, a.Lat, a.Lng)
		if math.Abs(geo.AngleDiffRad(bearing, heading)) <= half {
			out = append(out, domain.NewAlertWithDistance(a, d))
		}
	}
	sortByDistance(out)
	s.attachReporters(ctx, out)

	return out, nil
}

func (s *AlertService) ConfirmAlert(ctx context.Context, alertID, userID uuid.UUID, req domain.ConfirmAlertRequest) (*domain.ConfirmationResult, error) {
	const op = "service.Alert.ConfirmAlert"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	c := &domain.Confirmation{
		ID:        uuid.New(),
		AlertID:   alertID,
		UserID:    userID,
		Type:      domain.ConfirmationType(req.Type),
		Comment:   req.Comment,
		CreatedAt: s.now().UTC(),
	}

	a, err := s.repo.Confirm(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ref := s.users.Ref(ctx, userID)
	c.User = &ref

	s.logger.Info("alert confirmed",
		slog.String("id", alertID.String()),
		slog.String("confirmation_type", string(c.Type)),
		slog.Int("confirmed_count", a.ConfirmedCount),
		slog.Int("dismissed_count", a.DismissedCount),
		slog.Bool("is_active", a.IsActive),
	)
	return &domain.ConfirmationResult{Alert: *a, Confirmation: *c}, nil
}

func (s *AlertService) UpdateAlert(ctx context.Context, alertID, requesterID uuid.UUID, req domain.UpdateAlertRequest) (*domain.Alert, error) {
	const op = "service.Alert.UpdateAlert"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	a, err := s.owned(ctx, op, alertID, requesterID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		a.Type = domain.AlertType(*req.Type)
	}
	if req.Severity != nil {
		a.Severity = *req.Severity
	}
	if req.Description != nil {
		a.Description = req.Description
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ref := s.users.Ref(ctx, a.UserID)
	a.Reporter = &ref
	return a, nil
}

func (s *AlertService) DeleteAlert(ctx context.Context, alertID, requesterID uuid.UUID) error {
	const op = "service.Alert.DeleteAlert"

	if _, err := s.owned(ctx, op, alertID, requesterID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, alertID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AdminDeleteAlert removes an alert regardless of who reported it.
func (s *AlertService) AdminDeleteAlert(ctx context.Context, alertID uuid.UUID) error {
	const op = "service.Alert.AdminDeleteAlert"

	if err := s.repo.Delete(ctx, alertID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.logger.Warn("alert removed by admin", slog.String("id", alertID.String()))
	return nil
}

// AdminToggleAlert flips the alert's active flag without an ownership check.
func (s *AlertService) AdminToggleAlert(ctx context.Context, alertID uuid.UUID) (*domain.Alert, error) {
	const op = "service.Alert.AdminToggleAlert"

	a, err := s.repo.Get(ctx, alertID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a.IsActive = !a.IsActive
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.logger.Warn("alert status toggled by admin",
		slog.String("id", alertID.String()),
		slog.Bool("is_active", a.IsActive),
	)

	ref := s.users.Ref(ctx, a.UserID)
	a.Reporter = &ref
	return a, nil
}

func (s *AlertService) GetAlert(ctx context.Context, alertID uuid.UUID) (*domain.AlertDetails, error) {
	const op = "service.Alert.GetAlert"

	a, err := s.repo.Get(ctx, alertID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byAlert, err := s.repo.LoadConfirmationsFor(ctx, []uuid.UUID{alertID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	confirmations := byAlert[alertID]
	if confirmations == nil {
		confirmations = []domain.Confirmation{}
	}

	ids := make([]uuid.UUID, 0, len(confirmations)+1)
	ids = append(ids, a.UserID)
	for _, c := range confirmations {
		ids = append(ids, c.UserID)
	}
	users, err := s.users.Lookup(ctx, ids)
	if err != nil {
		s.logger.Warn("user lookup failed", slog.String("op", op), slog.Any("error", err))
	}

	a.Reporter = refFor(users, a.UserID)
	for i := range confirmations {
		confirmations[i].User = refFor(users, confirmations[i].UserID)
	}

	return &domain.AlertDetails{Alert: *a, Confirmations: confirmations}, nil
}

// ListReports returns everything the user reported, including expired and inactive alerts.
func (s *AlertService) ListReports(ctx context.Context, userID uuid.UUID) ([]domain.Alert, error) {
	const op = "service.Alert.ListReports"

	alerts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return alerts, nil
}

// PurgeExpired drops alerts whose expiry is older than keep.
func (s *AlertService) PurgeExpired(ctx context.Context, keep time.Duration) (int64, error) {
	const op = "service.Alert.PurgeExpired"

	n, err := s.repo.PurgeExpired(ctx, s.now().UTC().Add(-keep))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (s *AlertService) owned(ctx context.Context, op string, alertID, requesterID uuid.UUID) (*domain.Alert, error) {
	a, err := s.repo.Get(ctx, alertID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if a.UserID != requesterID {
		s.logger.Warn("alert ownership check failed",
			slog.String("op", op),
			slog.String("id", alertID.String()),
			slog.String("requester", requesterID.String()),
		)
		return nil, fmt.Errorf("%s: %w", op, e.ErrForbidden)
	}
	return a, nil
}

func (s *AlertService) attachReporters(ctx context.Context, alerts []domain.AlertWithDistance) {
	if len(alerts) == 0 {
		return
	}
	ids := make([]uuid.UUID, 0, len(alerts))
	for _, a := range alerts {
		ids = append(ids, a.UserID)
	}
	users, err := s.users.Lookup(ctx, ids)
	if err != nil {
		s.logger.Warn("user lookup failed", slog.Any("error", err))
	}
	for i := range alerts {
		alerts[i].Reporter = refFor(users, alerts[i].UserID)
	}
}

func filterFor(lat, lng, radiusKm float64, now time.Time) domain.AlertFilter {
	box := geo.BoundingBox(lat, lng, radiusKm)
	return domain.AlertFilter{
		MinLat:   box.MinLat,
		MaxLat:   box.MaxLat,
		MinLng:   box.MinLng,
		MaxLng:   box.MaxLng,
		AllLng:   box.AllLng,
		ActiveAt: now,
	}
}

func sortByDistance(alerts []domain.AlertWithDistance) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].DistanceKm < alerts[j].DistanceKm
	})
}

func refFor(users map[uuid.UUID]domain.User, id uuid.UUID) *domain.UserRef {
	if u, ok := users[id]; ok {
		ref := u.Ref()
		return &ref
	}
	return &domain.UserRef{ID: id}
}
