package estate

import (
	"context"
	"errors"
	"time"

	"estate/db"
	"estate/internal/accounting"
	"estate/internal/metrics"
	"estate/models"
)

// Service выполняет команды процесса продажи. Каждая команда - одна транзакция.
type Service struct {
	store    *db.Storage
	invoicer *accounting.Invoicer
	metrics  *metrics.Metrics
	now      func() time.Time
}

type Option func(*Service)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store *db.Storage, m *metrics.Metrics, opts ...Option) *Service {
	s := &Service{store: store, metrics: m, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.invoicer = accounting.NewInvoicer(s.now)
	return s
}

func (s *Service) today() time.Time {
	return s.now().UTC()
}

// Пользователи и контрагенты

func (s *Service) CreateUser(ctx context.Context, u *models.User) error {
	if err := models.Validate(u); err != nil {
		return err
	}
	u.CreatedAt = s.today()
	return s.store.CreateUser(ctx, u)
}

func (s *Service) CreatePartner(ctx context.Context, p *models.Partner) error {
	if err := models.Validate(p); err != nil {
		return err
	}
	p.CreatedAt = s.today()
	return s.store.CreatePartner(ctx, p)
}

// Справочники

func (s *Service) CreatePropertyType(ctx context.Context, t *models.PropertyType) error {
	if err := models.Validate(t); err != nil {
		return err
	}
	return s.store.CreatePropertyType(ctx, t)
}

// GetPropertyType возвращает тип вместе с его объектами (включая архивные)
func (s *Service) GetPropertyType(ctx context.Context, id int) (*models.PropertyType, error) {
	t, err := s.store.GetPropertyType(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Properties, err = s.store.GetProperties(ctx, db.PropertyFilter{PropertyTypeID: id, IncludeArchived: true})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeletePropertyType(ctx context.Context, id int) error {
	return s.store.DeletePropertyType(ctx, id)
}

func (s *Service) CreatePropertyTag(ctx context.Context, t *models.PropertyTag) error {
	if err := models.Validate(t); err != nil {
		return err
	}
	return s.store.CreatePropertyTag(ctx, t)
}

func (s *Service) DeletePropertyTag(ctx context.Context, id int) error {
	return s.store.DeletePropertyTag(ctx, id)
}

// Seed создаёт отсутствующие типы, теги и пользователей. Дубликаты пропускаются.
func (s *Service) Seed(ctx context.Context, types []models.PropertyType, tags []models.PropertyTag, users []models.User) error {
	for i := range types {
		if err := skipDuplicate(s.CreatePropertyType(ctx, &types[i])); err != nil {
			return err
		}
	}
	for i := range tags {
		if err := skipDuplicate(s.CreatePropertyTag(ctx, &tags[i])); err != nil {
			return err
		}
	}
	for i := range users {
		if err := skipDuplicate(s.CreateUser(ctx, &users[i])); err != nil {
			return err
		}
	}
	return nil
}

func skipDuplicate(err error) error {
	if models.IsValidation(err) {
		return nil
	}
	return err
}

// requireFound превращает "не найдено" в ошибку валидации ссылки
func requireFound(err error, what string) error {
	if errors.Is(err, models.ErrNotFound) {
		return models.NewValidationError("%s does not exist.", what)
	}
	return err
}
