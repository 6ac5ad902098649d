package clients

import (
	"context"
	"errors"
	"time"

	"github.com/opencourier/client-provider/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence reads for clients and deliveries.
type Repository interface {
	ActiveClientCodes(ctx context.Context) ([]string, error)
	LangByCode(ctx context.Context, codes []string) (map[string]string, error)
	ClientByID(ctx context.Context, id int64) (*models.Client, error)
	Deliveries(ctx context.Context, query DeliveryQuery) ([]models.Delivery, error)
}

// DeliveryQuery narrows the delivery listing. Zero-valued fields are
// not applied.
type DeliveryQuery struct {
	ClientCode string
	Status     string
	Carrier    string
	Reference  string
	Since      *time.Time
	Until      *time.Time
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a clients repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) ActiveClientCodes(ctx context.Context) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("active = ?", true).
		Pluck("code", &codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *repositoryImpl) LangByCode(ctx context.Context, codes []string) (map[string]string, error) {
	if len(codes) == 0 {
		return map[string]string{}, nil
	}

	var rows []models.Client
	err := r.db.WithContext(ctx).
		Select("code", "lang").
		Where("code IN ?", codes).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	langs := make(map[string]string, len(rows))
	for _, row := range rows {
		langs[row.Code] = row.Lang
	}
	return langs, nil
}

func (r *repositoryImpl) ClientByID(ctx context.Context, id int64) (*models.Client, error) {
	var row models.Client
	err := r.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repositoryImpl) Deliveries(ctx context.Context, query DeliveryQuery) ([]models.Delivery, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Delivery{}).
		Where("client_code = ?", query.ClientCode)

	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.Carrier != "" {
		q = q.Where("carrier = ?", query.Carrier)
	}
	if query.Reference != "" {
		q = q.Where("reference = ?", query.Reference)
	}
	if query.Since != nil {
		q = q.Where("scheduled_at >= ?", *query.Since)
	}
	if query.Until != nil {
		q = q.Where("scheduled_at < ?", *query.Until)
	}

	var rows []models.Delivery
	if err := q.Order("scheduled_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
