package counterparty

import (
	"context"
	"errors"

	"github.com/opencourier/client-provider/pkg/db/models"
	pkgerrors "github.com/opencourier/client-provider/pkg/errors"
	"gorm.io/gorm"
)

// Service resolves the counterparty registered for a client code.
type Service interface {
	Counterparty(ctx context.Context, code string) (string, error)
}

type service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "counterparty database required")
	}
	return &service{db: db}, nil
}

// Counterparty returns the counterparty for the code, or the empty
// string when the client is unknown. An unknown code is not an error;
// the route answers 200 either way.
func (s *service) Counterparty(ctx context.Context, code string) (string, error) {
	var row models.Client
	err := s.db.WithContext(ctx).
		Select("counterparty").
		Where("code = ?", code).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load counterparty")
	}
	return row.Counterparty, nil
}
