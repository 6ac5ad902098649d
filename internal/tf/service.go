package tf

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/opencourier/client-provider/pkg/db/models"
	pkgerrors "github.com/opencourier/client-provider/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service keeps TF customer records in sync. Arguments arrive as the
// already-normalized request maps; unknown keys are ignored.
type Service interface {
	GetClient(ctx context.Context, args map[string]any) (map[string]any, error)
	PutClient(ctx context.Context, args map[string]any) error
	DeleteClient(ctx context.Context, args map[string]any) error
}

type service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "tf database required")
	}
	return &service{db: db}, nil
}

// GetClient returns the first record matching the filter arguments, or
// an empty map when nothing matches.
func (s *service) GetClient(ctx context.Context, args map[string]any) (map[string]any, error) {
	query := s.db.WithContext(ctx).Model(&models.TFClient{})
	for key, value := range args {
		switch key {
		case "code", "name", "segment", "region":
			query = query.Where(fmt.Sprintf("%s = ?", key), fmt.Sprint(value))
		case "active":
			if active, ok := parseBoolArg(value); ok {
				query = query.Where("active = ?", active)
			}
		}
	}

	var row models.TFClient
	err := query.First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tf client")
	}

	return map[string]any{
		"code":    row.Code,
		"name":    row.Name,
		"segment": row.Segment,
		"region":  row.Region,
		"active":  row.Active,
	}, nil
}

// PutClient upserts the record identified by the code argument.
func (s *service) PutClient(ctx context.Context, args map[string]any) error {
	code, ok := args["code"].(string)
	if !ok || code == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "code argument required")
	}

	row := models.TFClient{Code: code}
	updates := []string{}
	if name, ok := args["name"].(string); ok {
		row.Name = name
		updates = append(updates, "name")
	}
	if segment, ok := args["segment"].(string); ok {
		row.Segment = segment
		updates = append(updates, "segment")
	}
	if region, ok := args["region"].(string); ok {
		row.Region = region
		updates = append(updates, "region")
	}
	if active, ok := parseBoolArg(args["active"]); ok {
		row.Active = active
		updates = append(updates, "active")
	}

	conflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: len(updates) == 0,
	}
	if len(updates) > 0 {
		conflict.DoUpdates = clause.AssignmentColumns(updates)
	}

	err := s.db.WithContext(ctx).Clauses(conflict).Create(&row).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert tf client")
	}
	return nil
}

// DeleteClient removes the record identified by the code argument.
func (s *service) DeleteClient(ctx context.Context, args map[string]any) error {
	code, ok := args["code"].(string)
	if !ok || code == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "code argument required")
	}

	result := s.db.WithContext(ctx).Where("code = ?", code).Delete(&models.TFClient{})
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "delete tf client")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("tf client %s not found", code))
	}
	return nil
}

// parseBoolArg accepts native booleans and the normalized string forms.
func parseBoolArg(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed, true
		}
	}
	return false, false
}
