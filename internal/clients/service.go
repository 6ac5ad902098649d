package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/opencourier/client-provider/pkg/db/models"
	pkgerrors "github.com/opencourier/client-provider/pkg/errors"
	"github.com/opencourier/client-provider/pkg/redis"
	"github.com/opencourier/client-provider/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// Service exposes client and delivery reads for the HTTP layer.
type Service interface {
	GetClients(ctx context.Context) ([]string, error)
	GetClientLangList(ctx context.Context, codes []string) (map[string]string, error)
	GetDeliveries(ctx context.Context, client string, searchParams map[string]any, timezone string) ([]*types.Record, error)
	GetDeliveriesV2(ctx context.Context, client string, searchParams map[string]any, timezone string) ([]*types.Record, error)
	GetClientData(ctx context.Context, id int64) (map[string]any, error)
}

// Cache is the subset of the redis client the service reads through.
// A nil cache disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type service struct {
	repo    Repository
	cache   Cache
	listTTL time.Duration
	dataTTL time.Duration
}

// ServiceParams wires the client service dependencies.
type ServiceParams struct {
	Repo          Repository
	Cache         Cache
	ClientListTTL time.Duration
	ClientDataTTL time.Duration
}

func NewService(p ServiceParams) (Service, error) {
	if p.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "clients repository required")
	}
	return &service{
		repo:    p.Repo,
		cache:   p.Cache,
		listTTL: p.ClientListTTL,
		dataTTL: p.ClientDataTTL,
	}, nil
}

func (s *service) GetClients(ctx context.Context) ([]string, error) {
	key := redis.CacheKey("clients", "list")
	cacheable := s.cache != nil
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var codes []string
			if json.Unmarshal([]byte(raw), &codes) == nil {
				return codes, nil
			}
		case !errors.Is(err, redis.ErrMiss):
			// a broken cache reads like a miss, but skip the write-back
			cacheable = false
		}
	}

	codes, err := s.repo.ActiveClientCodes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list clients")
	}

	if cacheable {
		if raw, err := json.Marshal(codes); err == nil {
			_ = s.cache.Set(ctx, key, raw, s.listTTL)
		}
	}
	return codes, nil
}

func (s *service) GetClientLangList(ctx context.Context, codes []string) (map[string]string, error) {
	langs, err := s.repo.LangByCode(ctx, codes)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list client languages")
	}
	return langs, nil
}

func (s *service) GetDeliveries(ctx context.Context, client string, searchParams map[string]any, timezone string) ([]*types.Record, error) {
	rows, loc, err := s.deliveryRows(ctx, client, searchParams, timezone)
	if err != nil {
		return nil, err
	}

	records := make([]*types.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, deliveryRecord(row, loc))
	}
	return records, nil
}

func (s *service) GetDeliveriesV2(ctx context.Context, client string, searchParams map[string]any, timezone string) ([]*types.Record, error) {
	rows, loc, err := s.deliveryRows(ctx, client, searchParams, timezone)
	if err != nil {
		return nil, err
	}

	records := make([]*types.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, deliveryRecordV2(row, loc))
	}
	return records, nil
}

func (s *service) deliveryRows(ctx context.Context, client string, searchParams map[string]any, timezone string) ([]models.Delivery, *time.Location, error) {
	if client == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "client code required")
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("unknown timezone %q", timezone))
	}

	query, err := buildDeliveryQuery(client, searchParams)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.repo.Deliveries(ctx, query)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list deliveries")
	}
	return rows, loc, nil
}

func (s *service) GetClientData(ctx context.Context, id int64) (map[string]any, error) {
	key := redis.CacheKey("clients", "data", fmt.Sprint(id))
	cacheable := s.cache != nil
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var data map[string]any
			if json.Unmarshal([]byte(raw), &data) == nil {
				return data, nil
			}
		case !errors.Is(err, redis.ErrMiss):
			cacheable = false
		}
	}

	row, err := s.repo.ClientByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
	}
	if row == nil {
		return nil, nil
	}

	data := map[string]any{
		"id":           row.ID,
		"code":         row.Code,
		"name":         row.Name,
		"lang":         row.Lang,
		"counterparty": row.Counterparty,
		"timezone":     row.Timezone,
		"active":       row.Active,
	}

	if cacheable {
		if raw, err := json.Marshal(data); err == nil {
			_ = s.cache.Set(ctx, key, raw, s.dataTTL)
		}
	}
	return data, nil
}

// buildDeliveryQuery maps the caller's search params onto the known
// filter columns. Unknown keys are ignored, matching the tolerant
// behavior of the rest of the argument handling.
func buildDeliveryQuery(client string, searchParams map[string]any) (DeliveryQuery, error) {
	query := DeliveryQuery{ClientCode: client}
	for key, value := range searchParams {
		s, ok := value.(string)
		if !ok {
			continue
		}
		switch key {
		case "status":
			query.Status = s
		case "carrier":
			query.Carrier = s
		case "reference":
			query.Reference = s
		case "since", "until":
			ts, err := parseSearchTime(s)
			if err != nil {
				return DeliveryQuery{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("invalid %s filter", key))
			}
			if key == "since" {
				query.Since = ts
			} else {
				query.Until = ts
			}
		}
	}
	return query, nil
}

func parseSearchTime(value string) (*time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return &ts, nil
		}
	}
	return nil, fmt.Errorf("cannot parse time %q", value)
}

func deliveryRecord(d models.Delivery, loc *time.Location) *types.Record {
	rec := types.NewRecord().
		Set("reference", d.Reference).
		Set("client", d.ClientCode).
		Set("status", d.Status).
		Set("carrier", d.Carrier).
		Set("destination", d.Destination).
		Set("scheduled_at", d.ScheduledAt.In(loc).Format(timeLayout))
	if d.DeliveredAt != nil {
		rec.Set("delivered_at", d.DeliveredAt.In(loc).Format(timeLayout))
	} else {
		rec.Set("delivered_at", "")
	}
	return rec
}

func deliveryRecordV2(d models.Delivery, loc *time.Location) *types.Record {
	rec := deliveryRecord(d, loc)
	rec.Set("weight_kg", d.WeightKG)
	rec.Set("tracking_url", d.TrackingURL)
	return rec
}
