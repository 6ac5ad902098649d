package models

import "time"

// Client is one serviced client account.
type Client struct {
	ID           int64  `gorm:"primaryKey"`
	Code         string `gorm:"size:32;uniqueIndex"`
	Name         string
	Lang         string `gorm:"size:8"`
	Counterparty string
	Timezone     string `gorm:"size:64"`
	Active       bool   `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Delivery is one shipment row for a client.
type Delivery struct {
	ID          int64  `gorm:"primaryKey"`
	ClientCode  string `gorm:"size:32;index"`
	Reference   string `gorm:"size:64"`
	Status      string `gorm:"size:32;index"`
	Carrier     string `gorm:"size:64"`
	Destination string
	WeightKG    float64
	TrackingURL string
	ScheduledAt time.Time
	DeliveredAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TFClient is the customer record kept in sync through the TF surface.
type TFClient struct {
	ID        int64  `gorm:"primaryKey"`
	Code      string `gorm:"size:32;uniqueIndex"`
	Name      string
	Segment   string `gorm:"size:32"`
	Region    string `gorm:"size:32"`
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// All lists every model for dev auto-migration.
func All() []any {
	return []any{&Client{}, &Delivery{}, &TFClient{}}
}
