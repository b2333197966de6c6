package event

import (
	"context"

	"fairprice/core"

	"github.com/fox-one/pkg/store/db"
)

type store struct {
	db *db.DB
}

// New new event store
func New(db *db.DB) core.EventStore {
	return &store{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Event{})
		if err := tx.AutoMigrate(core.Event{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *store) Create(ctx context.Context, event *core.Event) error {
	return s.db.Update().Where("trace_id = ?", event.TraceID).FirstOrCreate(event).Error
}

func (s *store) List(ctx context.Context, from int64, limit int) ([]*core.Event, error) {
	var events []*core.Event
	if err := s.db.View().Where("id > ?", from).Order("id").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
