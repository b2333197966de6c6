package price

import (
	"context"

	"fairprice/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type priceStore struct {
	db *db.DB
}

// New new price store
func New(db *db.DB) core.PriceStore {
	return &priceStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Price{})

		if err := tx.AutoMigrate(core.Price{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *priceStore) Find(ctx context.Context, assetID string) (*core.Price, error) {
	var price core.Price
	err := s.db.View().Where("asset_id = ?", assetID).First(&price).Error
	if store.IsErrNotFound(err) {
		return &core.Price{AssetID: assetID}, nil
	}

	if err != nil {
		return nil, err
	}

	return &price, nil
}

func (s *priceStore) Save(ctx context.Context, price *core.Price) (bool, error) {
	var applied bool
	err := s.db.Tx(func(tx *db.DB) error {
		updates := map[string]interface{}{
			"price":     price.Price,
			"timestamp": price.Timestamp,
			"source":    price.Source,
			"version":   gorm.Expr("version + 1"),
		}

		// never replace a newer observation
		r := tx.Update().Model(core.Price{}).
			Where("asset_id = ? AND timestamp <= ?", price.AssetID, price.Timestamp).
			Updates(updates)
		if r.Error != nil {
			return r.Error
		}

		if r.RowsAffected > 0 {
			applied = true
			return nil
		}

		var count int64
		if err := tx.Update().Model(core.Price{}).Where("asset_id = ?", price.AssetID).Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return nil
		}

		p := *price
		p.ID = 0
		if err := tx.Update().Create(&p).Error; err != nil {
			return err
		}

		applied = true
		return nil
	})

	return applied, err
}
