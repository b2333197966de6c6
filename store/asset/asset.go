package asset

import (
	"context"

	"fairprice/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type assetStore struct {
	db *db.DB
}

// New new asset store
func New(db *db.DB) core.AssetStore {
	return &assetStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Asset{})
		if err := tx.AutoMigrate(core.Asset{}).Error; err != nil {
			return err
		}

		tx = db.Update().Model(core.SupportedAsset{})
		if err := tx.AutoMigrate(core.SupportedAsset{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *assetStore) Find(ctx context.Context, assetID string) (*core.Asset, error) {
	var asset core.Asset
	err := s.db.View().Where("asset_id = ?", assetID).First(&asset).Error
	if store.IsErrNotFound(err) {
		return &core.Asset{}, nil
	}

	if err != nil {
		return nil, err
	}

	return &asset, nil
}

func (s *assetStore) Save(ctx context.Context, asset *core.Asset) error {
	if asset.ID == 0 {
		return s.create(asset)
	}

	version := asset.Version
	asset.Version++

	tx := s.db.Update().Model(asset).Where("version = ?", version).Updates(map[string]interface{}{
		"decimals":              asset.Decimals,
		"is_manual":             asset.IsManual,
		"manual_price":          asset.ManualPrice,
		"feed_id":               asset.FeedID,
		"underlying":            asset.Underlying,
		"native_asset":          asset.NativeAsset,
		"native_asset_decimals": asset.NativeAssetDecimals,
		"min_rate":              asset.MinRate,
		"max_rate":              asset.MaxRate,
		"version":               asset.Version,
	})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *assetStore) AddSupported(ctx context.Context, assetID string) (bool, error) {
	var added bool
	err := s.db.Tx(func(tx *db.DB) error {
		var count int64
		if err := tx.Update().Model(core.SupportedAsset{}).Where("asset_id = ?", assetID).Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return nil
		}

		added = true
		return tx.Update().Create(&core.SupportedAsset{AssetID: assetID}).Error
	})

	return added, err
}

func (s *assetStore) ListSupported(ctx context.Context) ([]string, error) {
	var assets []*core.SupportedAsset
	if err := s.db.View().Order("id").Find(&assets).Error; err != nil {
		return nil, err
	}

	ids := make([]string, len(assets))
	for idx, a := range assets {
		ids[idx] = a.AssetID
	}

	return ids, nil
}

// create inserts a new asset, a row written meanwhile by another writer is a conflict
func (s *assetStore) create(asset *core.Asset) error {
	return s.db.Tx(func(tx *db.DB) error {
		var count int64
		if err := tx.Update().Model(core.Asset{}).Where("asset_id = ?", asset.AssetID).Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return db.ErrOptimisticLock
		}

		asset.Version = 1
		return tx.Update().Create(asset).Error
	})
}
