package cmd

import (
	"sync"
	"time"

	"fairprice/core"
	"fairprice/store/asset"
	"fairprice/store/event"
	"fairprice/store/memory"
	"fairprice/store/price"
	"fairprice/store/system"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/postgres"
)

type stores struct {
	db       *db.DB
	assets   core.AssetStore
	prices   core.PriceStore
	settings core.SettingsStore
	events   core.EventStore
}

var (
	storesOnce sync.Once
	_stores    *stores
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

// provideStores opens the database once, or builds memory stores with --memory
func provideStores() *stores {
	storesOnce.Do(func() {
		if memoryMode {
			_stores = &stores{
				assets:   memory.NewAssetStore(),
				prices:   memory.NewPriceStore(),
				settings: memory.NewSettingsStore(),
				events:   memory.NewEventStore(),
			}
			return
		}

		database := provideDatabase()
		_stores = &stores{
			db:       database,
			assets:   asset.New(database),
			prices:   price.Cache(price.New(database), time.Minute),
			settings: system.New(providePropertyStore(database)),
			events:   event.New(database),
		}
	})

	return _stores
}
