package main

import (
	"github.com/thelaith/satire-empire/internal/config"
	"github.com/thelaith/satire-empire/internal/logging"
	"github.com/thelaith/satire-empire/internal/notify"
	"github.com/thelaith/satire-empire/internal/storage"
)

func loadConfigOrExit(path string) *config.Rules {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid satire configuration", err, logging.Fields{"config_path": path, "hint": "create a satire_config.json with a 'territory_list' array of territory objects (name,x,y,longitude,latitude,wealth,attention,technology) plus timing, limits, balance, victory and action_costs sections"})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}

// newEventLogger returns a sink that writes every simulation event to the
// structured log. A realtime transport slots in alongside it later.
func newEventLogger() notify.Sink {
	return notify.Handlers{
		func(eventType string, payload any) {
			logging.Debug("simulation event", logging.Fields{"event": eventType, "payload": payload})
		},
	}
}
