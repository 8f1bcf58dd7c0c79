package wire

import (
	"log"

	"gorm.io/gorm"

	"streamalerts/internal/config"
	"streamalerts/internal/dbmongo"
	"streamalerts/internal/dbmysql"
	"streamalerts/internal/directory"
	"streamalerts/internal/notify"
)

// Application bundles everything the entrypoint needs.
type Application struct {
	Config   *config.Config
	DB       *gorm.DB
	Mongo    *dbmongo.MongoClient
	Pipeline *notify.Pipeline
	Handler  *notify.Handler
	Sweeper  *notify.RetentionSweeper
}

func ProvideConfig() *config.Config {
	return config.LoadConfig()
}

func ProvideDatabaseConnection(cfg *config.Config) (*gorm.DB, error) {
	db, err := dbmysql.NewMySQL(cfg)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&dbmysql.Alert{},
		&dbmysql.FilterPreference{},
	); err != nil {
		log.Printf("Migration warning: %v", err)
	}

	return db, nil
}

func ProvideTaxonomy() *notify.Taxonomy {
	return notify.DefaultTaxonomy()
}

func ProvideAggregator(cfg *config.Config, taxonomy *notify.Taxonomy, store notify.AlertStore) *notify.Aggregator {
	return notify.NewAggregator(taxonomy, store, cfg.AggregationWindow(), cfg.Notification.LockShards)
}

// ProvideEmailNotifier returns nil unless the email channel is switched on;
// the pipeline treats a nil notifier as "in-app only".
func ProvideEmailNotifier(cfg *config.Config, taxonomy *notify.Taxonomy, client *directory.Client) *notify.EmailNotifier {
	if !cfg.Notification.EmailEnabled {
		return nil
	}
	return notify.NewEmailNotifier(taxonomy, client)
}

// ProvideMongoClient connects the archive store, or returns nil when the
// archive is disabled.
func ProvideMongoClient(cfg *config.Config) (*dbmongo.MongoClient, error) {
	if !cfg.MongoDB.Enabled {
		return nil, nil
	}
	return dbmongo.NewMongoConnection(cfg)
}

func ProvideAlertArchive(cfg *config.Config, mongoClient *dbmongo.MongoClient) *dbmongo.AlertArchive {
	if mongoClient == nil {
		return nil
	}
	return dbmongo.NewAlertArchive(mongoClient, cfg.MongoDB.ArchiveCollection)
}

// The nil checks below matter: a nil *AlertArchive wrapped in a non-nil
// interface would slip past the consumers' archive-disabled checks.
func ProvideArchiver(archive *dbmongo.AlertArchive) notify.Archiver {
	if archive == nil {
		return nil
	}
	return archive
}

func ProvideArchiveReader(archive *dbmongo.AlertArchive) notify.ArchiveReader {
	if archive == nil {
		return nil
	}
	return archive
}

func ProvideSweeper(cfg *config.Config, store notify.AlertStore, archive notify.Archiver) *notify.RetentionSweeper {
	interval := cfg.RetentionSweepInterval()
	return notify.NewRetentionSweeper(store, archive, cfg.RetentionMaxAge(), interval)
}
