//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"streamalerts/internal/common"
	"streamalerts/internal/dbmysql"
	"streamalerts/internal/directory"
	"streamalerts/internal/notify"
)

func InitializeApplication() (*Application, error) {
	wire.Build(
		ProvideConfig,
		ProvideDatabaseConnection,
		ProvideTaxonomy,
		dbmysql.NewAlertRepository,
		wire.Bind(new(notify.AlertStore), new(*dbmysql.AlertRepository)),
		dbmysql.NewPreferenceRepository,
		wire.Bind(new(notify.PreferenceStore), new(*dbmysql.PreferenceRepository)),
		wire.Bind(new(notify.PreferenceAdmin), new(*dbmysql.PreferenceRepository)),
		directory.NewClient,
		wire.Bind(new(common.MembershipService), new(*directory.Client)),
		notify.NewResolver,
		notify.NewFilterEvaluator,
		notify.NewUnreadCounter,
		ProvideAggregator,
		ProvideEmailNotifier,
		notify.NewPipeline,
		notify.NewHandler,
		ProvideMongoClient,
		ProvideAlertArchive,
		ProvideArchiver,
		ProvideArchiveReader,
		ProvideSweeper,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
