package app

import (
	"log/slog"

	"github.com/mkrogh/reelmatch/internal/config"
	http_catalog "github.com/mkrogh/reelmatch/internal/delivery/http/catalog"
	http_identity "github.com/mkrogh/reelmatch/internal/delivery/http/identity"
	http_init "github.com/mkrogh/reelmatch/internal/delivery/http/init"
	http_matching "github.com/mkrogh/reelmatch/internal/delivery/http/matching"
	http_selection "github.com/mkrogh/reelmatch/internal/delivery/http/selection"
	http_session "github.com/mkrogh/reelmatch/internal/delivery/http/session"
	ws_session "github.com/mkrogh/reelmatch/internal/delivery/ws/session"
	infra_pg_init "github.com/mkrogh/reelmatch/internal/infra/postgres/init"
	infra_postgres_movie "github.com/mkrogh/reelmatch/internal/infra/postgres/movie"
	infra_postgres_response "github.com/mkrogh/reelmatch/internal/infra/postgres/response"
	infra_postgres_selection "github.com/mkrogh/reelmatch/internal/infra/postgres/selection"
	infra_postgres_session "github.com/mkrogh/reelmatch/internal/infra/postgres/session"
	infra_postgres_user "github.com/mkrogh/reelmatch/internal/infra/postgres/user"
	infra_redis_init "github.com/mkrogh/reelmatch/internal/infra/redis/init"
	infra_redis_notifier "github.com/mkrogh/reelmatch/internal/infra/redis/notifier"
	infra_tmdb "github.com/mkrogh/reelmatch/internal/infra/tmdb"
	usecase_identity "github.com/mkrogh/reelmatch/internal/usecase/identity"
	usecase_matchlist "github.com/mkrogh/reelmatch/internal/usecase/matchlist"
	usecase_selection "github.com/mkrogh/reelmatch/internal/usecase/selection"
	usecase_session "github.com/mkrogh/reelmatch/internal/usecase/session"
	usecase_vote "github.com/mkrogh/reelmatch/internal/usecase/vote"
)

func Go(cfg *config.Config) {
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	if err := infra_pg_init.MigrateUp(cfg.Postgres); err != nil {
		slog.Error("migrations failed", "error", err)
		panic(err)
	}

	notifier := infra_redis_notifier.New(redisConn, "session_events")
	catalog := infra_tmdb.New(cfg.Catalog)

	userRepository := infra_postgres_user.New(pgConn)
	sessionRepository := infra_postgres_session.New(pgConn)
	selectionRepository := infra_postgres_selection.New(pgConn)
	movieRepository := infra_postgres_movie.New(pgConn)
	responseRepository := infra_postgres_response.New(pgConn)

	identityUC := usecase_identity.New(userRepository)
	sessionUC := usecase_session.New(sessionRepository, notifier)
	selectionUC := usecase_selection.New(selectionRepository, notifier)
	matchlistUC := usecase_matchlist.New(
		movieRepository,
		movieRepository,
		catalog,
		notifier,
		cfg.Matching.Pages,
		cfg.Matching.PollInterval,
	)
	voteUC := usecase_vote.New(responseRepository, responseRepository, notifier)

	hub := ws_session.NewHub(notifier)
	go hub.Run()

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_identity.New(identityUC))
	controllerPool.Add(http_session.New(sessionUC))
	controllerPool.Add(http_selection.New(selectionUC, sessionUC))
	controllerPool.Add(http_matching.New(matchlistUC, voteUC, sessionUC))
	controllerPool.Add(http_catalog.New(catalog))
	controllerPool.Add(ws_session.NewController(hub))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
