package router

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"pet-ai-context/internal/adapters/entitlements/plans"
	mem "pet-ai-context/internal/adapters/storage/memory"
	pg "pet-ai-context/internal/adapters/storage/postgres"
	"pet-ai-context/internal/domain/aicontext"
	"pet-ai-context/internal/domain/diagnostics"
	"pet-ai-context/internal/domain/dogs"
	"pet-ai-context/internal/domain/facts"
	"pet-ai-context/internal/middleware"
	"pet-ai-context/internal/platform/logger"
	"pet-ai-context/internal/ports/auth"
	"pet-ai-context/internal/ports/entitlements"
	"pet-ai-context/internal/ports/llm"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-ai-context/docs" // spec swagger registrada vía init
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory (o DB_DSN por env).
	DB *sql.DB

	// Opcional: logger para requests. nil = sin logging.
	Log logger.Logger

	// Opcional: resolver de entitlement. Si es nil se arma el de plans
	// desde env (PLANS_BASE_URL / PLANS_API_KEY / PREMIUM_ALL).
	Entitlements entitlements.Resolver

	// Opcional: cliente de chat. nil = /ai/chat responde 502.
	Chat llm.Client
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.RequestLog(opts.Log))
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		dogRepo   dogs.Repository
		factRepo  facts.Repository
		diagsRepo diagnostics.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		dogRepo = pg.NewDogsRepo(db)
		factRepo = pg.NewFactsRepo(db)
		diagsRepo = pg.NewDiagnosticsRepo(db)
	} else {
		dogRepo = mem.NewDogRepo()
		factRepo = mem.NewFactRepo()
		diagsRepo = mem.NewDiagnosticsRepo()
	}

	// Services por módulo
	dogsSvc := dogs.NewService(dogRepo)
	factsSvc := facts.NewService(factRepo)
	diagsSvc := diagnostics.NewService(diagsRepo)
	contextSvc := aicontext.NewService(diagsSvc)

	ent := opts.Entitlements
	if ent == nil {
		ent = plansResolverFromEnv()
	}

	// Rutas por módulo
	dogs.RegisterRoutes(r, dogsSvc)
	facts.RegisterRoutes(r, factsSvc, dogsSvc)
	diagnostics.RegisterRoutes(r, diagsSvc, dogsSvc)
	aicontext.RegisterRoutes(r, contextSvc, dogsSvc, factsSvc, ent, opts.Chat)

	return r
}

func plansResolverFromEnv() entitlements.Resolver {
	client, err := plans.NewClient(plans.Config{
		BaseURL: os.Getenv("PLANS_BASE_URL"),
		APIKey:  os.Getenv("PLANS_API_KEY"),
		Timeout: 5 * time.Second,
	})
	if err != nil {
		client = nil
	}
	return plans.NewResolver(client)
}
