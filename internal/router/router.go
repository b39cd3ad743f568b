package router

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "pet-shelter-platform/internal/adapters/storage/memory"
	pg "pet-shelter-platform/internal/adapters/storage/postgres"
	"pet-shelter-platform/internal/domain/adoptions"
	"pet-shelter-platform/internal/domain/animals"
	"pet-shelter-platform/internal/domain/categories"
	"pet-shelter-platform/internal/domain/dashboard"
	"pet-shelter-platform/internal/domain/interviews"
	"pet-shelter-platform/internal/domain/shelters"
	"pet-shelter-platform/internal/domain/staffing"
	"pet-shelter-platform/internal/domain/users"
	"pet-shelter-platform/internal/middleware"
	"pet-shelter-platform/internal/platform/metrics"
	"pet-shelter-platform/internal/ports/auth"
	"pet-shelter-platform/internal/ports/storage"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *pg.DB
}

func NewRouter(opts Options) (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		shelterRepo   shelters.Repository
		categoryRepo  categories.Repository
		animalRepo    animals.Repository
		requestRepo   adoptions.Repository
		interviewRepo interviews.Repository
		staffRepo     staffing.Repository
		userRepo      users.Repository
		atomic        storage.Atomic
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err != nil {
				return nil, err
			}
			db = opened
		}
	}

	if db != nil {
		shelterRepo = pg.NewSheltersRepo(db)
		categoryRepo = pg.NewCategoriesRepo(db)
		animalRepo = pg.NewAnimalsRepo(db)
		requestRepo = pg.NewAdoptionsRepo(db)
		interviewRepo = pg.NewInterviewsRepo(db)
		staffRepo = pg.NewStaffingRepo(db)
		userRepo = pg.NewUsersRepo(db)
		atomic = db
	} else {
		store := mem.NewStore()
		shelterRepo = store.Shelters()
		categoryRepo = store.Categories()
		animalRepo = store.Animals()
		requestRepo = store.Adoptions()
		interviewRepo = store.Interviews()
		staffRepo = store.Staffing()
		userRepo = store.Users()
		atomic = store
	}

	// Services por módulo. shelters resuelve los directorios que piden
	// categories y staffing; categories hace lo mismo para animals.
	sheltersSvc := shelters.NewService(shelterRepo, categoryRepo, animalRepo, requestRepo, staffRepo, atomic)
	categoriesSvc := categories.NewService(categoryRepo, sheltersSvc, animalRepo, requestRepo, atomic)
	animalsSvc := animals.NewService(animalRepo, categoriesSvc)
	interviewsSvc := interviews.NewService(interviewRepo)
	adoptionsSvc := adoptions.NewService(requestRepo, animalRepo, interviewsSvc, atomic)
	staffingSvc := staffing.NewService(staffRepo, sheltersSvc)
	usersSvc := users.NewService(userRepo)
	dashboardSvc := dashboard.NewService(shelterRepo, userRepo, requestRepo, animalRepo)

	// Los sentinels Deleted/Unassigned tienen que existir antes del
	// primer request.
	if err := sheltersSvc.EnsureSentinels(context.Background()); err != nil {
		return nil, err
	}

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	shelters.RegisterRoutes(r, sheltersSvc)
	categories.RegisterRoutes(r, categoriesSvc)
	animals.RegisterRoutes(r, animalsSvc)
	adoptions.RegisterRoutes(r, adoptionsSvc)
	interviews.RegisterRoutes(r, interviewsSvc)
	staffing.RegisterRoutes(r, staffingSvc)
	dashboard.RegisterRoutes(r, dashboardSvc)

	return r, nil
}
