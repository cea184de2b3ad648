package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/adapters/notify/courier"
	mem "github.com/ritinnambiar/baby-tracker-sub000/internal/adapters/storage/memory"
	pg "github.com/ritinnambiar/baby-tracker-sub000/internal/adapters/storage/postgres"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/domain/babies"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/domain/caregivers"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/domain/invitations"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/domain/records"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/middleware"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/platform/logger"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/ports/auth"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/ports/identity"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/ports/notify"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Directory resuelve emails a cuentas existentes. Obligatorio para
	// el camino de grant directo; en tests se inyecta un memdir.
	Directory identity.Directory

	// Notifier manda el mail de invitación. nil => no-op (modo dev).
	Notifier notify.InvitationNotifier

	// AcceptURLBase: base pública del link de aceptación.
	AcceptURLBase string

	Logger logger.Logger
}

// Sweeper queda expuesto para que main lo programe con cron.
type Wiring struct {
	Handler http.Handler
	Sweeper *invitations.Sweeper
}

func New(opts Options) Wiring {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	var (
		babiesRepo babies.Repository
		grantsRepo caregivers.Repository
		invRepo    invitations.Repository
		recsRepo   records.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres open failed, using in-memory storage", map[string]any{"error": err.Error()})
			}
		}
	}

	if db != nil {
		babiesRepo = pg.NewBabiesRepo(db)
		grantsRepo = pg.NewGrantsRepo(db)
		invRepo = pg.NewInvitationsRepo(db)
		recsRepo = pg.NewRecordsRepo(db)
	} else {
		babiesRepo = mem.NewBabiesRepo()
		grantsRepo = mem.NewGrantsRepo()
		invRepo = mem.NewInvitationsRepo()
		recsRepo = mem.NewRecordsRepo()
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = courier.NoopNotifier{}
	}

	// Services por módulo
	grantsSvc := caregivers.NewService(grantsRepo)
	babiesSvc := babies.NewService(babiesRepo, ownerGrantWriter{grantsSvc}, grantsSvc.Guard())
	invSvc := invitations.NewService(invitations.Options{
		Repo:          invRepo,
		Grants:        grantsSvc,
		Directory:     opts.Directory,
		Notifier:      notifier,
		BabyNames:     babiesSvc,
		Logger:        log,
		AcceptURLBase: opts.AcceptURLBase,
	})
	coord := invitations.NewCoordinator(invRepo, grantsSvc, log)
	recsSvc := records.NewService(recsRepo, grantsSvc.Guard())

	// Rutas por módulo
	babies.RegisterRoutes(r, babiesSvc, grantsSvc)
	caregivers.RegisterRoutes(r, grantsSvc)
	invitations.RegisterRoutes(r, invSvc, coord)
	records.RegisterRoutes(r, recsSvc)

	return Wiring{
		Handler: r,
		Sweeper: invitations.NewSweeper(invRepo, log),
	}
}

// ownerGrantWriter adapta caregivers.Service a babies.OwnerGrantWriter
// (babies no necesita el Grant devuelto).
type ownerGrantWriter struct {
	svc *caregivers.Service
}

func (w ownerGrantWriter) CreateOwnerGrant(ctx context.Context, babyID, userID string) error {
	_, err := w.svc.CreateOwnerGrant(ctx, babyID, userID)
	return err
}
