package invitations

import (
	"context"
	"time"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/platform/logger"

	"github.com/robfig/cron"
)

// Sweeper barre invitaciones pending ya vencidas y las marca expired.
// Es higiene de storage: la corrección no depende de él, porque toda
// lectura evalúa IsExpired contra el reloj. Sin el sweep una fila
// pending vencida podría quedar indefinidamente.
type Sweeper struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time
	cron *cron.Cron
}

func NewSweeper(repo Repository, log logger.Logger) *Sweeper {
	if log == nil {
		log = logger.New(logger.Options{})
	}
	return &Sweeper{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Run ejecuta una pasada del sweep.
func (s *Sweeper) Run(ctx context.Context) (int, error) {
	n, err := s.repo.ExpirePending(ctx, s.now())
	if err != nil {
		s.log.Error("invitation expiry sweep failed", map[string]any{"error": err.Error()})
		return 0, err
	}
	if n > 0 {
		s.log.Info("expired stale invitations", map[string]any{"count": n})
	}
	return n, nil
}

// Start programa el sweep con el spec de cron dado (p.ej. "@every 1h").
func (s *Sweeper) Start(spec string) error {
	c := cron.New()
	if err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_, _ = s.Run(ctx)
	}); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	return nil
}

func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
