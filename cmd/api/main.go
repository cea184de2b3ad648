package main

import (
	"net/http"
	"os"
	"time"

	_ "github.com/ritinnambiar/baby-tracker-sub000/docs"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/adapters/auth/odin"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/adapters/notify/courier"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/platform/logger"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/ports/auth"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/ports/identity"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/ports/notify"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/router"
)

// @title Baby Tracker API
// @version 0.1
// @description Perfiles de bebé compartidos: grants, invitaciones por email y registros de cuidado.
// @BasePath /
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	// Odin (IAM externo): si está configurado, verifier + directory reales.
	// Si no, modo dev: X-Debug-User-ID / X-Debug-Email, sin directory.
	var verifier auth.AuthVerifier
	var directory identity.Directory

	odinClient := odin.NewClient(odin.Config{
		BaseURL: os.Getenv("ODIN_BASE_URL"),
		APIKey:  os.Getenv("ODIN_API_KEY"),
	})
	if odinClient.IsConfigured() {
		verifier = odin.NewVerifier(odinClient)
		directory = odin.NewDirectory(odinClient)
	} else {
		log.Warn("odin not configured, running in dev auth mode", nil)
	}

	// Courier (mailer externo): best-effort; sin config => no-op.
	var notifier notify.InvitationNotifier
	if c, err := courier.NewClient(courier.NewConfigFromEnv()); err == nil && c.IsConfigured() {
		notifier = c
	} else {
		log.Warn("courier not configured, invitation emails disabled", nil)
	}

	wiring := router.New(router.Options{
		AuthVerifier:  verifier,
		Directory:     directory,
		Notifier:      notifier,
		AcceptURLBase: os.Getenv("PUBLIC_BASE_URL"),
		Logger:        log,
	})

	// Sweep de invitaciones vencidas: higiene, no corrección.
	if err := wiring.Sweeper.Start("@every 1h"); err != nil {
		log.Error("could not start invitation sweep", map[string]any{"error": err.Error()})
	}
	defer wiring.Sweeper.Stop()

	srv := &http.Server{
		Addr:         addr,
		Handler:      wiring.Handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
