package main

import (
	"canteen/internal/auth"
	"canteen/internal/common"
	"canteen/internal/env"
	"canteen/internal/notify"
	"canteen/internal/plan"
	"canteen/internal/v0/menu"
	"canteen/internal/v0/selections"
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Canteen database (menus, selections, reminders)
	canteenDB, err := sql.Open("sqlite3", env.GetEnv(env.EnvCanteenDBPath, "./internal/databases/canteen.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer canteenDB.Close()

	// Auth database
	authDB, err := sql.Open("sqlite3", env.GetEnv(env.EnvAuthDBPath, "./internal/databases/auth.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer authDB.Close()

	// Enable WAL mode (better concurrent performance)
	for _, db := range []*sql.DB{canteenDB, authDB} {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			log.Printf("Warning: Failed to enable WAL mode: %v", err)
		}
	}

	// Auth components
	authRepo := auth.NewRepository(authDB)
	authService := auth.NewService(authRepo)
	sessionStore := auth.NewSessionStore(
		authRepo,
		env.GetDuration(env.EnvSessionDuration, 7*24*time.Hour),
		env.GetBool(env.EnvSecureCookies, false),
	)
	authHandler := auth.NewHandler(authService, sessionStore)
	authMiddleware := auth.NewMiddleware(sessionStore)

	// Expired sessions pile up otherwise; sweep hourly.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := sessionStore.CleanupExpiredSessions(); err != nil {
					log.Printf("Warning: session cleanup failed: %v", err)
				}
			}
		}
	}()

	// Menu catalog
	menuRepo := menu.NewRepository(canteenDB)
	clock := plan.NewClock()
	menuHandler := menu.NewHandler(menuRepo, clock)

	// Reminder delivery: real SMS gateway when configured, server log otherwise
	var notifier plan.Notifier = notify.LogNotifier{}
	if gatewayURL := env.GetEnv(env.EnvSMSGatewayURL, ""); gatewayURL != "" {
		notifier = notify.NewSMSGateway(gatewayURL, env.GetEnv(env.EnvSMSGatewayKey, ""))
	}

	// Planning engine
	cutoff := plan.CutoffPolicy{
		WarnHour: env.GetInt(env.EnvWarningHour, plan.DefaultCutoff.WarnHour),
		LockHour: env.GetInt(env.EnvCutoffHour, plan.DefaultCutoff.LockHour),
	}
	schedule := plan.NewReminderScheduler(plan.DailyReminders, selections.NewLedger(canteenDB), notifier)
	controller := plan.NewController(
		clock,
		cutoff,
		menuRepo,
		selections.NewStore(canteenDB),
		selections.NewCache(canteenDB),
		selections.NewPassMinter(),
		schedule,
	)
	planHandler := selections.NewHandler(controller)

	router := gin.Default()

	// Global routes
	global := router.Group("/api")
	common.RegisterRoutes(global)

	// Auth routes (public + session-protected)
	auth.RegisterRoutes(global, authHandler, authMiddleware)

	// v0 API routes
	v0Group := router.Group("/api/v0")
	{
		menu.RegisterRoutes(v0Group, menuHandler, authMiddleware)
		selections.RegisterRoutes(v0Group, planHandler, authMiddleware)
	}

	// Graceful shutdown handling
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		cancel()
	}()

	err = router.Run(env.GetEnv(env.EnvListenAddr, ":9237"))
	if err != nil {
		log.Fatal(err)
	}
}

/*
Canteen is the meal-ordering portal backend for Karmic Solutions employees. Daily and weekly meal planning against the on-site canteen menu, with SMS reminders.
Canteen Copyright (C) 2026 Karmic Solutions
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
