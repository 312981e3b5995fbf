package main

import (
	"time"

	"github.com/thelaith/satire-empire/internal/api"
	"github.com/thelaith/satire-empire/internal/config"
	"github.com/thelaith/satire-empire/internal/constants"
	"github.com/thelaith/satire-empire/internal/logging"
	"github.com/thelaith/satire-empire/internal/service"
	"github.com/thelaith/satire-empire/internal/timer"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := config.ParseEnv()
	if err != nil {
		logging.Fatal("Invalid environment configuration", err, nil)
	}

	cfg := loadConfigOrExit(env.ConfigPath)
	if env.Address != "" {
		cfg.ServerAddress = env.Address
	}

	repo := createRepositoryOrExit(env.DBPath)
	manager := service.NewManager(repo, cfg, timer.New(), newEventLogger())

	// Background scanner: advance matches whose phase deadline passed
	// without the in-process timer firing (typically after a restart).
	startOverdueScanner(manager)

	handler := api.NewMatchHandler(manager, repo, cfg.Limits)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	apiRoutes.Use(api.RateLimit())
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteFactions, handler.ListFactions)
		apiRoutes.GET(constants.RoutePublicMatches, handler.ListPublicMatches)

		apiRoutes.POST(constants.RouteMatches, handler.CreateMatch)
		apiRoutes.POST(constants.RouteMatchesJoin, handler.JoinMatch)
		apiRoutes.GET(constants.RouteMatchByCode, handler.GetMatch)
		apiRoutes.POST(constants.RouteMatchStart, handler.StartMatch)
		apiRoutes.POST(constants.RouteMatchLeave, handler.LeaveMatch)
		apiRoutes.POST(constants.RouteMatchActions, handler.SubmitAction)
		apiRoutes.POST(constants.RouteMatchAdvance, handler.AdvancePhase)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func startOverdueScanner(manager *service.Manager) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			manager.AdvanceOverdue(time.Now())
		}
	}()
}
