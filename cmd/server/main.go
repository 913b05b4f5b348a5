package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"wavebreaker/internal/api"
	"wavebreaker/internal/config"
	"wavebreaker/internal/game"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("💡 No .env file found, using environment variables only")
	} else {
		log.Println("✅ Loaded environment from .env")
	}

	log.Println("🎮 ================================")
	log.Println("🎮  WAVEBREAKER - ARENA CORE")
	log.Println("🎮 ================================")

	appConfig := config.Load()
	gameCfg := appConfig.Game
	waveCfg := appConfig.Wave
	serverCfg := appConfig.Server

	log.Printf("🎮 Config: %d TPS, arena radius %.0f, seed %d",
		gameCfg.TickRate, gameCfg.ArenaRadius, gameCfg.Seed)

	engine := game.NewEngine(game.EngineConfig{
		TickRate:    gameCfg.TickRate,
		ArenaRadius: gameCfg.ArenaRadius,
		Seed:        gameCfg.Seed,
		Wave: game.WaveConfig{
			StartInterval:    waveCfg.StartInterval,
			MinInterval:      waveCfg.MinInterval,
			IntervalDecay:    waveCfg.IntervalDecay,
			StartMaxActive:   waveCfg.StartMaxActive,
			MaxActiveCap:     waveCfg.MaxActiveCap,
			SpawnInnerRadius: waveCfg.SpawnInnerRadius,
			SpawnBandWidth:   waveCfg.SpawnBandWidth,
		},
	})

	limits := engine.GetLimits()
	log.Printf("🛡️ Resource limits: %d enemies, %d projectiles",
		limits.MaxEnemies, limits.MaxProjectiles)

	if err := engine.StartEventLog(serverCfg.EventLogPath); err != nil {
		log.Printf("⚠️ Event log disabled: %v", err)
	} else {
		log.Printf("📝 Event log: %s", serverCfg.EventLogPath)
	}

	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(api.DefaultObservabilityConfig()); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	server := api.NewServer(engine)

	engine.OnTick = api.RecordTick
	engine.OnKill = func(enemyType string, reward int) { api.RecordKill() }

	engine.Start()
	log.Println("✅ Game engine started")

	go func() {
		addr := ":" + strconv.Itoa(serverCfg.Port)
		if err := server.Start(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ Server ready! Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")
	server.Stop()
	engine.Stop()
	engine.StopEventLog()
	log.Println("👋 Goodbye!")
}
