package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"debatematch/config"
	"debatematch/controllers"
	"debatematch/db"
	"debatematch/internal/voteledger"
	"debatematch/middlewares"
	"debatematch/models"
	"debatematch/routes"
	"debatematch/services"
	"debatematch/store"
	"debatematch/utils"
	"debatematch/websocket"
	"debatematch/workers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; environment wins over the file
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	ctx := context.Background()
	mongoStore, err := store.NewMongoStore(ctx, db.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	// Redis backs the live vote ledger; the service degrades to Mongo-only
	// duplicate gating when it is absent.
	var ledger *voteledger.Ledger
	if cfg.Redis.Addr != "" {
		if err := voteledger.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
			log.Printf("Redis unavailable, continuing without vote ledger: %v", err)
		} else {
			ledger = voteledger.NewLedger()
			log.Println("Connected to Redis")
		}
	}

	if cfg.SeedTestUsers {
		utils.SeedTestUsers(ctx, mongoStore)
	}

	ratingService := services.NewRatingService(mongoStore)
	swipeService := services.NewSwipeService(mongoStore)
	debateService := services.NewDebateService(mongoStore, ratingService, ledger)

	swipeService.SetMatchFoundCallback(func(match *models.UserMatch) {
		websocket.BroadcastEvent(models.MatchEvent{
			Type:      "match_found",
			UserIDs:   []string{match.User1ID.Hex(), match.User2ID.Hex()},
			Timestamp: time.Now(),
		})
	})
	debateService.SetEventCallback(websocket.BroadcastEvent)

	controllers.Store = mongoStore
	controllers.SwipeService = swipeService
	controllers.DebateService = debateService

	sweeper := workers.NewVoteSweeper(debateService, time.Duration(cfg.Voting.SweepIntervalSeconds)*time.Second)
	if err := sweeper.Start(ctx); err != nil {
		log.Fatalf("Failed to start vote sweeper: %v", err)
	}
	defer sweeper.Stop()

	router := setupRouter()
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// All routes sit behind the gateway identity header
	auth := router.Group("/")
	auth.Use(middlewares.IdentityMiddleware())
	{
		auth.GET("/user/profile", routes.GetProfileRouteHandler)
		auth.GET("/leaderboard", routes.GetLeaderboardRouteHandler)

		auth.GET("/candidates", routes.GetCandidatesRouteHandler)
		auth.POST("/swipe/like", routes.RecordLikeRouteHandler)
		auth.POST("/swipe/pass", routes.RecordPassRouteHandler)

		auth.POST("/debates", routes.CreateDebateRouteHandler)
		auth.GET("/debates/:id", routes.GetDebateRouteHandler)
		auth.POST("/debates/:id/end", routes.RequestEndRouteHandler)
		auth.POST("/debates/:id/conclude/private", routes.ConcludePrivateRouteHandler)
		auth.POST("/debates/:id/conclude/public", routes.ConcludePublicRouteHandler)
		auth.POST("/debates/:id/vote", routes.CastVoteRouteHandler)
		auth.POST("/debates/:id/messages", routes.RecordMessageRouteHandler)

		// WebSocket event stream (match found, vote updates, resolutions)
		auth.GET("/ws/events", websocket.EventsHandler)
	}

	return router
}
