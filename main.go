package main

import (
	"log"
	"os"
	"strings"
	"time"

	"ecolearn-service/internal/auth"
	"ecolearn-service/internal/db"
	"ecolearn-service/internal/event"
	"ecolearn-service/internal/handlers"
	"ecolearn-service/internal/ledger"
	"ecolearn-service/internal/middleware"
	"ecolearn-service/internal/repository"
	"ecolearn-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	db.InitMongo(mongoURI)

	// RabbitMQ event publisher
	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.EventPublisher
	if rabbitURL != "" && eventExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(rabbitURL, eventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, progression events will not be published")
	}

	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database("ecolearn")

	// Repositories
	userRepo := repository.NewUserRepository(database)
	quizRepo := repository.NewQuizRepository(database)
	challengeRepo := repository.NewChallengeRepository(database)

	// Completion ledger over the user store
	progressLedger := ledger.New(userRepo)

	// Services and handlers
	jwtService := auth.NewJWTService(jwtSecret, "ecolearn-service")
	authService := service.NewAuthService(userRepo, jwtService)
	authHandler := handlers.NewAuthHandler(authService)

	userService := service.NewUserService(userRepo)
	userHandler := handlers.NewUserHandler(userService)

	quizService := service.NewQuizService(quizRepo, progressLedger)
	quizHandler := handlers.NewQuizHandler(quizService)

	challengeService := service.NewChallengeService(challengeRepo, progressLedger)
	challengeHandler := handlers.NewChallengeHandler(challengeService)

	arService := service.NewARService(userRepo, progressLedger)
	arHandler := handlers.NewARHandler(arService)

	leaderboardService := service.NewLeaderboardService(userRepo, quizRepo, challengeRepo)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService, userService)

	requireAuth := middleware.RequireAuth(jwtService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "ecolearn-service"})
	})

	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/register", func(c *gin.Context) {
			authHandler.Register(c)
			if publisher != nil && c.Writer.Status() < 400 {
				publisher.Publish(event.UserRegistered, gin.H{"timestamp": time.Now()})
			}
		})
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/me", requireAuth, authHandler.Me)
	}

	userRoutes := r.Group("/api/users", requireAuth)
	{
		userRoutes.PUT("/profile", userHandler.UpdateProfile)
	}

	quizRoutes := r.Group("/api/quizzes")
	{
		quizRoutes.GET("/", quizHandler.ListQuizzes)
		quizRoutes.GET("/:id", quizHandler.GetQuiz)
		quizRoutes.POST("/:id/submit", requireAuth, func(c *gin.Context) {
			quizHandler.SubmitQuiz(c)
			if publisher != nil && c.Writer.Status() < 400 {
				publisher.Publish(event.QuizCompleted, gin.H{
					"quiz_id":   c.Param("id"),
					"timestamp": time.Now(),
				})
			}
		})
	}

	challengeRoutes := r.Group("/api/challenges")
	{
		challengeRoutes.GET("/", challengeHandler.ListChallenges)
		challengeRoutes.GET("/daily", challengeHandler.GetDailyChallenge)
		challengeRoutes.POST("/:id/complete", requireAuth, func(c *gin.Context) {
			challengeHandler.CompleteChallenge(c)
			if publisher != nil && c.Writer.Status() < 400 {
				publisher.Publish(event.ChallengeCompleted, gin.H{
					"challenge_id": c.Param("id"),
					"timestamp":    time.Now(),
				})
			}
		})
	}

	publishAR := func(activity string, handler gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			handler(c)
			if publisher != nil && c.Writer.Status() < 400 {
				publisher.Publish(event.ARActivityRecorded, gin.H{
					"activity":  activity,
					"timestamp": time.Now(),
				})
			}
		}
	}
	arRoutes := r.Group("/api/ar", requireAuth)
	{
		arRoutes.GET("/stats", arHandler.GetStats)
		arRoutes.POST("/tree-planting", publishAR("tree_planting", arHandler.TreePlanting))
		arRoutes.POST("/recycling", publishAR("recycling", arHandler.Recycling))
		arRoutes.POST("/energy-conservation", publishAR("energy_conservation", arHandler.EnergyConservation))
	}

	leaderboardRoutes := r.Group("/api/leaderboard")
	{
		leaderboardRoutes.GET("/global", leaderboardHandler.Global)
		leaderboardRoutes.GET("/school", requireAuth, leaderboardHandler.School)
		leaderboardRoutes.GET("/stats", requireAuth, leaderboardHandler.Stats)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	r.Run(":" + port)
}
