package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/buybloom/backend/internal/router"
	"github.com/buybloom/backend/pkg/ai"
	"github.com/buybloom/backend/pkg/checkout"
	"github.com/buybloom/backend/pkg/gateway"
	"github.com/buybloom/backend/pkg/global"
	"github.com/buybloom/backend/pkg/media"
	"github.com/buybloom/backend/pkg/mongo"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	mongo.InitMongoDB()
	mongo.EnsureIndexesOnStartup()
	ai.InitializeAIService()

	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		log.Fatal("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET must be set")
	}

	svc := checkout.NewService(
		mongo.CartStore{},
		mongo.CatalogStore{},
		mongo.OrderStore{},
		mongo.DonationStore{},
		gateway.NewRazorpay(keyID, keySecret),
		checkout.Config{
			Secret:   keySecret,
			Currency: global.GetEnvOrDefault("STORE_CURRENCY", "INR"),
		},
	)

	router.InitEngine()
	router.InitializeRoutes(svc, media.New())

	port := global.GetEnvOrDefault("PORT", "8000")
	log.Printf("Server is running on port %s", port)

	if err := router.Router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
