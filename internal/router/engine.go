package router

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/buybloom/backend/pkg/checkout"
	"github.com/buybloom/backend/pkg/global"
	"github.com/buybloom/backend/pkg/media"
)

var Router *gin.Engine

// Dependencies constructed in main and shared by the handlers.
var (
	checkoutSvc *checkout.Service
	mediaStore  *media.Store
)

func InitEngine() {
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	Router = gin.Default()

	origins := strings.Split(global.GetEnvOrDefault("CORS_ORIGINS", "http://localhost:3000"), ",")
	Router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func InitializeRoutes(svc *checkout.Service, store *media.Store) {
	checkoutSvc = svc
	mediaStore = store

	// 5 attempts per 15 minutes per client IP on the credential endpoints
	authLimiter := RateLimit(15*time.Minute, 5)

	api := Router.Group("/api")
	{
		api.GET("/health", HealthCheck)

		api.GET("/products", GetProducts)
		api.GET("/products/:id", GetProductByID)
		api.POST("/seed", Authenticate(), RequireRoles("seller", "admin"), SeedProducts)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", authLimiter, Signup)
			auth.POST("/login", authLimiter, Login)
			auth.POST("/logout", Logout)
			auth.GET("/me", Authenticate(), Me)
		}

		cart := api.Group("/cart")
		cart.Use(Authenticate())
		{
			cart.GET("", GetCart)
			cart.POST("/add", AddToCart)
			cart.PUT("/item/:productId", UpdateCartItem)
			cart.DELETE("/item/:productId", RemoveFromCart)
		}

		api.GET("/orders", Authenticate(), GetMyOrders)

		payment := api.Group("/payment")
		{
			payment.POST("/create-order", Authenticate(), CreateOrder)
			payment.POST("/verify", Authenticate(), VerifyPayment)
			payment.POST("/donate", CreateDonation)
			payment.POST("/verify-donation", OptionalAuthenticate(), VerifyDonation)
			payment.GET("/donation-stats", GetDonationStats)
		}

		ratings := api.Group("/ratings")
		{
			ratings.POST("", Authenticate(), RequireRoles("user"), AddRating)
			ratings.GET("/:productId", GetProductRatings)
		}

		favorites := api.Group("/favorites")
		favorites.Use(Authenticate())
		{
			favorites.POST("/:productId", ToggleFavorite)
			favorites.GET("", GetFavorites)
			favorites.GET("/check/:productId", CheckFavoriteStatus)
		}

		profile := api.Group("/profile")
		profile.Use(Authenticate())
		{
			profile.PUT("/update", UpdateProfile)
			profile.POST("/avatar", UploadAvatar)
			profile.DELETE("/avatar", DeleteAvatar)
		}

		passwordReset := api.Group("/password-reset")
		{
			passwordReset.POST("/request", RequestPasswordReset)
			passwordReset.POST("/reset", ResetPassword)
		}

		seller := api.Group("/seller")
		seller.Use(Authenticate(), RequireRoles("seller", "admin"))
		{
			seller.POST("/products", CreateProduct)
			seller.GET("/products", GetSellerProducts)
			seller.PUT("/products/:productId", UpdateProduct)
			seller.DELETE("/products/:productId", DeleteProduct)
		}

		admin := api.Group("/admin")
		admin.Use(Authenticate(), RequireRoles("admin"))
		{
			admin.GET("/dashboard", GetDashboardStats)
			admin.GET("/users", GetAllUsers)
			admin.GET("/products", GetAllProductsAdmin)
			admin.GET("/seller-stats", GetSellerStats)
			admin.DELETE("/users/:userId", DeleteUser)
			admin.GET("/insights/sales", GetSalesInsights)
		}
	}
}
