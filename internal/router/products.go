package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/global"
	"github.com/buybloom/backend/pkg/models"
	"github.com/buybloom/backend/pkg/mongo"
	"github.com/buybloom/backend/pkg/redis"
)

func HealthCheck(c *gin.Context) {
	db := mongo.GetDatabase()
	if err := db.Client().Ping(c, nil); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}

func GetProducts(c *gin.Context) {
	query := mongo.ProductQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	}

	products, err := mongo.GetProducts(c.Request.Context(), query)
	if err != nil {
		log.Printf("Error fetching products from MongoDB: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get products", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

// GetProductByID retrieves a single product with Redis caching.
func GetProductByID(c *gin.Context) {
	id := c.Param("id")

	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	ctx := c.Request.Context()

	// Try Redis cache first
	product, err := redis.GetProductFromCache(ctx, id)
	if err == nil {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, global.SuccessResponse(product))
		return
	}

	// Cache miss, fall back to MongoDB
	product, err = mongo.GetProductByID(ctx, objectID)
	if err != nil {
		if err == mongo.ErrProductMissing {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
				{Field: "id", Message: "No product exists with this ID", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error fetching product from MongoDB: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch product", nil))
		return
	}

	if cacheErr := redis.CacheProduct(ctx, product); cacheErr != nil {
		// Log cache error but don't fail the request
		log.Printf("Warning: Failed to cache product in Redis: %v", cacheErr)
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

// SeedProducts replaces the catalog with the bundled sample set. The
// seeded products are assigned to the calling seller account.
func SeedProducts(c *gin.Context) {
	user := currentUser(c)

	products := make([]*models.Product, len(sampleCatalog))
	for i, req := range sampleCatalog {
		products[i] = req.ToProduct(user.ID)
	}

	if err := mongo.SeedProducts(c.Request.Context(), products); err != nil {
		log.Printf("Error seeding products: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to seed products", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(map[string]interface{}{
		"products": products,
		"count":    len(products),
	}))
}

var sampleCatalog = []models.CreateProductRequest{
	{
		Name:        "Sunset Rose Bouquet",
		Category:    "bouquets",
		Price:       899,
		Discount:    10,
		Description: "A dozen long-stem roses in warm sunset shades, hand-tied with eucalyptus.",
		Image:       "https://images.buybloom.dev/products/sunset-rose-bouquet.jpg",
	},
	{
		Name:        "Peace Lily",
		Category:    "indoor-plants",
		Price:       449,
		Description: "Low-maintenance flowering plant that thrives in indirect light.",
		Image:       "https://images.buybloom.dev/products/peace-lily.jpg",
	},
	{
		Name:        "Lavender Dream Basket",
		Category:    "bouquets",
		Price:       1199,
		Discount:    15,
		Description: "Fresh lavender stems and white chrysanthemums in a woven basket.",
		Image:       "https://images.buybloom.dev/products/lavender-dream-basket.jpg",
	},
	{
		Name:        "Succulent Trio",
		Category:    "indoor-plants",
		Price:       549,
		Description: "Three assorted succulents in ceramic pots, perfect for desks and shelves.",
		Image:       "https://images.buybloom.dev/products/succulent-trio.jpg",
	},
	{
		Name:        "Marigold Garland",
		Category:    "decor",
		Price:       299,
		Description: "Two-metre garland of fresh marigolds for festive occasions.",
		Image:       "https://images.buybloom.dev/products/marigold-garland.jpg",
	},
	{
		Name:        "Orchid Elegance",
		Category:    "indoor-plants",
		Price:       1499,
		Discount:    5,
		Description: "Twin-spike phalaenopsis orchid in a glazed ceramic planter.",
		Image:       "https://images.buybloom.dev/products/orchid-elegance.jpg",
	},
	{
		Name:        "Wildflower Mix",
		Category:    "bouquets",
		Price:       649,
		Description: "Seasonal wildflowers gathered into a rustic paper-wrapped bunch.",
		Image:       "https://images.buybloom.dev/products/wildflower-mix.jpg",
	},
	{
		Name:        "Terracotta Herb Garden",
		Category:    "decor",
		Price:       799,
		Description: "Basil, mint and rosemary starters in a three-pot terracotta set.",
		Image:       "https://images.buybloom.dev/products/terracotta-herb-garden.jpg",
	},
}
