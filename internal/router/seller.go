package router

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/global"
	"github.com/buybloom/backend/pkg/models"
	"github.com/buybloom/backend/pkg/mongo"
	"github.com/buybloom/backend/pkg/redis"
)

// CreateProduct accepts either a JSON body with an image URL or a
// multipart form with an image file uploaded to media storage.
func CreateProduct(c *gin.Context) {
	user := currentUser(c)

	var req models.CreateProductRequest
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		parsed, err := bindProductForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
				{Field: "request", Message: err.Error(), Code: "validation_error"},
			}))
			return
		}
		req = *parsed
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	if req.Image == "" {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Product image is required", []global.ValidationError{
			{Field: "image", Message: "Provide an image file or URL", Code: "missing_image"},
		}))
		return
	}

	product, err := mongo.CreateProduct(c.Request.Context(), req.ToProduct(user.ID))
	if err != nil {
		log.Printf("Error creating product: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create product", nil))
		return
	}

	if cacheErr := redis.CacheProduct(c.Request.Context(), product); cacheErr != nil {
		log.Printf("Warning: Failed to cache product in Redis: %v", cacheErr)
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(product))
}

// bindProductForm reads product fields from a multipart form and uploads
// the attached image file when one is present.
func bindProductForm(c *gin.Context) (*models.CreateProductRequest, error) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		return nil, err
	}
	originalPrice, _ := strconv.ParseFloat(c.DefaultPostForm("original_price", "0"), 64)
	discount, _ := strconv.ParseFloat(c.DefaultPostForm("discount", "0"), 64)

	req := &models.CreateProductRequest{
		Name:          c.PostForm("name"),
		Category:      c.PostForm("category"),
		Price:         price,
		OriginalPrice: originalPrice,
		Discount:      discount,
		Description:   c.PostForm("description"),
		Image:         c.PostForm("image"),
	}

	fileHeader, err := c.FormFile("image_file")
	if err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		defer file.Close()

		uploaded, err := mediaStore.Upload(c.Request.Context(), file, "products")
		if err != nil {
			return nil, err
		}
		req.Image = uploaded.URL
	}

	return req, nil
}

func GetSellerProducts(c *gin.Context) {
	products, err := mongo.GetSellerProducts(c.Request.Context(), currentUserID(c))
	if err != nil {
		log.Printf("Error fetching seller products: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get products", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

func UpdateProduct(c *gin.Context) {
	productID, err := bson.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product ID format", []global.ValidationError{
			{Field: "productId", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	updates := bson.D{}
	if req.Name != "" {
		updates = append(updates, bson.E{Key: "name", Value: req.Name})
	}
	if req.Category != "" {
		updates = append(updates, bson.E{Key: "category", Value: req.Category})
	}
	if req.Description != "" {
		updates = append(updates, bson.E{Key: "description", Value: req.Description})
	}
	if req.Image != "" {
		updates = append(updates, bson.E{Key: "image", Value: req.Image})
	}
	if req.Price != nil {
		original := 0.0
		if req.OriginalPrice != nil {
			original = *req.OriginalPrice
		}
		discount := 0.0
		if req.Discount != nil {
			discount = *req.Discount
		}
		price, resolvedOriginal, resolvedDiscount := models.ResolvePricing(*req.Price, original, discount)
		updates = append(updates,
			bson.E{Key: "price", Value: price},
			bson.E{Key: "original_price", Value: resolvedOriginal},
			bson.E{Key: "discount", Value: resolvedDiscount},
		)
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No updates provided", []global.ValidationError{
			{Field: "body", Message: "Request body must contain at least one field to update", Code: "empty_updates"},
		}))
		return
	}

	user := currentUser(c)
	ownerScoped := user.Role != models.RoleAdmin

	product, err := mongo.UpdateSellerProduct(c.Request.Context(), productID, user.ID, ownerScoped, updates)
	if err != nil {
		if err == mongo.ErrProductMissing {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
				{Field: "productId", Message: "No product of yours exists with this ID", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error updating product: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update product", nil))
		return
	}

	if cacheErr := redis.CacheProduct(c.Request.Context(), product); cacheErr != nil {
		log.Printf("Warning: Failed to update product cache in Redis: %v", cacheErr)
	}

	c.Header("X-Cache", "REFRESHED")
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

func DeleteProduct(c *gin.Context) {
	productID, err := bson.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product ID format", []global.ValidationError{
			{Field: "productId", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	user := currentUser(c)
	ownerScoped := user.Role != models.RoleAdmin

	// Fetch first so the cache entry can be dropped after deletion
	product, err := mongo.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		if err == mongo.ErrProductMissing {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
				{Field: "productId", Message: "No product exists with this ID", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error fetching product before delete: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to delete product", nil))
		return
	}

	if err := mongo.DeleteSellerProduct(c.Request.Context(), productID, user.ID, ownerScoped); err != nil {
		if err == mongo.ErrProductMissing {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
				{Field: "productId", Message: "No product of yours exists with this ID", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error deleting product: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to delete product", nil))
		return
	}

	if cacheErr := redis.RemoveProductFromCache(c.Request.Context(), product); cacheErr != nil {
		log.Printf("Warning: Failed to remove product from Redis cache: %v", cacheErr)
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"message": "Product successfully deleted"}))
}
