package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/buybloom/backend/pkg/models"
)

// ProductQuery mirrors the public catalog listing filters.
type ProductQuery struct {
	Category string
	Search   string
	Sort     string // price_asc | price_desc
}

func GetProducts(ctx context.Context, query ProductQuery) ([]models.Product, error) {
	collection := GetCollection("products")

	filter := bson.D{}
	if query.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: query.Category})
	}
	if query.Search != "" {
		filter = append(filter, bson.E{Key: "name", Value: bson.D{
			{Key: "$regex", Value: query.Search},
			{Key: "$options", Value: "i"},
		}})
	}

	findOptions := options.Find()
	switch query.Sort {
	case "price_asc":
		findOptions.SetSort(bson.D{{Key: "price", Value: 1}})
	case "price_desc":
		findOptions.SetSort(bson.D{{Key: "price", Value: -1}})
	}

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func GetProductByID(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	collection := GetCollection("products")

	var product models.Product
	err := collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductMissing
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	collection := GetCollection("products")

	if _, err := collection.InsertOne(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func GetSellerProducts(ctx context.Context, sellerID bson.ObjectID) ([]models.Product, error) {
	collection := GetCollection("products")

	cursor, err := collection.Find(ctx,
		bson.D{{Key: "seller_id", Value: sellerID}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateSellerProduct applies updates to a product only if the given
// seller owns it; admins pass ownerScoped=false to bypass the scope.
func UpdateSellerProduct(ctx context.Context, productID, sellerID bson.ObjectID, ownerScoped bool, updates bson.D) (*models.Product, error) {
	collection := GetCollection("products")

	filter := bson.D{{Key: "_id", Value: productID}}
	if ownerScoped {
		filter = append(filter, bson.E{Key: "seller_id", Value: sellerID})
	}

	var product models.Product
	err := collection.FindOneAndUpdate(ctx,
		filter,
		bson.D{{Key: "$set", Value: updates}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductMissing
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func DeleteSellerProduct(ctx context.Context, productID, sellerID bson.ObjectID, ownerScoped bool) error {
	collection := GetCollection("products")

	filter := bson.D{{Key: "_id", Value: productID}}
	if ownerScoped {
		filter = append(filter, bson.E{Key: "seller_id", Value: sellerID})
	}

	result, err := collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrProductMissing
	}
	return nil
}

func GetAllProductsWithSellers(ctx context.Context) ([]bson.M, error) {
	collection := GetCollection("products")

	pipeline := bson.A{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "seller_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "seller"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$seller"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "name", Value: 1},
			{Key: "category", Value: 1},
			{Key: "price", Value: 1},
			{Key: "image", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "seller.name", Value: 1},
			{Key: "seller.email", Value: 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []bson.M
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SeedProducts replaces the catalog with the given sample set.
func SeedProducts(ctx context.Context, products []*models.Product) error {
	collection := GetCollection("products")

	if _, err := collection.DeleteMany(ctx, bson.D{}); err != nil {
		return err
	}

	docs := make([]interface{}, len(products))
	for i, p := range products {
		docs[i] = p
	}
	_, err := collection.InsertMany(ctx, docs)
	return err
}

// CatalogStore exposes authoritative pricing to the checkout package.
type CatalogStore struct{}

func (CatalogStore) PricedEntry(ctx context.Context, productID bson.ObjectID) (float64, bson.ObjectID, error) {
	product, err := GetProductByID(ctx, productID)
	if err != nil {
		return 0, bson.ObjectID{}, err
	}
	return product.Price, product.SellerID, nil
}
