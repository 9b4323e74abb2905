package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/models"
)

type DashboardStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalSellers  int64 `json:"total_sellers"`
	TotalProducts int64 `json:"total_products"`
	TotalCarts    int64 `json:"total_carts"`
	TotalOrders   int64 `json:"total_orders"`
}

func GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	users := GetCollection("users")

	totalUsers, err := users.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	totalSellers, err := users.CountDocuments(ctx, bson.D{{Key: "role", Value: models.RoleSeller}})
	if err != nil {
		return nil, err
	}
	totalProducts, err := GetCollection("products").CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	totalCarts, err := CountCarts(ctx)
	if err != nil {
		return nil, err
	}
	totalOrders, err := GetCollection("orders").CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalUsers:    totalUsers,
		TotalSellers:  totalSellers,
		TotalProducts: totalProducts,
		TotalCarts:    totalCarts,
		TotalOrders:   totalOrders,
	}, nil
}

type SellerStat struct {
	Seller       string `json:"seller" bson:"seller"`
	Email        string `json:"email" bson:"email"`
	ProductCount int    `json:"product_count" bson:"product_count"`
}

func GetSellerStats(ctx context.Context) ([]SellerStat, error) {
	collection := GetCollection("users")

	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "role", Value: models.RoleSeller}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "products"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "seller_id"},
			{Key: "as", Value: "products"},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "seller", Value: "$name"},
			{Key: "email", Value: 1},
			{Key: "product_count", Value: bson.D{{Key: "$size", Value: "$products"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "product_count", Value: -1}}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stats := []SellerStat{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

type CategorySales struct {
	Category string  `json:"category" bson:"_id"`
	Revenue  float64 `json:"revenue" bson:"revenue"`
	Units    int     `json:"units" bson:"units"`
}

// SalesSummary is the order-ledger rollup fed to the admin AI insights
// endpoint.
type SalesSummary struct {
	TotalOrders   int64           `json:"total_orders"`
	TotalRevenue  float64         `json:"total_revenue"`
	TopCategories []CategorySales `json:"top_categories"`
	DonationTotal float64         `json:"donation_total"`
	DonationCount int             `json:"donation_count"`
}

func GetSalesSummary(ctx context.Context) (*SalesSummary, error) {
	orders := GetCollection("orders")

	totalOrders, err := orders.CountDocuments(ctx, bson.D{
		{Key: "status", Value: models.OrderStatusCompleted},
	})
	if err != nil {
		return nil, err
	}

	revenuePipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "status", Value: models.OrderStatusCompleted}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total_amount"}}},
		}}},
	}
	cursor, err := orders.Aggregate(ctx, revenuePipeline)
	if err != nil {
		return nil, err
	}
	var revenueRows []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &revenueRows); err != nil {
		return nil, err
	}

	summary := &SalesSummary{TotalOrders: totalOrders, TopCategories: []CategorySales{}}
	if len(revenueRows) > 0 {
		summary.TotalRevenue = revenueRows[0].Revenue
	}

	categoryPipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "status", Value: models.OrderStatusCompleted}}}},
		bson.D{{Key: "$unwind", Value: "$items"}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "products"},
			{Key: "localField", Value: "items.product_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "product"},
		}}},
		bson.D{{Key: "$unwind", Value: "$product"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$product.category"},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$multiply", Value: bson.A{"$items.price", "$items.quantity"}},
			}}}},
			{Key: "units", Value: bson.D{{Key: "$sum", Value: "$items.quantity"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "revenue", Value: -1}}}},
		bson.D{{Key: "$limit", Value: 5}},
	}
	cursor, err = orders.Aggregate(ctx, categoryPipeline)
	if err != nil {
		return nil, err
	}
	if err := cursor.All(ctx, &summary.TopCategories); err != nil {
		return nil, err
	}

	donationStats, err := GetDonationStats(ctx)
	if err != nil {
		return nil, err
	}
	summary.DonationTotal = donationStats.TotalAmount
	summary.DonationCount = donationStats.Count

	return summary, nil
}
