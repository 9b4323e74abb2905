package ai

import (
	"context"
	"encoding/json"
	"time"

	"github.com/buybloom/backend/pkg/mongo"
)

// InsightsResponse wraps the raw sales rollup together with the optional
// AI-generated narrative.
type InsightsResponse struct {
	Status      string      `json:"status"`
	Data        InsightData `json:"data"`
	GeneratedAt time.Time   `json:"generated_at"`
	AIEnabled   bool        `json:"ai_enabled"`
}

type InsightData struct {
	RawData  interface{} `json:"raw_data"`
	Insights string      `json:"insights,omitempty"`
	Summary  string      `json:"summary"`
	Error    string      `json:"error,omitempty"`
}

// GenerateSalesInsights summarizes the order ledger and donation totals
// for the admin dashboard, with an AI narrative when the service is on.
func GenerateSalesInsights(ctx context.Context) (*InsightsResponse, error) {
	summary, err := mongo.GetSalesSummary(ctx)
	if err != nil {
		return &InsightsResponse{
			Status:      "error",
			Data:        InsightData{Error: "Failed to fetch sales data: " + err.Error()},
			GeneratedAt: time.Now(),
			AIEnabled:   IsEnabled(),
		}, err
	}

	response := &InsightsResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: InsightData{
			RawData: summary,
			Summary: "Sales data retrieved successfully",
		},
	}

	if IsEnabled() {
		insights, err := generateCompletion(ctx, SalesInsightsSystemPrompt, formatSalesSummary(summary))
		if err != nil {
			response.Data.Error = "AI analysis failed: " + err.Error()
		} else {
			response.Data.Insights = insights
			response.Data.Summary = "AI-generated sales insights and recommendations"
		}
	} else {
		response.Data.Summary = "Raw sales data (AI insights unavailable)"
	}

	return response, nil
}

func formatSalesSummary(summary *mongo.SalesSummary) string {
	encoded, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "No sales data available"
	}
	return "Analyze this storefront sales summary:\n" + string(encoded)
}
