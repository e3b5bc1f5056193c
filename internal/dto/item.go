package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
)

// --- Verification item DTOs ---

// RecordCountRequest is one scan or manual count observation.
type RecordCountRequest struct {
	ItemCode string `json:"itemCode" binding:"required" validate:"required,max=100"`
	Quantity int    `json:"quantity" binding:"gte=0"`
	Notes    string `json:"notes" validate:"max=1000"`
}

// CorrectCountRequest replaces an item's verified quantity.
type CorrectCountRequest struct {
	ItemCode    string `json:"itemCode" binding:"required" validate:"required,max=100"`
	NewQuantity int    `json:"newQuantity" binding:"gte=0" validate:"gte=0"`
	Reason      string `json:"reason" binding:"required" validate:"required,max=1000"`
}

// ListItemsParams defines query parameters for listing the items of a session.
type ListItemsParams struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=pending verified discrepancy overage not_found"`
}

// ItemResponse defines data returned for a verification item.
type ItemResponse struct {
	ItemID             string             `json:"itemID"`
	SessionID          string             `json:"sessionID"`
	ItemCode           string             `json:"itemCode"`
	OriginalDetails    domain.ItemDetails `json:"originalDetails"`
	ExpectedQuantity   int                `json:"expectedQuantity"`
	VerifiedQuantity   int                `json:"verifiedQuantity"`
	VarianceQuantity   int                `json:"varianceQuantity"`
	VarianceValue      decimal.Decimal    `json:"varianceValue"`
	Status             string             `json:"status"`
	VerificationMethod string             `json:"verificationMethod,omitempty"`
	VerifiedBy         string             `json:"verifiedBy,omitempty"`
	VerifiedAt         *time.Time         `json:"verifiedAt,omitempty"`
	Notes              string             `json:"notes"`
	IsAdjusted         bool               `json:"isAdjusted"`
	AdjustmentReason   string             `json:"adjustmentReason,omitempty"`
}

// RecordCountResponse is returned after a count or correction was applied.
type RecordCountResponse struct {
	Item             ItemResponse         `json:"item"`
	VarianceQuantity int                  `json:"varianceQuantity"`
	VarianceValue    decimal.Decimal      `json:"varianceValue"`
	Status           string               `json:"status"`
	SessionStats     SessionStatsResponse `json:"sessionStats"`
}

// GetItemResponse is an item together with its frozen baseline.
type GetItemResponse struct {
	Item     ItemResponse              `json:"item"`
	Snapshot *domain.InventorySnapshot `json:"snapshot,omitempty"`
}

// Pagination describes the page returned by an offset listing.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListItemsResponse wraps a page of items with the session's status summary.
type ListItemsResponse struct {
	Items      []ItemResponse       `json:"items"`
	Pagination Pagination           `json:"pagination"`
	Summary    domain.StatusSummary `json:"summary"`
}

// ToItemResponse converts domain.VerificationItem to DTO.
func ToItemResponse(i *domain.VerificationItem) ItemResponse {
	return ItemResponse{
		ItemID:             i.ItemID,
		SessionID:          i.SessionID,
		ItemCode:           i.ItemCode,
		OriginalDetails:    i.Details,
		ExpectedQuantity:   i.ExpectedQuantity,
		VerifiedQuantity:   i.VerifiedQuantity,
		VarianceQuantity:   i.VarianceQuantity,
		VarianceValue:      i.VarianceValue,
		Status:             string(i.Status),
		VerificationMethod: string(i.Method),
		VerifiedBy:         i.VerifiedBy,
		VerifiedAt:         i.VerifiedAt,
		Notes:              i.Notes,
		IsAdjusted:         i.IsAdjusted,
		AdjustmentReason:   i.AdjustmentReason,
	}
}

// ToItemResponses converts a slice of domain.VerificationItem to DTOs.
func ToItemResponses(items []domain.VerificationItem) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToItemResponse(&item)
	}
	return responses
}

// ToRecordCountResponse builds the response of a recording operation.
func ToRecordCountResponse(item *domain.VerificationItem, stats domain.SessionStats) RecordCountResponse {
	return RecordCountResponse{
		Item:             ToItemResponse(item),
		VarianceQuantity: item.VarianceQuantity,
		VarianceValue:    item.VarianceValue,
		Status:           string(item.Status),
		SessionStats:     ToSessionStatsResponse(stats),
	}
}

// NewPagination computes page metadata.
func NewPagination(page, pageSize, total int) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}
