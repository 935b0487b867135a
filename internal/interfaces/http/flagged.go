package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"tiis/internal/domain/fraud"
)

const (
	defaultFlaggedLimit = 50
	maxFlaggedLimit     = 500
)

// FlaggedLister is the slice of the inspection service the review endpoint needs.
type FlaggedLister interface {
	ListFlagged(ctx context.Context, limit int) ([]*fraud.FlaggedTransaction, error)
}

type FlaggedHandler struct {
	service FlaggedLister
}

func NewFlaggedHandler(service FlaggedLister) *FlaggedHandler {
	return &FlaggedHandler{service: service}
}

// HandleListFlagged returns the most recently flagged transactions as JSON.
func (h *FlaggedHandler) HandleListFlagged(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultFlaggedLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= maxFlaggedLimit {
			limit = parsed
		}
	}

	transactions, err := h.service.ListFlagged(r.Context(), limit)
	if err != nil {
		log.Printf("Error listing flagged transactions: %v", err)
		http.Error(w, "Failed to list flagged transactions", http.StatusInternalServerError)
		return
	}
	if transactions == nil {
		transactions = []*fraud.FlaggedTransaction{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transactions)
}
