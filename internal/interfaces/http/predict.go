package http

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"tiis/internal/domain/fraud"
	"tiis/internal/web"

	"github.com/google/uuid"
)

var resultTemplate = template.Must(template.ParseFS(web.FS, "result.html"))

// Inspector is the slice of the inspection service the handler needs.
type Inspector interface {
	Inspect(ctx context.Context, input fraud.TransactionInput) (*fraud.ScoreResult, error)
}

type PredictHandler struct {
	service Inspector
}

func NewPredictHandler(service Inspector) *PredictHandler {
	return &PredictHandler{service: service}
}

// resultView is the data handed to the result template.
type resultView struct {
	Result     *fraud.ScoreResult
	ReceiverID string
}

// HandlePredict accepts the transaction form, scores it, and renders the
// result page. Any malformed field yields a single generic 400: the caller
// gets no hint which field failed, matching the intentionally opaque
// validation surface.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	input, err := parseTransactionForm(r)
	if err != nil {
		log.Printf("Rejected predict request: %v", err)
		http.Error(w, "Invalid input: please check the submitted fields", http.StatusBadRequest)
		return
	}

	result, err := h.service.Inspect(r.Context(), input)
	if err != nil {
		var modelErr *fraud.ModelError
		if errors.As(err, &modelErr) {
			log.Printf("Classifier failure for transaction %s: %v", input.TransactionID, err)
			http.Error(w, "Scoring is temporarily unavailable", http.StatusBadGateway)
			return
		}
		log.Printf("Inspection failure for transaction %s: %v", input.TransactionID, err)
		http.Error(w, "Failed to inspect transaction", http.StatusInternalServerError)
		return
	}

	view := resultView{Result: result}
	if result.Verdict == fraud.VerdictFraud {
		view.ReceiverID = input.ReceiverID
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := resultTemplate.Execute(w, view); err != nil {
		log.Printf("Error rendering result for transaction %s: %v", input.TransactionID, err)
	}
}

// parseTransactionForm extracts and validates the eight form fields. A blank
// transaction_id gets a generated UUID so the flagged-transactions table never
// stores an empty key.
func parseTransactionForm(r *http.Request) (fraud.TransactionInput, error) {
	var input fraud.TransactionInput

	if err := r.ParseForm(); err != nil {
		return input, fraud.NewValidationError("malformed form body")
	}

	txType, err := parseFloatField(r, "type")
	if err != nil {
		return input, err
	}
	amount, err := parseFloatField(r, "amount")
	if err != nil {
		return input, err
	}
	oldBalance, err := parseFloatField(r, "oldbalance")
	if err != nil {
		return input, err
	}
	newBalance, err := parseFloatField(r, "newbalance")
	if err != nil {
		return input, err
	}

	senderID := r.PostFormValue("sender_id")
	receiverID := r.PostFormValue("receiver_id")
	if senderID == "" || receiverID == "" {
		return input, fraud.NewValidationError("sender_id and receiver_id are required")
	}

	stepStr := r.PostFormValue("step")
	step, err := strconv.Atoi(stepStr)
	if err != nil {
		return input, fraud.NewValidationError("step must be an integer")
	}

	transactionID := r.PostFormValue("transaction_id")
	if transactionID == "" {
		transactionID = uuid.New().String()
	}

	return fraud.TransactionInput{
		TransactionID: transactionID,
		Type:          txType,
		Amount:        amount,
		OldBalance:    oldBalance,
		NewBalance:    newBalance,
		SenderID:      senderID,
		ReceiverID:    receiverID,
		Step:          step,
	}, nil
}

func parseFloatField(r *http.Request, name string) (float64, error) {
	raw := r.PostFormValue(name)
	if raw == "" {
		return 0, fraud.NewValidationError(name + " is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fraud.NewValidationError(name + " must be numeric")
	}
	return v, nil
}
