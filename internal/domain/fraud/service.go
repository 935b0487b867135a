package fraud

import (
	"context"
	"log"
	"time"
)

// transactionDateFormat matches the human-readable timestamp stored alongside
// flagged transactions.
const transactionDateFormat = "2006-01-02 15:04:05"

// Service orchestrates one transaction inspection: flagged-receiver lookup,
// classifier invocation, scoring, and write-back of fraud verdicts.
type Service struct {
	repo         Repository
	svm          Classifier
	randomForest Classifier
	scorer       *Scorer
}

func NewService(repo Repository, svm, randomForest Classifier, scorer *Scorer) *Service {
	return &Service{
		repo:         repo,
		svm:          svm,
		randomForest: randomForest,
		scorer:       scorer,
	}
}

// Inspect scores a single transaction. A receiver with prior fraud history
// short-circuits to the fixed fast-path result without touching the models or
// writing anything. Otherwise both classifiers run, the heuristics are
// evaluated, and a Fraud verdict is recorded (duplicate transaction IDs are
// silently ignored).
func (s *Service) Inspect(ctx context.Context, input TransactionInput) (*ScoreResult, error) {
	flagged, err := s.repo.IsReceiverFlagged(ctx, input.ReceiverID)
	if err != nil {
		return nil, &StorageError{Op: "receiver lookup", Err: err}
	}
	if flagged {
		result := FlaggedReceiverResult()
		return &result, nil
	}

	features := input.Features()

	svmPred, err := s.svm.Predict(ctx, features)
	if err != nil {
		return nil, &ModelError{Model: "svm", Err: err}
	}
	rfPred, err := s.randomForest.Predict(ctx, features)
	if err != nil {
		return nil, &ModelError{Model: "random forest", Err: err}
	}

	result := s.scorer.Score(Signals{
		SVM:          svmPred,
		RandomForest: rfPred,
		HighAmount:   s.scorer.HighAmount(input.Amount, input.OldBalance),
		OddHour:      s.scorer.IsOddHour(input.Step),
	})

	if result.Verdict == VerdictFraud {
		amount := input.Amount
		transactionDate := time.Now().Format(transactionDateFormat)
		created, err := s.repo.InsertIfAbsent(ctx, InsertFlaggedParams{
			TransactionID:   input.TransactionID,
			ReceiverID:      input.ReceiverID,
			Amount:          &amount,
			TransactionDate: &transactionDate,
		})
		if err != nil {
			return nil, &StorageError{Op: "flag transaction", Err: err}
		}
		if !created {
			log.Printf("Transaction %s already flagged, skipping insert", input.TransactionID)
		}
	}

	return &result, nil
}

// ListFlagged returns the most recently flagged transactions for review.
func (s *Service) ListFlagged(ctx context.Context, limit int) ([]*FlaggedTransaction, error) {
	transactions, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, &StorageError{Op: "list flagged", Err: err}
	}
	return transactions, nil
}
