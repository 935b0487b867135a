package fraud

import (
	"context"
	"errors"
	"testing"
)

type MockRepository struct {
	IsReceiverFlaggedFunc func(ctx context.Context, receiverID string) (bool, error)
	InsertIfAbsentFunc    func(ctx context.Context, params InsertFlaggedParams) (bool, error)
	ListRecentFunc        func(ctx context.Context, limit int) ([]*FlaggedTransaction, error)

	Inserted []InsertFlaggedParams
}

func (m *MockRepository) IsReceiverFlagged(ctx context.Context, receiverID string) (bool, error) {
	if m.IsReceiverFlaggedFunc != nil {
		return m.IsReceiverFlaggedFunc(ctx, receiverID)
	}
	return false, nil
}

func (m *MockRepository) InsertIfAbsent(ctx context.Context, params InsertFlaggedParams) (bool, error) {
	m.Inserted = append(m.Inserted, params)
	if m.InsertIfAbsentFunc != nil {
		return m.InsertIfAbsentFunc(ctx, params)
	}
	return true, nil
}

func (m *MockRepository) ListRecent(ctx context.Context, limit int) ([]*FlaggedTransaction, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return nil, nil
}

type MockClassifier struct {
	PredictFunc func(ctx context.Context, features [4]float64) (int, error)
	Calls       int
}

func (m *MockClassifier) Predict(ctx context.Context, features [4]float64) (int, error) {
	m.Calls++
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, features)
	}
	return 0, nil
}

func constClassifier(prediction int) *MockClassifier {
	return &MockClassifier{
		PredictFunc: func(ctx context.Context, features [4]float64) (int, error) {
			return prediction, nil
		},
	}
}

func testInput() TransactionInput {
	return TransactionInput{
		TransactionID: "tx-1",
		Type:          1,
		Amount:        100,
		OldBalance:    10000,
		NewBalance:    9900,
		SenderID:      "C100",
		ReceiverID:    "M200",
		Step:          12,
	}
}

func TestInspect_FlaggedReceiverFastPath(t *testing.T) {
	repo := &MockRepository{
		IsReceiverFlaggedFunc: func(ctx context.Context, receiverID string) (bool, error) {
			return true, nil
		},
	}
	svm := constClassifier(1)
	rf := constClassifier(1)
	svc := NewService(repo, svm, rf, NewScorer(nil))

	// Feature values are irrelevant on the fast path.
	input := testInput()
	input.Amount = 1

	result, err := svc.Inspect(context.Background(), input)
	if err != nil {
		t.Fatalf("Inspect() failed: %v", err)
	}

	if result.Verdict != VerdictFraud || result.RiskScore != 90 {
		t.Errorf("fast path result = (%q, %d), want (Fraud, 90)", result.Verdict, result.RiskScore)
	}
	if svm.Calls != 0 || rf.Calls != 0 {
		t.Errorf("classifiers called %d/%d times on fast path, want 0/0", svm.Calls, rf.Calls)
	}
	if len(repo.Inserted) != 0 {
		t.Errorf("fast path inserted %d rows, want 0", len(repo.Inserted))
	}
}

func TestInspect_FraudVerdictRecordsTransaction(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, constClassifier(1), constClassifier(0), NewScorer(nil))

	result, err := svc.Inspect(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Inspect() failed: %v", err)
	}

	if result.Verdict != VerdictFraud {
		t.Fatalf("verdict = %q, want %q", result.Verdict, VerdictFraud)
	}
	if len(repo.Inserted) != 1 {
		t.Fatalf("inserted %d rows, want 1", len(repo.Inserted))
	}

	params := repo.Inserted[0]
	if params.TransactionID != "tx-1" || params.ReceiverID != "M200" {
		t.Errorf("inserted (%q, %q), want (tx-1, M200)", params.TransactionID, params.ReceiverID)
	}
	if params.Amount == nil || *params.Amount != 100 {
		t.Errorf("inserted amount = %v, want 100", params.Amount)
	}
	if params.TransactionDate == nil || *params.TransactionDate == "" {
		t.Error("inserted transaction date is empty")
	}
}

func TestInspect_NotFraudDoesNotWrite(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, constClassifier(0), constClassifier(0), NewScorer(nil))

	result, err := svc.Inspect(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Inspect() failed: %v", err)
	}

	if result.Verdict != VerdictNotFraud {
		t.Fatalf("verdict = %q, want %q", result.Verdict, VerdictNotFraud)
	}
	if len(repo.Inserted) != 0 {
		t.Errorf("inserted %d rows, want 0", len(repo.Inserted))
	}
}

func TestInspect_DuplicateInsertIsTolerated(t *testing.T) {
	repo := &MockRepository{
		InsertIfAbsentFunc: func(ctx context.Context, params InsertFlaggedParams) (bool, error) {
			return false, nil // transaction_id already present
		},
	}
	svc := NewService(repo, constClassifier(1), constClassifier(0), NewScorer(nil))

	result, err := svc.Inspect(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Inspect() failed on duplicate insert: %v", err)
	}
	if result.Verdict != VerdictFraud {
		t.Errorf("verdict = %q, want %q", result.Verdict, VerdictFraud)
	}
}

func TestInspect_ErrorKinds(t *testing.T) {
	failure := errors.New("boom")

	tests := []struct {
		name    string
		repo    *MockRepository
		svm     *MockClassifier
		rf      *MockClassifier
		asModel bool
	}{
		{
			name: "receiver lookup failure",
			repo: &MockRepository{
				IsReceiverFlaggedFunc: func(ctx context.Context, receiverID string) (bool, error) {
					return false, failure
				},
			},
			svm: constClassifier(0),
			rf:  constClassifier(0),
		},
		{
			name: "insert failure",
			repo: &MockRepository{
				InsertIfAbsentFunc: func(ctx context.Context, params InsertFlaggedParams) (bool, error) {
					return false, failure
				},
			},
			svm: constClassifier(1),
			rf:  constClassifier(0),
		},
		{
			name: "svm failure",
			repo: &MockRepository{},
			svm: &MockClassifier{
				PredictFunc: func(ctx context.Context, features [4]float64) (int, error) {
					return 0, failure
				},
			},
			rf:      constClassifier(0),
			asModel: true,
		},
		{
			name: "random forest failure",
			repo: &MockRepository{},
			svm:  constClassifier(0),
			rf: &MockClassifier{
				PredictFunc: func(ctx context.Context, features [4]float64) (int, error) {
					return 0, failure
				},
			},
			asModel: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.repo, tt.svm, tt.rf, NewScorer(nil))

			_, err := svc.Inspect(context.Background(), testInput())
			if err == nil {
				t.Fatal("Inspect() expected error, got nil")
			}
			if !errors.Is(err, failure) {
				t.Errorf("error %v does not wrap the underlying failure", err)
			}

			var modelErr *ModelError
			var storageErr *StorageError
			if tt.asModel {
				if !errors.As(err, &modelErr) {
					t.Errorf("error %v is not a ModelError", err)
				}
			} else {
				if !errors.As(err, &storageErr) {
					t.Errorf("error %v is not a StorageError", err)
				}
			}
		})
	}
}

func TestInspect_PassesFeatureVector(t *testing.T) {
	var got [4]float64
	svm := &MockClassifier{
		PredictFunc: func(ctx context.Context, features [4]float64) (int, error) {
			got = features
			return 0, nil
		},
	}
	svc := NewService(&MockRepository{}, svm, constClassifier(0), NewScorer(nil))

	input := testInput()
	if _, err := svc.Inspect(context.Background(), input); err != nil {
		t.Fatalf("Inspect() failed: %v", err)
	}

	want := [4]float64{1, 100, 10000, 9900}
	if got != want {
		t.Errorf("classifier received %v, want %v", got, want)
	}
}

func TestListFlagged_WrapsStorageError(t *testing.T) {
	repo := &MockRepository{
		ListRecentFunc: func(ctx context.Context, limit int) ([]*FlaggedTransaction, error) {
			return nil, errors.New("boom")
		},
	}
	svc := NewService(repo, constClassifier(0), constClassifier(0), NewScorer(nil))

	_, err := svc.ListFlagged(context.Background(), 10)
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Errorf("error %v is not a StorageError", err)
	}
}
