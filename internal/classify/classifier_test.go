package classify

import (
	"testing"
	"time"

	"github.com/nmansour/fabflow/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestClassifier_IsInternal(t *testing.T) {
	c := NewDefaultClassifier()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		txn  model.Transaction
		want bool
	}{
		{
			name: "paired flag short-circuits everything",
			txn: model.Transaction{
				Date: date, Amount: 5000, Type: model.Credit,
				Description:    "Cheque Deposit branch",
				PairedInternal: true,
			},
			want: true,
		},
		{
			name: "fee reversal keyword",
			txn: model.Transaction{
				Date: date, Amount: 105, Type: model.Credit,
				Description: "Fee Reversal March charges",
			},
			want: true,
		},
		{
			name: "cash deposit keyword",
			txn: model.Transaction{
				Date: date, Amount: 2000, Type: model.Credit,
				Description: "ATM Cash Deposit AL WAHDA",
			},
			want: true,
		},
		{
			name: "outward transfer with no exclude",
			txn: model.Transaction{
				Date: date, Amount: 3000, Type: model.Debit,
				Description: "Outward Transfer to savings",
			},
			want: true,
		},
		{
			name: "inward telex transfer is income",
			txn: model.Transaction{
				Date: date, Amount: 15000, Type: model.Credit,
				Description: "Inward Telex Transfer salary Jan",
			},
			want: false,
		},
		{
			name: "salary transfer excluded even though transfer matches",
			txn: model.Transaction{
				Date: date, Amount: 12000, Type: model.Credit,
				Description: "SALARY TRANSFER ACME LLC",
			},
			want: false,
		},
		{
			name: "small credit is an adjustment",
			txn: model.Transaction{
				Date: date, Amount: 3, Type: model.Credit,
				Description: "interest adjustment",
			},
			want: true,
		},
		{
			name: "small debit is not filtered",
			txn: model.Transaction{
				Date: date, Amount: 3, Type: model.Debit,
				Description: "coffee",
			},
			want: false,
		},
		{
			name: "credit at the threshold is kept",
			txn: model.Transaction{
				Date: date, Amount: 5, Type: model.Credit,
				Description: "refund",
			},
			want: false,
		},
		{
			name: "ordinary expense",
			txn: model.Transaction{
				Date: date, Amount: 152.75, Type: model.Debit,
				Description: "POS Settlement CARREFOUR",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsInternal(tt.txn))
		})
	}
}

// The classifier is a pure predicate: re-evaluating the same transaction
// never changes the answer, and the rule tables are not mutated by use.
func TestClassifier_Pure(t *testing.T) {
	c := NewDefaultClassifier()
	txn := model.Transaction{
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:      3000,
		Type:        model.Debit,
		Description: "Outward Transfer to savings",
	}

	for i := 0; i < 5; i++ {
		assert.True(t, c.IsInternal(txn))
	}
}

func TestClassifier_CustomRules(t *testing.T) {
	c := NewClassifier(Rules{
		Keywords:       []string{"sandbox"},
		SmallCreditMax: 50,
	})

	assert.True(t, c.IsInternal(model.Transaction{
		Description: "SANDBOX test entry", Type: model.Debit, Amount: 100,
	}))
	assert.True(t, c.IsInternal(model.Transaction{
		Description: "tiny credit", Type: model.Credit, Amount: 49,
	}))
	assert.False(t, c.IsInternal(model.Transaction{
		Description: "Outward Transfer to savings", Type: model.Debit, Amount: 100,
	}), "no transfer patterns configured")
}
