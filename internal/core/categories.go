package core

// Vocabulary is the fixed set of allowed categories per transaction type.
// Membership is enforced at the creation boundary, never inside aggregation:
// the aggregator folds whatever category strings the records carry.
type Vocabulary struct {
	Income  []string
	Expense []string
}

// DefaultVocabulary returns the built-in category sets. Deployments can
// override them from a YAML file, see config.LoadVocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Income:  []string{"Gaji", "Bonus", "Investasi", "Lainnya"},
		Expense: []string{"Makanan", "Transportasi", "Belanja", "Tagihan", "Hiburan", "Kesehatan", "Lainnya"},
	}
}

// Allows reports whether category is in the vocabulary for the given type.
func (v Vocabulary) Allows(t TransactionType, category string) bool {
	var set []string
	switch t {
	case TypeIncome:
		set = v.Income
	case TypeExpense:
		set = v.Expense
	default:
		return false
	}
	for _, c := range set {
		if c == category {
			return true
		}
	}
	return false
}

// For returns the category list for a type, nil for an unknown type.
func (v Vocabulary) For(t TransactionType) []string {
	switch t {
	case TypeIncome:
		return v.Income
	case TypeExpense:
		return v.Expense
	}
	return nil
}
