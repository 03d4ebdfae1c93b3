package core

// Summary holds totals derived from a set of transactions. It is recomputed
// from scratch on every pass and never stored.
//
// The category buckets partition Expense exactly: whatever no rule claims
// lands in Uncategorized. Transfers and unrecognized types count nowhere.
type Summary struct {
	Income        Money
	Expense       Money
	Food          Money
	Transport     Money
	Entertainment Money
	Health        Money
	Uncategorized Money
}

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// Aggregate totals txs with the default classifier.
func Aggregate(txs []Transaction) Summary {
	return defaultClassifier.Aggregate(txs)
}

// Aggregate totals txs by type and expense category. It does not modify
// txs and the result does not depend on their order.
func (c *Classifier) Aggregate(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Kind() {
		case Income:
			s.Income = s.Income.Add(t.Amount)
		case Expense:
			s.Expense = s.Expense.Add(t.Amount)
			s.add(c.Match(t.Description), t.Amount)
		}
	}
	return s
}

func (s *Summary) add(c Category, m Money) {
	switch c {
	case CategoryFood:
		s.Food = s.Food.Add(m)
	case CategoryTransport:
		s.Transport = s.Transport.Add(m)
	case CategoryEntertainment:
		s.Entertainment = s.Entertainment.Add(m)
	case CategoryHealth:
		s.Health = s.Health.Add(m)
	default:
		s.Uncategorized = s.Uncategorized.Add(m)
	}
}

// ByCategory returns the category buckets in summary order.
func (s Summary) ByCategory() []CategoryAmount {
	return []CategoryAmount{
		{Category: CategoryFood, Amount: s.Food},
		{Category: CategoryTransport, Amount: s.Transport},
		{Category: CategoryEntertainment, Amount: s.Entertainment},
		{Category: CategoryHealth, Amount: s.Health},
		{Category: CategoryUncategorized, Amount: s.Uncategorized},
	}
}

// Amount returns the bucket for c. CategoryNone has no bucket.
func (s Summary) Amount(c Category) Money {
	switch c {
	case CategoryFood:
		return s.Food
	case CategoryTransport:
		return s.Transport
	case CategoryEntertainment:
		return s.Entertainment
	case CategoryHealth:
		return s.Health
	case CategoryUncategorized:
		return s.Uncategorized
	default:
		return Money{}
	}
}

// Balance is income minus expense; it can be negative.
func (s Summary) Balance() Money {
	return s.Income.Sub(s.Expense)
}
