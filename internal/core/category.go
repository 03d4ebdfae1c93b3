package core

import "strings"

// Category is the expense sub-classification inferred from a description.
type Category string

const (
	CategoryNone          Category = ""
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryUncategorized Category = "uncategorized"
)

// Categories lists the expense categories in summary order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryHealth,
	CategoryUncategorized,
}

// Rule assigns Category to descriptions containing any of Keywords.
// Keywords must be lower case.
type Rule struct {
	Category Category
	Keywords []string
}

// DefaultRules is evaluated top to bottom and the first matching rule wins,
// so a description naming both a restaurant and a taxi is food.
//
// Matching is by substring, not by word: "taxidermist" matches "taxi".
var DefaultRules = []Rule{
	{Category: CategoryFood, Keywords: []string{"comida", "food", "restaurante"}},
	{Category: CategoryTransport, Keywords: []string{"transporte", "transport", "taxi", "gasolina"}},
	{Category: CategoryEntertainment, Keywords: []string{"entretenimiento", "entertainment", "cine", "netflix"}},
	{Category: CategoryHealth, Keywords: []string{"salud", "health", "médico", "farmacia"}},
}

// Classifier maps expense descriptions to categories with an ordered rule
// list. The zero value uses DefaultRules.
type Classifier struct {
	rules []Rule
}

// NewClassifier returns a classifier over rules, evaluated in order.
func NewClassifier(rules []Rule) *Classifier {
	cp := make([]Rule, len(rules))
	for i, r := range rules {
		kw := make([]string, len(r.Keywords))
		for j, k := range r.Keywords {
			kw[j] = strings.ToLower(k)
		}
		cp[i] = Rule{Category: r.Category, Keywords: kw}
	}
	return &Classifier{rules: cp}
}

var defaultClassifier = NewClassifier(DefaultRules)

// Classify categorizes with the default rules.
func Classify(typ, description string) Category {
	return defaultClassifier.Classify(typ, description)
}

// Classify returns CategoryNone when typ is not an expense, the first
// matching rule's category otherwise, or CategoryUncategorized when no rule
// matches.
func (c *Classifier) Classify(typ, description string) Category {
	if ParseKind(typ) != Expense {
		return CategoryNone
	}
	return c.Match(description)
}

// Match runs the rules against description regardless of type.
func (c *Classifier) Match(description string) Category {
	rules := DefaultRules
	if c != nil && c.rules != nil {
		rules = c.rules
	}
	desc := strings.ToLower(description)
	if strings.TrimSpace(desc) == "" {
		return CategoryUncategorized
	}
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if kw != "" && strings.Contains(desc, kw) {
				return r.Category
			}
		}
	}
	return CategoryUncategorized
}

// Label is the human-readable card title.
func (c Category) Label() string {
	switch c {
	case CategoryFood:
		return "Food"
	case CategoryTransport:
		return "Transport"
	case CategoryEntertainment:
		return "Entertainment"
	case CategoryHealth:
		return "Health"
	case CategoryUncategorized:
		return "Uncategorized"
	default:
		return ""
	}
}
