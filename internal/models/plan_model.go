package models

// PlanID identifies a subscription tier. It is also the value stored in User.Subscription.
type PlanID string

const (
	PlanFree          PlanID = "free"
	PlanPayPerService PlanID = "pay-per-service"
	PlanBasic         PlanID = "basic"
	PlanStandard      PlanID = "standard"
	PlanPremium       PlanID = "premium"
)

// Plan describes one subscription tier. PriceID is the payment processor
// price; it is empty for tiers that never go through checkout.
type Plan struct {
	ID       PlanID   `json:"id"`
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Period   string   `json:"period"`
	PriceID  string   `json:"priceId,omitempty"`
	Features []string `json:"features"`
	Popular  bool     `json:"popular"`
}

// RequiresPayment reports whether selecting the plan goes through checkout.
func (p Plan) RequiresPayment() bool {
	return p.PriceID != ""
}

// DefaultPlans returns the plan catalog with the given processor price ids.
// Keys of priceIDs are plan ids.
func DefaultPlans(priceIDs map[PlanID]string) []Plan {
	return []Plan{
		{
			ID: PlanFree, Name: "Free", Price: "$0", Period: "forever",
			Features: []string{"Access to community forums", "Basic resources library", "Monthly newsletter"},
		},
		{
			ID: PlanPayPerService, Name: "Pay per Service", Price: "Varies", Period: "per session",
			PriceID:  priceIDs[PlanPayPerService],
			Features: []string{"Individual session booking", "Flexible scheduling", "No monthly commitment", "Access to all coaches"},
		},
		{
			ID: PlanBasic, Name: "Basic", Price: "$39", Period: "monthly", Popular: true,
			PriceID:  priceIDs[PlanBasic],
			Features: []string{"2 coaching sessions/month", "Access to recorded workshops", "Email support", "Personal dashboard"},
		},
		{
			ID: PlanStandard, Name: "Standard", Price: "$59", Period: "monthly",
			PriceID:  priceIDs[PlanStandard],
			Features: []string{"4 coaching sessions/month", "Priority scheduling", "Direct messaging with coach", "Personalized action plans"},
		},
		{
			ID: PlanPremium, Name: "Premium", Price: "$79", Period: "monthly",
			PriceID:  priceIDs[PlanPremium],
			Features: []string{"Unlimited coaching sessions", "24/7 priority support", "Personalized growth plan", "Exclusive resources access"},
		},
	}
}
