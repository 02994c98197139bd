package credits

import "time"

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// Account is a user's plan and credit balance.
type Account struct {
	Plan      string    `json:"plan"`
	Credits   int       `json:"credits"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Licensed reports whether the account removes the preview watermark.
func Licensed(a Account) bool {
	return a.Plan == PlanPro
}

func defaultAccount(starting int) Account {
	return Account{
		Plan:      PlanFree,
		Credits:   starting,
		UpdatedAt: time.Now().UTC(),
	}
}
