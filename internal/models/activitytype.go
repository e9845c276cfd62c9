// ABOUTME: ActivityType model and NetBenefit enum for activity categories.
// ABOUTME: Types carry optional daily/weekly goal amounts and a display unit.
package models

// NetBenefit classifies whether doing more of an activity is good or bad.
type NetBenefit string

const (
	BenefitNone     NetBenefit = "None"
	BenefitPositive NetBenefit = "Positive"
	BenefitNegative NetBenefit = "Negative"
)

// AllNetBenefits returns the valid NetBenefit values.
var AllNetBenefits = []NetBenefit{BenefitNone, BenefitPositive, BenefitNegative}

// IsValidNetBenefit checks if a string is a valid NetBenefit value.
func IsValidNetBenefit(s string) bool {
	for _, b := range AllNetBenefits {
		if string(b) == s {
			return true
		}
	}
	return false
}

// ActivityType is a user-defined activity category. DailyAmount and
// WeeklyAmount are goal targets; nil means no goal is set for that period.
type ActivityType struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	NetBenefit   NetBenefit `json:"netBenefit"`
	DailyAmount  *int       `json:"dailyAmount"`
	WeeklyAmount *int       `json:"weeklyAmount"`
	Unit         *string    `json:"unit"`
}

// NewActivityType creates an ActivityType with the given name.
// The id is assigned by the type store on Add.
func NewActivityType(name string) ActivityType {
	return ActivityType{
		Name:       name,
		NetBenefit: BenefitNone,
	}
}

// WithDailyAmount sets the daily goal amount.
func (t ActivityType) WithDailyAmount(amount int) ActivityType {
	t.DailyAmount = &amount
	return t
}

// WithWeeklyAmount sets the weekly goal amount.
func (t ActivityType) WithWeeklyAmount(amount int) ActivityType {
	t.WeeklyAmount = &amount
	return t
}

// WithUnit sets the display unit.
func (t ActivityType) WithUnit(unit string) ActivityType {
	t.Unit = &unit
	return t
}

// WithNetBenefit sets the net benefit classification.
func (t ActivityType) WithNetBenefit(b NetBenefit) ActivityType {
	t.NetBenefit = b
	return t
}
