// ABOUTME: Activity model for logged tracker entries.
// ABOUTME: Identity is a positive integer id, unique across all week buckets.
package models

import "time"

// Activity is a single logged event: something the user did, when, and
// how much of it. ActivityTypeID references an ActivityType and is not
// validated at this layer.
type Activity struct {
	ID             int       `json:"id"`
	ActivityTypeID int       `json:"activityTypeId"`
	When           time.Time `json:"when"`
	Amount         int       `json:"amount"`
	Notes          string    `json:"notes"`
}

// NewActivity creates an Activity for the given type and amount,
// timestamped now. The id is assigned by the repository on Add.
func NewActivity(activityTypeID, amount int) Activity {
	return Activity{
		ActivityTypeID: activityTypeID,
		When:           time.Now(),
		Amount:         amount,
	}
}

// WithWhen sets a custom timestamp.
func (a Activity) WithWhen(t time.Time) Activity {
	a.When = t
	return a
}

// WithNotes sets notes on the activity.
func (a Activity) WithNotes(notes string) Activity {
	a.Notes = notes
	return a
}
