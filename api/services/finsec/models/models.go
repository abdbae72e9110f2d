package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for bill due dates.
const DateLayout = "2006-01-02"

// Credentials identify a pre-existing account on the API under test.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccessToken is the opaque bearer credential returned by login.
type AccessToken string

// Empty reports whether the token carries no value.
func (t AccessToken) Empty() bool { return t == "" }

// BearerHeader returns the Authorization header value for the token.
func (t AccessToken) BearerHeader() string { return "Bearer " + string(t) }

// BillRecord is the payload sent to the bill write endpoint.
// It is not retained after the request completes.
type BillRecord struct {
	Category    string `json:"category"`
	Amount      int    `json:"amount"`
	DueDate     string `json:"due_date"`
	Description string `json:"description"`
}

// NewBillRecord builds a bill due on the calendar date of due.
func NewBillRecord(category string, amount int, due time.Time) BillRecord {
	return BillRecord{
		Category:    category,
		Amount:      amount,
		DueDate:     due.Format(DateLayout),
		Description: fmt.Sprintf("Test bill for %s", category),
	}
}

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// DefaultPeriods lists the analytics windows checked on every run, in order.
var DefaultPeriods = []Period{PeriodWeek, PeriodMonth, PeriodYear}

// Valid reports whether p is one of the analytics windows the API accepts.
func (p Period) Valid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// AnalyticsQuery parameterizes one read of the spending analytics endpoint.
type AnalyticsQuery struct {
	Period Period `json:"period"`
}

// Bill categories the seeder chooses from.
const (
	CategoryGroceries      = "Groceries"
	CategoryUtilities      = "Utilities"
	CategoryEntertainment  = "Entertainment"
	CategoryTransportation = "Transportation"
)

// DefaultCategories is the fixed category set used for seeding.
var DefaultCategories = []string{
	CategoryGroceries,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryTransportation,
}
