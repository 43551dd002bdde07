// Package core provides the CRM ingestion and analytics pipeline.
// This package has no UI dependencies and can be used by any frontend.
package core

import "time"

// Priority is the three-level engagement classification carried by a contact.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// UnassignedOwner is the display label for contacts without an owner.
const UnassignedOwner = "Unassigned"

// UnknownLifecycleStage is the lifecycle stage assigned when the column is absent or empty.
const UnknownLifecycleStage = "Unknown"

// RawRow is one tokenized line: an ordered list of field values.
type RawRow []string

// FailedRow contains information about a row that was dropped during ingestion.
type FailedRow struct {
	File       string   `json:"file,omitempty"`
	LineNumber int      `json:"lineNumber"`
	Reason     string   `json:"reason"`
	Data       []string `json:"data,omitempty"`
}

// Tokenized is the output of the tokenizer.
// Rows[0] is the header; Rows[1:] are the accepted data rows.
type Tokenized struct {
	Delimiter rune        `json:"-"`
	Rows      []RawRow    `json:"rows"`
	Skipped   []FailedRow `json:"skipped,omitempty"`
}

// Header returns the header row, or nil if nothing was tokenized.
func (t Tokenized) Header() RawRow {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// DataRows returns the rows after the header.
func (t Tokenized) DataRows() []RawRow {
	if len(t.Rows) < 2 {
		return nil
	}
	return t.Rows[1:]
}

// IntentSignal is a timestamped buying-intent event attached to a contact.
type IntentSignal struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt,omitzero"`
	Strength   int       `json:"strength"`
}

// Contact is a normalized contact record. It is never modified after normalization.
type Contact struct {
	ID              string         `json:"id"`
	FirstName       string         `json:"firstName"`
	LastName        string         `json:"lastName"`
	Email           string         `json:"email"`
	Company         string         `json:"company"`
	Title           string         `json:"title"`
	Industry        string         `json:"industry,omitempty"`
	CompanySize     string         `json:"companySize,omitempty"`
	EngagementScore int            `json:"engagementScore"`
	IntentScore     int            `json:"intentScore"`
	Priority        Priority       `json:"priority"`
	LifecycleStage  string         `json:"lifecycleStage"`
	Owner           string         `json:"owner"`
	IntentSignals   []IntentSignal `json:"intentSignals,omitempty"`
}

// FullName joins first and last name.
func (c Contact) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// OwnerLabel returns the owner for display, substituting UnassignedOwner for "".
func (c Contact) OwnerLabel() string {
	return OwnerLabel(c.Owner)
}

// OwnerLabel maps a raw owner key to its display label.
func OwnerLabel(owner string) string {
	if owner == "" {
		return UnassignedOwner
	}
	return owner
}

// Deal is a normalized deal record from a deals export.
type Deal struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Stage     string    `json:"stage"`
	Amount    float64   `json:"amount"`
	CloseDate time.Time `json:"closeDate,omitzero"`
}

// Won reports whether the deal is in a closed-won stage.
func (d Deal) Won() bool {
	return isStage(d.Stage, "closedwon", "closed_won", "won")
}

// Lost reports whether the deal is in a closed-lost stage.
func (d Deal) Lost() bool {
	return isStage(d.Stage, "closedlost", "closed_lost", "lost")
}

// Open reports whether the deal is neither won nor lost.
func (d Deal) Open() bool {
	return !d.Won() && !d.Lost()
}

// Account is synthesized from contacts sharing a company name.
type Account struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Industry       string   `json:"industry,omitempty"`
	Size           string   `json:"size,omitempty"`
	ContactIDs     []string `json:"contactIds"`
	ContactCount   int      `json:"contactCount"`
	DealCount      int      `json:"dealCount"`
	OpenDealCount  int      `json:"openDealCount"`
	WonDealCount   int      `json:"wonDealCount"`
	TotalDealValue float64  `json:"totalDealValue"`
	WonDealValue   float64  `json:"wonDealValue"`
}

// TitleCount is one entry of the job title ranking.
type TitleCount struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// EngagementBreakdown splits an owner's contacts by priority.
type EngagementBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Total returns the number of contacts across all buckets.
func (b EngagementBreakdown) Total() int {
	return b.High + b.Medium + b.Low
}

// IntentBreakdown counts contacts per lead-intent category.
type IntentBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Stats holds every aggregate mapping fed to the dashboard charts.
// It is recomputed wholesale for each data load.
type Stats struct {
	TotalContacts     int                            `json:"totalContacts"`
	ByOwner           map[string]int                 `json:"byOwner"`
	ByLifecycle       map[string]int                 `json:"byLifecycle"`
	TopTitles         []TitleCount                   `json:"topTitles"`
	EngagementByOwner map[string]EngagementBreakdown `json:"engagementByOwner"`
	LeadIntent        IntentBreakdown                `json:"leadIntent"`
}

// Dataset is the complete, self-contained output of one pipeline run.
type Dataset struct {
	Source   string      `json:"source"`
	Contacts []Contact   `json:"contacts"`
	Accounts []Account   `json:"accounts"`
	Deals    []Deal      `json:"deals"`
	Stats    Stats       `json:"stats"`
	Skipped  []FailedRow `json:"skipped,omitempty"`
}
