package core

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// recordNamespace seeds deterministic UUIDv5 ids for rows without an id column.
var recordNamespace = uuid.MustParse("6f1c2a5e-3b8d-4f0a-9c71-2d4e8b9a0c13")

// NormalizeContacts maps tokenized rows to Contacts, one per data row.
// Unknown columns are ignored and missing fields get their zero value,
// except LifecycleStage which defaults to UnknownLifecycleStage.
func NormalizeContacts(t Tokenized) []Contact {
	rows := t.DataRows()
	contacts := make([]Contact, 0, len(rows))
	if len(rows) == 0 {
		return contacts
	}

	idx := MakeHeaderIndex(t.Header())
	for i, row := range rows {
		contacts = append(contacts, normalizeContact(idx, row, i))
	}
	return contacts
}

func normalizeContact(idx HeaderIndex, row RawRow, ordinal int) Contact {
	c := Contact{
		ID:              contactID.get(idx, row),
		FirstName:       contactFirstName.get(idx, row),
		LastName:        contactLastName.get(idx, row),
		Email:           contactEmail.get(idx, row),
		Company:         contactCompany.get(idx, row),
		Title:           contactTitle.get(idx, row),
		Industry:        contactIndustry.get(idx, row),
		CompanySize:     contactSize.get(idx, row),
		EngagementScore: ParseInt(contactEngage.get(idx, row)),
		IntentScore:     ParseInt(contactIntent.get(idx, row)),
		Priority:        ParsePriority(contactPriority.get(idx, row)),
		LifecycleStage:  contactStage.get(idx, row),
		Owner:           contactOwner.get(idx, row),
		IntentSignals:   ParseIntentSignals(contactSignals.get(idx, row)),
	}

	if c.FirstName == "" && c.LastName == "" {
		if full, ok := contactFullName.lookup(idx, row); ok {
			c.FirstName, c.LastName = splitName(full)
		}
	}
	if c.LifecycleStage == "" {
		c.LifecycleStage = UnknownLifecycleStage
	}
	if c.ID == "" {
		c.ID = rowID("contact", ordinal, row)
	}

	return c
}

// NormalizeDeals maps tokenized rows to Deals, one per data row.
func NormalizeDeals(t Tokenized) []Deal {
	rows := t.DataRows()
	deals := make([]Deal, 0, len(rows))
	if len(rows) == 0 {
		return deals
	}

	idx := MakeHeaderIndex(t.Header())
	for i, row := range rows {
		d := Deal{
			ID:        dealID.get(idx, row),
			Name:      dealName.get(idx, row),
			Company:   dealCompany.get(idx, row),
			Stage:     dealStage.get(idx, row),
			Amount:    ParseAmount(dealAmount.get(idx, row)),
			CloseDate: ParseDate(dealClose.get(idx, row)),
		}
		if d.ID == "" {
			d.ID = rowID("deal", i, row)
		}
		deals = append(deals, d)
	}
	return deals
}

// ParseIntentSignals parses a signals cell.
//
// Entries are separated by ";" and each entry is "type|timestamp|strength".
// "type|strength" and a bare "type" are also accepted. Entries without a
// type are dropped.
func ParseIntentSignals(cell string) []IntentSignal {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}

	var signals []IntentSignal
	for _, entry := range strings.Split(cell, ";") {
		parts := strings.Split(entry, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if parts[0] == "" {
			continue
		}

		s := IntentSignal{Type: parts[0]}
		switch len(parts) {
		case 1:
		case 2:
			s.Strength = ParseInt(parts[1])
		default:
			s.OccurredAt = ParseDate(parts[1])
			s.Strength = ParseInt(parts[2])
		}
		signals = append(signals, s)
	}
	return signals
}

// splitName splits "Ada Lovelace" into first and last name at the first space.
func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	first, last, _ := strings.Cut(full, " ")
	return first, strings.TrimSpace(last)
}

// rowID derives a stable id from the record kind, row ordinal and contents.
func rowID(kind string, ordinal int, row RawRow) string {
	var b strings.Builder
	b.WriteString(kind)
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(ordinal))
	for _, f := range row {
		b.WriteByte(0)
		b.WriteString(f)
	}
	return uuid.NewSHA1(recordNamespace, []byte(b.String())).String()
}
