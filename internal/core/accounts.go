package core

import "github.com/google/uuid"

// BuildAccounts groups contacts by company name and folds in deal metrics.
//
// Company names match exactly (case-sensitive). Contacts without a company do
// not produce an account, and deals whose company has no contacts are ignored.
// Accounts are returned in first-encountered order. The result is never nil.
func BuildAccounts(contacts []Contact, deals []Deal) []Account {
	accounts := make([]Account, 0)
	pos := make(map[string]int)

	for _, c := range contacts {
		if c.Company == "" {
			continue
		}
		i, ok := pos[c.Company]
		if !ok {
			i = len(accounts)
			pos[c.Company] = i
			accounts = append(accounts, Account{
				ID:         AccountID(c.Company),
				Name:       c.Company,
				ContactIDs: make([]string, 0, 1),
			})
		}

		a := &accounts[i]
		a.ContactIDs = append(a.ContactIDs, c.ID)
		a.ContactCount++
		if a.Industry == "" {
			a.Industry = c.Industry
		}
		if a.Size == "" {
			a.Size = c.CompanySize
		}
	}

	for _, d := range deals {
		i, ok := pos[d.Company]
		if !ok {
			continue
		}
		a := &accounts[i]
		a.DealCount++
		a.TotalDealValue += d.Amount
		switch {
		case d.Won():
			a.WonDealCount++
			a.WonDealValue += d.Amount
		case d.Open():
			a.OpenDealCount++
		}
	}

	return accounts
}

// AccountID returns the stable id for a company name.
func AccountID(company string) string {
	return uuid.NewSHA1(recordNamespace, []byte("account\x00"+company)).String()
}
