package core

// pipeline.go wires the tokenizer, normalizer and aggregator together.
//
// The pipeline is synchronous and holds no state between calls: the same input
// bytes always produce the same Dataset. Callers own the result and decide
// whether to keep, render or save it.

// File labels used in FailedRow.File.
const (
	FileContacts = "contacts"
	FileDeals    = "deals"
)

// Options tunes aggregation output.
type Options struct {
	// TopTitles caps the job title ranking. Zero uses DefaultTopTitles;
	// a negative value returns every title.
	TopTitles int
}

func (o Options) topTitles() int {
	if o.TopTitles == 0 {
		return DefaultTopTitles
	}
	return o.TopTitles
}

// Input is the raw content of one upload session.
type Input struct {
	Contacts []byte
	Deals    []byte // optional
}

// Analyze runs the full pipeline over raw file content.
//
// Empty or undecodable files yield zero records, not an error. Dropped rows are
// reported in Dataset.Skipped.
func Analyze(source string, in Input, opts Options) Dataset {
	contactRows := TokenizeBytes(in.Contacts)
	contacts := NormalizeContacts(contactRows)

	deals := make([]Deal, 0)
	var dealRows Tokenized
	if len(in.Deals) > 0 {
		dealRows = TokenizeBytes(in.Deals)
		deals = NormalizeDeals(dealRows)
	}

	ds := Dataset{
		Source:   source,
		Contacts: contacts,
		Accounts: BuildAccounts(contacts, deals),
		Deals:    deals,
		Stats:    Aggregate(contacts, opts.topTitles()),
	}
	ds.Skipped = append(ds.Skipped, labelSkipped(FileContacts, contactRows.Skipped)...)
	ds.Skipped = append(ds.Skipped, labelSkipped(FileDeals, dealRows.Skipped)...)

	return ds
}

func labelSkipped(file string, rows []FailedRow) []FailedRow {
	out := make([]FailedRow, len(rows))
	for i, r := range rows {
		r.File = file
		out[i] = r
	}
	return out
}
