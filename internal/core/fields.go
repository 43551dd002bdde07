package core

// FieldSpec maps a typed record field to the header spellings that feed it.
// Aliases are matched after NormalizeHeader, so "Job Title" and "job-title"
// both hit "job_title".
type FieldSpec struct {
	Name    string   // Field name on the typed record
	Aliases []string // Normalized header names, in priority order
}

// Contact field specs. HubSpot export names come first.
var (
	contactID        = FieldSpec{Name: "ID", Aliases: []string{"id", "record_id", "contact_id", "hs_object_id", "vid"}}
	contactFirstName = FieldSpec{Name: "FirstName", Aliases: []string{"first_name", "firstname", "given_name"}}
	contactLastName  = FieldSpec{Name: "LastName", Aliases: []string{"last_name", "lastname", "surname", "family_name"}}
	contactFullName  = FieldSpec{Name: "FullName", Aliases: []string{"name", "full_name", "contact_name"}}
	contactEmail     = FieldSpec{Name: "Email", Aliases: []string{"email", "email_address", "e_mail"}}
	contactCompany   = FieldSpec{Name: "Company", Aliases: []string{"company", "company_name", "account", "account_name", "associated_company", "organization"}}
	contactTitle     = FieldSpec{Name: "Title", Aliases: []string{"job_title", "jobtitle", "title", "position", "role"}}
	contactIndustry  = FieldSpec{Name: "Industry", Aliases: []string{"industry", "company_industry"}}
	contactSize      = FieldSpec{Name: "CompanySize", Aliases: []string{"company_size", "size", "employees", "number_of_employees", "numberofemployees"}}
	contactEngage    = FieldSpec{Name: "EngagementScore", Aliases: []string{"engagement_score", "engagement", "hubspotscore", "hubspot_score"}}
	contactIntent    = FieldSpec{Name: "IntentScore", Aliases: []string{"intent_score", "score", "lead_score", "intent"}}
	contactPriority  = FieldSpec{Name: "Priority", Aliases: []string{"priority", "engagement_level", "hs_lead_priority", "lead_priority"}}
	contactStage     = FieldSpec{Name: "LifecycleStage", Aliases: []string{"lifecycle_stage", "lifecyclestage", "stage", "lead_status"}}
	contactOwner     = FieldSpec{Name: "Owner", Aliases: []string{"owner", "contact_owner", "hubspot_owner", "hubspot_owner_id", "owner_name", "sales_rep"}}
	contactSignals   = FieldSpec{Name: "IntentSignals", Aliases: []string{"intent_signals", "signals", "intent_events"}}
)

// Deal field specs.
var (
	dealID      = FieldSpec{Name: "ID", Aliases: []string{"id", "deal_id", "record_id", "hs_object_id"}}
	dealName    = FieldSpec{Name: "Name", Aliases: []string{"deal_name", "dealname", "name"}}
	dealCompany = FieldSpec{Name: "Company", Aliases: []string{"company", "company_name", "associated_company", "account", "account_name"}}
	dealStage   = FieldSpec{Name: "Stage", Aliases: []string{"deal_stage", "dealstage", "stage"}}
	dealAmount  = FieldSpec{Name: "Amount", Aliases: []string{"amount", "deal_amount", "value", "deal_value"}}
	dealClose   = FieldSpec{Name: "CloseDate", Aliases: []string{"close_date", "closedate", "closed_at"}}
)

// ContactFieldSpecs lists every recognized contact column, for templates and docs.
var ContactFieldSpecs = []FieldSpec{
	contactID, contactFirstName, contactLastName, contactFullName, contactEmail,
	contactCompany, contactTitle, contactIndustry, contactSize, contactEngage,
	contactIntent, contactPriority, contactStage, contactOwner, contactSignals,
}

// DealFieldSpecs lists every recognized deal column.
var DealFieldSpecs = []FieldSpec{
	dealID, dealName, dealCompany, dealStage, dealAmount, dealClose,
}

// get reads the field's value from a row.
func (f FieldSpec) get(idx HeaderIndex, row []string) string {
	return idx.Get(row, f.Aliases...)
}

// lookup reads the field's value and reports whether any alias column exists.
func (f FieldSpec) lookup(idx HeaderIndex, row []string) (string, bool) {
	return idx.Lookup(row, f.Aliases...)
}
