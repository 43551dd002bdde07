package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestAnalyze_Demo(t *testing.T) {
	ds := Analyze(SourceDemo, Input{
		Contacts: []byte(demoContactsCSV),
		Deals:    []byte(demoDealsCSV),
	}, Options{})

	if len(ds.Contacts) != 12 {
		t.Fatalf("contacts = %d, want 12", len(ds.Contacts))
	}
	if len(ds.Deals) != 7 {
		t.Errorf("deals = %d, want 7", len(ds.Deals))
	}
	if len(ds.Skipped) != 0 {
		t.Errorf("skipped = %+v, want none", ds.Skipped)
	}

	wantOwners := map[string]int{"Jordan Blake": 4, "Sam Rivera": 3, "Alex Kim": 3, "": 2}
	if !reflect.DeepEqual(ds.Stats.ByOwner, wantOwners) {
		t.Errorf("ByOwner = %v, want %v", ds.Stats.ByOwner, wantOwners)
	}
	if ds.Stats.LeadIntent != (IntentBreakdown{High: 4, Medium: 4, Low: 4}) {
		t.Errorf("LeadIntent = %+v", ds.Stats.LeadIntent)
	}
	if ds.Stats.ByLifecycle[UnknownLifecycleStage] != 1 {
		t.Errorf("ByLifecycle[Unknown] = %d, want 1", ds.Stats.ByLifecycle[UnknownLifecycleStage])
	}
	if ds.Stats.EngagementByOwner["Jordan Blake"] != (EngagementBreakdown{High: 2, Medium: 1, Low: 1}) {
		t.Errorf("EngagementByOwner[Jordan Blake] = %+v", ds.Stats.EngagementByOwner["Jordan Blake"])
	}

	wantTitles := []TitleCount{
		{"Marketing Manager", 3},
		{"VP Marketing", 2},
		{"IT Manager", 2},
		{"Director of Operations", 1},
		{"CEO", 1},
		{"Head of Logistics", 1},
		{"CTO", 1},
		{"Security Engineer", 1},
	}
	if !reflect.DeepEqual(ds.Stats.TopTitles, wantTitles) {
		t.Errorf("TopTitles = %+v\nwant %+v", ds.Stats.TopTitles, wantTitles)
	}

	if len(ds.Accounts) != 6 {
		t.Fatalf("accounts = %d, want 6", len(ds.Accounts))
	}
	byName := make(map[string]Account, len(ds.Accounts))
	for _, a := range ds.Accounts {
		byName[a.Name] = a
	}

	nw := byName["Northwind Labs"]
	if nw.DealCount != 2 || nw.OpenDealCount != 1 || nw.WonDealCount != 1 ||
		nw.TotalDealValue != 60500 || nw.WonDealValue != 12500 {
		t.Errorf("Northwind Labs = %+v", nw)
	}
	if c := byName["Cobalt Security"]; c.TotalDealValue != 70000 || c.WonDealValue != 6000 {
		t.Errorf("Cobalt Security = %+v", c)
	}
	if a := byName["Atlas Freight"]; a.DealCount != 1 || a.OpenDealCount != 0 || a.WonDealCount != 0 || a.TotalDealValue != 22000 {
		t.Errorf("Atlas Freight = %+v", a)
	}
	if b := byName["Brightpath Learning"]; b.DealCount != 0 || b.ContactCount != 2 {
		t.Errorf("Brightpath Learning = %+v", b)
	}

	signals := ds.Contacts[0].IntentSignals
	if len(signals) != 2 || signals[1].Type != "demo_request" || signals[1].Strength != 20 {
		t.Errorf("contact 1001 signals = %+v", signals)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	in := Input{Contacts: []byte(demoContactsCSV), Deals: []byte(demoDealsCSV)}

	first, err := json.Marshal(Analyze(SourceCSV, in, Options{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(Analyze(SourceCSV, in, Options{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("two runs over the same input produced different output")
	}
}

func TestAnalyze_HeaderOnly(t *testing.T) {
	ds := Analyze(SourceCSV, Input{Contacts: []byte("Email,Owner\n")}, Options{})

	if ds.Contacts == nil || len(ds.Contacts) != 0 {
		t.Errorf("Contacts = %#v, want empty non-nil", ds.Contacts)
	}
	if ds.Accounts == nil || len(ds.Accounts) != 0 {
		t.Errorf("Accounts = %#v, want empty non-nil", ds.Accounts)
	}
	if ds.Deals == nil || len(ds.Deals) != 0 {
		t.Errorf("Deals = %#v, want empty non-nil", ds.Deals)
	}
	if ds.Stats.TotalContacts != 0 || len(ds.Stats.ByOwner) != 0 || len(ds.Stats.TopTitles) != 0 {
		t.Errorf("Stats = %+v, want empty", ds.Stats)
	}

	out, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Contains(out, []byte(`"contacts":[]`)) || !bytes.Contains(out, []byte(`"topTitles":[]`)) {
		t.Errorf("empty collections should encode as [], got %s", out)
	}
}

func TestAnalyze_SkippedRowsLabeled(t *testing.T) {
	ds := Analyze(SourceCSV, Input{
		Contacts: []byte("Email,Owner\na@x.io,Sam\nbroken\n"),
		Deals:    []byte("Deal Name,Amount\nX,1,2\n"),
	}, Options{})

	if len(ds.Contacts) != 1 {
		t.Errorf("contacts = %d, want 1", len(ds.Contacts))
	}
	if len(ds.Skipped) != 2 {
		t.Fatalf("skipped = %+v, want 2", ds.Skipped)
	}
	if ds.Skipped[0].File != FileContacts || ds.Skipped[0].LineNumber != 3 {
		t.Errorf("skipped[0] = %+v", ds.Skipped[0])
	}
	if ds.Skipped[1].File != FileDeals || ds.Skipped[1].LineNumber != 2 {
		t.Errorf("skipped[1] = %+v", ds.Skipped[1])
	}
}

func TestAnalyze_TopTitlesOption(t *testing.T) {
	in := Input{Contacts: []byte(demoContactsCSV)}

	if got := Analyze(SourceCSV, in, Options{TopTitles: 3}).Stats.TopTitles; len(got) != 3 {
		t.Errorf("TopTitles: 3 gave %d entries", len(got))
	}
	if got := Analyze(SourceCSV, in, Options{TopTitles: -1}).Stats.TopTitles; len(got) != 8 {
		t.Errorf("TopTitles: -1 gave %d entries, want all 8", len(got))
	}
}

func TestSources(t *testing.T) {
	ctx := context.Background()

	demo, err := SourceByName(SourceDemo, Options{})
	if err != nil {
		t.Fatalf("SourceByName(demo): %v", err)
	}
	ds, err := demo.Load(ctx)
	if err != nil {
		t.Fatalf("demo.Load: %v", err)
	}
	if ds.Source != SourceDemo || len(ds.Contacts) != 12 {
		t.Errorf("demo dataset source=%q contacts=%d", ds.Source, len(ds.Contacts))
	}

	csv := CSVSource{Contacts: []byte("Email\na@x.io\n")}
	if csv.Name() != SourceCSV {
		t.Errorf("Name() = %q", csv.Name())
	}
	ds, err = csv.Load(ctx)
	if err != nil || len(ds.Contacts) != 1 {
		t.Errorf("csv.Load = %d contacts, %v", len(ds.Contacts), err)
	}

	if _, err := SourceByName("hubspot", Options{}); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("SourceByName(hubspot) error = %v, want ErrUnknownSource", err)
	}
}

func TestSources_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (DemoSource{}).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("DemoSource.Load error = %v, want context.Canceled", err)
	}
	if _, err := (CSVSource{}).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("CSVSource.Load error = %v, want context.Canceled", err)
	}
}
