package core

import (
	"reflect"
	"testing"
)

func TestAggregate_IntentScenario(t *testing.T) {
	contacts := []Contact{
		{IntentScore: 25},
		{IntentScore: 15},
		{IntentScore: 5},
	}

	got := Aggregate(contacts, DefaultTopTitles)

	want := IntentBreakdown{High: 1, Medium: 1, Low: 1}
	if got.LeadIntent != want {
		t.Errorf("LeadIntent = %+v, want %+v", got.LeadIntent, want)
	}
}

func TestIntentCategory_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Priority
	}{
		{-1, PriorityLow},
		{0, PriorityLow},
		{9, PriorityLow},
		{10, PriorityMedium},
		{19, PriorityMedium},
		{20, PriorityHigh},
		{100, PriorityHigh},
	}

	for _, tt := range tests {
		if got := IntentCategory(tt.score); got != tt.want {
			t.Errorf("IntentCategory(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestAggregate_EmptyOwnerIsRawKey(t *testing.T) {
	contacts := []Contact{
		{Owner: "", Priority: PriorityHigh},
		{Owner: "Sam", Priority: PriorityLow},
		{Owner: "", Priority: PriorityMedium},
	}

	got := Aggregate(contacts, DefaultTopTitles)

	if got.ByOwner[""] != 2 {
		t.Errorf(`ByOwner[""] = %d, want 2`, got.ByOwner[""])
	}
	if _, ok := got.ByOwner[UnassignedOwner]; ok {
		t.Errorf("ByOwner should not contain the %q display label", UnassignedOwner)
	}
	if got.EngagementByOwner[""] != (EngagementBreakdown{High: 1, Medium: 1}) {
		t.Errorf(`EngagementByOwner[""] = %+v`, got.EngagementByOwner[""])
	}
}

func TestAggregate_Invariants(t *testing.T) {
	contacts := NormalizeContacts(Tokenize(demoContactsCSV))
	got := Aggregate(contacts, DefaultTopTitles)

	sum := func(m map[string]int) int {
		n := 0
		for _, v := range m {
			n += v
		}
		return n
	}

	if got.TotalContacts != len(contacts) {
		t.Errorf("TotalContacts = %d, want %d", got.TotalContacts, len(contacts))
	}
	if s := sum(got.ByOwner); s != len(contacts) {
		t.Errorf("sum(ByOwner) = %d, want %d", s, len(contacts))
	}
	if s := sum(got.ByLifecycle); s != len(contacts) {
		t.Errorf("sum(ByLifecycle) = %d, want %d", s, len(contacts))
	}
	li := got.LeadIntent
	if li.High+li.Medium+li.Low != len(contacts) {
		t.Errorf("LeadIntent total = %d, want %d", li.High+li.Medium+li.Low, len(contacts))
	}
	for owner, b := range got.EngagementByOwner {
		if b.Total() != got.ByOwner[owner] {
			t.Errorf("EngagementByOwner[%q].Total() = %d, ByOwner = %d", owner, b.Total(), got.ByOwner[owner])
		}
	}
	if len(got.TopTitles) > DefaultTopTitles {
		t.Errorf("len(TopTitles) = %d, exceeds %d", len(got.TopTitles), DefaultTopTitles)
	}
	for i := 1; i < len(got.TopTitles); i++ {
		if got.TopTitles[i].Count > got.TopTitles[i-1].Count {
			t.Errorf("TopTitles not descending at %d: %+v", i, got.TopTitles)
		}
	}
}

func TestAggregate_TopTitles(t *testing.T) {
	contacts := []Contact{
		{Title: "CTO"},
		{Title: "CEO"},
		{Title: "VP Sales"},
		{Title: "CEO"},
		{Title: ""},
		{Title: "VP Sales"},
		{Title: "Engineer"},
	}

	tests := []struct {
		name string
		n    int
		want []TitleCount
	}{
		{
			name: "ties keep first-encountered order",
			n:    10,
			want: []TitleCount{{"CEO", 2}, {"VP Sales", 2}, {"CTO", 1}, {"Engineer", 1}},
		},
		{
			name: "truncated",
			n:    2,
			want: []TitleCount{{"CEO", 2}, {"VP Sales", 2}},
		},
		{
			name: "non-positive returns all",
			n:    0,
			want: []TitleCount{{"CEO", 2}, {"VP Sales", 2}, {"CTO", 1}, {"Engineer", 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(contacts, tt.n).TopTitles
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopTitles = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil, DefaultTopTitles)

	if got.TotalContacts != 0 {
		t.Errorf("TotalContacts = %d", got.TotalContacts)
	}
	if got.ByOwner == nil || got.ByLifecycle == nil || got.EngagementByOwner == nil {
		t.Error("mappings must be empty, not nil")
	}
	if got.TopTitles == nil || len(got.TopTitles) != 0 {
		t.Errorf("TopTitles = %#v, want empty non-nil", got.TopTitles)
	}
}

func TestShare(t *testing.T) {
	tests := []struct {
		count, total int
		want         float64
	}{
		{1, 4, 25},
		{0, 10, 0},
		{3, 0, 0},
		{5, 5, 100},
	}

	for _, tt := range tests {
		if got := Share(tt.count, tt.total); got != tt.want {
			t.Errorf("Share(%d, %d) = %v, want %v", tt.count, tt.total, got, tt.want)
		}
	}
}
