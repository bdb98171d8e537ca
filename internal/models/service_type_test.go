package models

import (
	"errors"
	"testing"
)

func TestQuorum(t *testing.T) {
	tests := []struct {
		serviceType ServiceType
		want        int
		wantErr     bool
	}{
		{Netflix, 2, false},
		{Wavve, 3, false},
		{Tving, 3, false},
		{ServiceType("DISNEY"), 0, true},
		{ServiceType(""), 0, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.serviceType), func(t *testing.T) {
			got, err := Quorum(tt.serviceType)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedServiceType) {
					t.Fatalf("Quorum(%q) error = %v, want ErrUnsupportedServiceType", tt.serviceType, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Quorum(%q) unexpected error: %v", tt.serviceType, err)
			}
			if got != tt.want {
				t.Errorf("Quorum(%q) = %d, want %d", tt.serviceType, got, tt.want)
			}
		})
	}
}

func TestGroupSize(t *testing.T) {
	size, err := GroupSize(Netflix)
	if err != nil {
		t.Fatalf("GroupSize failed: %v", err)
	}
	if size != 3 {
		t.Errorf("expected NETFLIX group size 3, got %d", size)
	}
}

func TestParseServiceType(t *testing.T) {
	got, err := ParseServiceType(" tving ")
	if err != nil {
		t.Fatalf("ParseServiceType failed: %v", err)
	}
	if got != Tving {
		t.Errorf("expected TVING, got %q", got)
	}

	if _, err := ParseServiceType("hulu"); !errors.Is(err, ErrUnsupportedServiceType) {
		t.Errorf("expected ErrUnsupportedServiceType, got %v", err)
	}
}

func TestServiceTypesStableOrder(t *testing.T) {
	types := ServiceTypes()
	want := []ServiceType{Netflix, Tving, Wavve}
	if len(types) != len(want) {
		t.Fatalf("expected %d service types, got %d", len(want), len(types))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], types[i])
		}
	}
}

func TestOutcomeMessage(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{Outcome{Status: OutcomeFormed, Room: &Room{ID: "r1"}}, "Room created successfully."},
		{Outcome{Status: OutcomeIncompleteNonLeaders}, "group incomplete (non-leaders)"},
		{Outcome{Status: OutcomeIncompleteNoLeader}, "group incomplete (no leader)"},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.Status.String(), func(t *testing.T) {
			if got := tt.outcome.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSharingGroupLeaderLast(t *testing.T) {
	g := &SharingGroup{
		ServiceType: Netflix,
		Leader:      WaitingEntry{ID: 7, UserID: 70, Leader: true},
		Members: []WaitingEntry{
			{ID: 3, UserID: 30},
			{ID: 5, UserID: 50},
		},
	}

	ids := g.EntryIDs()
	if len(ids) != 3 || ids[2] != 7 {
		t.Errorf("expected leader entry last, got %v", ids)
	}
	users := g.UserIDs()
	if users[0] != 30 || users[1] != 50 || users[2] != 70 {
		t.Errorf("unexpected user IDs: %v", users)
	}
}
