package entity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCanTransition(t *testing.T) {
	statuses := []SessionStatus{
		SessionStatusScheduled,
		SessionStatusCompleted,
		SessionStatusCancelled,
		SessionStatusNoShow,
	}

	allowed := map[[2]SessionStatus]bool{
		{SessionStatusScheduled, SessionStatusCompleted}: true,
		{SessionStatusScheduled, SessionStatusCancelled}: true,
		{SessionStatusScheduled, SessionStatusNoShow}:    true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]SessionStatus{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	if CanTransition("bogus", SessionStatusCompleted) {
		t.Error("expected transition from unknown status to be rejected")
	}
	if CanTransition(SessionStatusScheduled, "bogus") {
		t.Error("expected transition to unknown status to be rejected")
	}
}

func TestSessionStatusValid(t *testing.T) {
	for _, s := range []SessionStatus{SessionStatusScheduled, SessionStatusCompleted, SessionStatusCancelled, SessionStatusNoShow} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if SessionStatus("archived").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestSessionStatusIsTerminal(t *testing.T) {
	if SessionStatusScheduled.IsTerminal() {
		t.Error("scheduled must not be terminal")
	}
	for _, s := range []SessionStatus{SessionStatusCompleted, SessionStatusCancelled, SessionStatusNoShow} {
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	if SessionStatus("bogus").IsTerminal() {
		t.Error("unknown status must not report terminal")
	}
}

func TestSessionEditable(t *testing.T) {
	session := &Session{Status: SessionStatusScheduled, Price: decimal.NewFromInt(100)}
	if !session.Editable() {
		t.Error("scheduled session must be editable")
	}

	for _, s := range []SessionStatus{SessionStatusCompleted, SessionStatusCancelled, SessionStatusNoShow} {
		session.Status = s
		if session.Editable() {
			t.Errorf("session in %s state must be frozen", s)
		}
	}
}
