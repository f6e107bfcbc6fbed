package notify

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDiscard(t *testing.T) {
	if err := (Discard{}).Notify(context.Background(), "subject", "body"); err != nil {
		t.Errorf("Notify() error = %v, want nil", err)
	}
}

func TestLogWritesAlert(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	n := Log{Logger: zap.New(core)}

	if err := n.Notify(context.Background(), "no workbook for Öberg", "row 5"); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	entries := logs.FilterMessage("routing alert").All()
	if len(entries) != 1 {
		t.Fatalf("alert entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["subject"] != "no workbook for Öberg" {
		t.Errorf("subject field = %v, want alert subject", fields["subject"])
	}
	if fields["body"] != "row 5" {
		t.Errorf("body field = %v, want alert body", fields["body"])
	}
}

func TestLogWithoutLogger(t *testing.T) {
	if err := (Log{}).Notify(context.Background(), "s", "b"); err != nil {
		t.Errorf("Notify() error = %v, want nil", err)
	}
}

func TestMailerRejectsBadAddresses(t *testing.T) {
	m := Mailer{Host: "mail.campus.edu", From: "not an address", To: "office@campus.edu"}
	if err := m.Notify(context.Background(), "s", "b"); err == nil {
		t.Error("Notify() error = nil, want sender address error")
	}

	m = Mailer{Host: "mail.campus.edu", From: "garrison@campus.edu", To: ""}
	if err := m.Notify(context.Background(), "s", "b"); err == nil {
		t.Error("Notify() error = nil, want recipient address error")
	}
}
