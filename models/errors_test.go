package models

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestAuditError_MessageCarriesCodeAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewAuditError(ErrCodeSession, "connecting to browser", cause)

	msg := err.Error()
	for _, want := range []string{ErrCodeSession, "connecting to browser", "connection refused"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}

	withoutCause := NewAuditError(ErrCodeRender, "writing report", nil)
	if strings.Contains(withoutCause.Error(), "<nil>") {
		t.Errorf("nil cause must not leak into the message: %q", withoutCause.Error())
	}
}

func TestAuditError_UnwrapsToTheCause(t *testing.T) {
	err := NewAuditError(ErrCodeTimeout, "probe deadline", context.DeadlineExceeded)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("errors.Is must see through the wrapper")
	}

	var ae *AuditError
	if !errors.As(error(err), &ae) || ae.Code != ErrCodeTimeout {
		t.Error("errors.As must recover the typed error")
	}
}
