package apierr

import (
	"errors"
	"fmt"
	"testing"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
	}{
		{500, KindServer},
		{503, KindServer},
		{400, KindClient},
		{404, KindClient},
		{302, KindUnknown},
	}
	for _, tt := range tests {
		e := FromStatus("op", tt.status)
		if e.Kind != tt.kind {
			t.Errorf("FromStatus(%d).Kind = %v, want %v", tt.status, e.Kind, tt.kind)
		}
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(KindNetwork, "op", errors.New("refused")), true},
		{New(KindTimeout, "op", nil), true},
		{FromStatus("op", 500), true},
		{FromStatus("op", 404), false},
		{FromStatus("op", 400), false},
		{errors.New("untagged"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := Retryable(tt.err); got != tt.want {
			t.Errorf("Retryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(KindTimeout, "op", nil))
	if KindOf(err) != KindTimeout {
		t.Errorf("KindOf(wrapped) = %v, want timeout", KindOf(err))
	}
}

func TestError_StatusMessage(t *testing.T) {
	e := FromStatus("list tasks", 502)
	if got := e.Error(); got != "list tasks: status 502" {
		t.Errorf("Error() = %q", got)
	}
}
