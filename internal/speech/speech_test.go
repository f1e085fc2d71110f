package speech

import (
	"errors"
	"strings"
	"testing"

	"vtask/internal/apierr"
)

func TestFormatError_NamesOperation(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{apierr.New(apierr.KindNetwork, "op", errors.New("refused")), "trouble reaching"},
		{apierr.New(apierr.KindTimeout, "op", nil), "took too long"},
		{apierr.FromStatus("op", 500), "had a problem"},
		{apierr.FromStatus("op", 404), "couldn't find"},
		{apierr.FromStatus("op", 400), "wasn't accepted"},
		{errors.New("mystery"), "Something went wrong"},
	}
	for _, tt := range tests {
		got := FormatError(tt.err, "creating your task")
		if !strings.Contains(got, tt.want) {
			t.Errorf("FormatError(%v) = %q, want substring %q", tt.err, got, tt.want)
		}
		if !strings.Contains(got, "creating your task") {
			t.Errorf("FormatError(%v) = %q, does not name the operation", tt.err, got)
		}
	}
}

func TestCountTasks(t *testing.T) {
	tests := []struct {
		n        int
		filtered bool
		want     string
	}{
		{0, false, "You have no tasks."},
		{1, false, "You have 1 task."},
		{3, false, "You have 3 tasks."},
		{0, true, "I didn't find any matching tasks."},
		{1, true, "I found 1 matching task."},
		{2, true, "I found 2 matching tasks."},
	}
	for _, tt := range tests {
		if got := CountTasks(tt.n, tt.filtered); got != tt.want {
			t.Errorf("CountTasks(%d, %v) = %q, want %q", tt.n, tt.filtered, got, tt.want)
		}
	}
}
