//go:build !windows

package sys

import (
	"testing"

	"src.treesh.dev/pkg/testutil"
)

func TestTTY(t *testing.T) {
	_, tty := testutil.OpenPty(t, 100, 30)
	if !IsATTY(tty.Fd()) {
		t.Errorf("IsATTY(tty) = false")
	}
	if w := TermWidth(tty); w != 100 {
		t.Errorf("TermWidth(tty) = %d, want 100", w)
	}
}
