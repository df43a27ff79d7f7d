package nulldisplay

import (
	"testing"

	"github.com/user/framescope/pkg/ports"
)

func TestSink(t *testing.T) {
	var sink ports.DisplaySink = New()
	sink.Show([]byte{1, 2, 3})
	sink.Show(nil)

	toggle, ok := sink.(ports.Toggleable)
	if !ok {
		t.Fatal("nulldisplay should implement ports.Toggleable")
	}
	if toggle.Enabled() {
		t.Error("nulldisplay should report itself disabled")
	}
}
