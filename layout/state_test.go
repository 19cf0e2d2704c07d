package layout

import "testing"

func TestDecodeState(t *testing.T) {
	p := Programmed
	e := ErasedWord

	tests := []struct {
		name   string
		header [HeaderWords]uint64
		want   PageState
	}{
		{"erased", [HeaderWords]uint64{e, e, e, e}, StateErased},
		{"receive", [HeaderWords]uint64{p, e, e, e}, StateReceive},
		{"active from receive", [HeaderWords]uint64{p, p, e, e}, StateActive},
		{"active after format", [HeaderWords]uint64{e, p, e, e}, StateActive},
		{"valid", [HeaderWords]uint64{e, p, p, e}, StateValid},
		{"erasing", [HeaderWords]uint64{p, p, p, p}, StateErasing},
		{"erasing only", [HeaderWords]uint64{e, e, e, p}, StateErasing},
		{"torn word counts as set", [HeaderWords]uint64{p, 0xFFFFFFFFAAAAAAAA, e, e}, StateActive},
		{"torn first word", [HeaderWords]uint64{0xFFFFFFFFAAAAAAAA, e, e, e}, StateReceive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeState(tt.header); got != tt.want {
				t.Errorf("DecodeState() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeaderWordOffset(t *testing.T) {
	tests := []struct {
		state PageState
		want  int
	}{
		{StateErased, -1},
		{StateReceive, 0},
		{StateActive, 8},
		{StateValid, 16},
		{StateErasing, 24},
		{PageState(9), -1},
	}

	for _, tt := range tests {
		if got := HeaderWordOffset(tt.state); got != tt.want {
			t.Errorf("HeaderWordOffset(%v) = %d, want %d", tt.state, got, tt.want)
		}
	}
}

func TestPageStateString(t *testing.T) {
	if StateValid.String() != "VALID" {
		t.Errorf("String() = %q", StateValid.String())
	}
	if PageState(7).String() != "STATE(7)" {
		t.Errorf("String() = %q", PageState(7).String())
	}
	if !StateReceive.IsWritable() || !StateActive.IsWritable() || StateValid.IsWritable() {
		t.Error("IsWritable() mismatch")
	}
}
