package protocol

import "testing"

func TestDirection(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		sign float64
	}{
		{"none holds", DirNone, 0},
		{"up decreases y", DirUp, -1},
		{"down increases y", DirDown, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dir.Sign(); got != tt.sign {
				t.Errorf("expected sign %v, got %v", tt.sign, got)
			}
		})
	}
}

func TestSide(t *testing.T) {
	if SideLeft.Opposite() != SideRight || SideRight.Opposite() != SideLeft {
		t.Error("Opposite must swap sides")
	}
	if SideLeft.String() != "left" || SideRight.String() != "right" {
		t.Errorf("unexpected names %s %s", SideLeft, SideRight)
	}
}

func TestIntents(t *testing.T) {
	if got := KeyIntent(DirNone); got != (Intent{}) {
		t.Errorf("no direction must be the idle intent, got %+v", got)
	}
	if got := KeyIntent(DirUp); got.Source != SourceKeys || got.Direction != DirUp {
		t.Errorf("unexpected key intent %+v", got)
	}
	if got := PointerIntent(0.25); got.Source != SourcePointer || got.TargetY != 0.25 {
		t.Errorf("unexpected pointer intent %+v", got)
	}
	if got := TouchIntent(0.75); got.Source != SourceTouch || got.TargetY != 0.75 {
		t.Errorf("unexpected touch intent %+v", got)
	}
}

func TestEventKind_String(t *testing.T) {
	if EventContinueOffered.String() != "continue-offered" {
		t.Errorf("got %s", EventContinueOffered)
	}
	if EventKind(99).String() != "unknown" {
		t.Errorf("got %s", EventKind(99))
	}
}

func TestSnapshot_Has(t *testing.T) {
	s := Snapshot{Events: []Event{{Kind: EventWall}, {Kind: EventScore, Side: SideLeft}}}
	if !s.Has(EventScore) {
		t.Error("expected score event")
	}
	if s.Has(EventWin) {
		t.Error("unexpected win event")
	}
}
