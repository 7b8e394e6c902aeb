package chessboard

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/discochess/chessboard/position"
)

func TestDecodeFEN_Invalid(t *testing.T) {
	for _, text := range []string{
		"",
		"   ",
		"8/8/8/8/8/8/8",
		"anbqkbnr/8/8/8/8/8/PPPPPPPP/8x",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN",
	} {
		if _, err := DecodeFEN(text); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("DecodeFEN(%q) error = %v, want ErrInvalidNotation", text, err)
		}
		if ValidFEN(text) {
			t.Errorf("ValidFEN(%q) = true", text)
		}
	}
}

func TestStartPosition(t *testing.T) {
	p := StartPosition()
	if p.Count() != 32 {
		t.Fatalf("StartPosition() has %d pieces, want 32", p.Count())
	}
	delete(p, position.E1)
	if StartPosition().Count() != 32 {
		t.Error("StartPosition() returned shared storage")
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in       string
		from, to position.Square
		wantErr  bool
	}{
		{"e2-e4", position.E2, position.E4, false},
		{"a1-h8", position.A1, position.H8, false},
		{"e2e4", 0, 0, true},
		{"e2-", 0, 0, true},
		{"e9-e4", 0, 0, true},
		{"E2-E4", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			from, to, err := ParseMove(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMove(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidMove) {
					t.Errorf("ParseMove(%q) error = %v, want ErrInvalidMove", tt.in, err)
				}
				return
			}
			if from != tt.from || to != tt.to {
				t.Errorf("ParseMove(%q) = %v, %v; want %v, %v", tt.in, from, to, tt.from, tt.to)
			}
		})
	}
}

func TestPlan_Public(t *testing.T) {
	from := StartPosition()
	to, err := DecodeFEN("rnbqkbnr/pppppppp/8/8/8/2N5/PPPPPPPP/R1BQKBNR")
	if err != nil {
		t.Fatalf("DecodeFEN() error = %v", err)
	}

	want := []Transition{{Kind: TransitionMove, Source: position.B1, Destination: position.C3, Piece: position.WhiteKnight}}
	if diff := cmp.Diff(want, Plan(from, to)); diff != "" {
		t.Errorf("Plan() mismatch (-want +got):\n%s", diff)
	}
	if got := Plan(from, from.Clone()); len(got) != 0 {
		t.Errorf("Plan(p, p) = %v, want empty", got)
	}
}

func TestTransition_JSON(t *testing.T) {
	tests := []struct {
		t    Transition
		want string
	}{
		{
			Transition{Kind: TransitionMove, Source: position.B1, Destination: position.C3, Piece: position.WhiteKnight},
			`{"kind":"move","source":"b1","destination":"c3","piece":"wN"}`,
		},
		{
			Transition{Kind: TransitionAdd, Destination: position.E4, Piece: position.WhitePawn},
			`{"kind":"add","destination":"e4","piece":"wP"}`,
		},
		{
			Transition{Kind: TransitionClear, Source: position.E7, Piece: position.BlackPawn},
			`{"kind":"clear","source":"e7","piece":"bP"}`,
		},
	}

	for _, tt := range tests {
		got, err := json.Marshal(tt.t)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.t, got, tt.want)
		}
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		in   string
		want Location
	}{
		{"offboard", OffBoard},
		{"spare", Spare},
		{"e4", At(position.E4)},
	}
	for _, tt := range tests {
		got, err := ParseLocation(tt.in)
		if err != nil {
			t.Fatalf("ParseLocation(%q) error = %v", tt.in, err)
		}
		if got != tt.want || got.String() != tt.in {
			t.Errorf("ParseLocation(%q) = %v", tt.in, got)
		}
	}
	if _, err := ParseLocation("z9"); !errors.Is(err, position.ErrInvalidSquare) {
		t.Errorf("ParseLocation(z9) error = %v, want ErrInvalidSquare", err)
	}
	if OffBoard.OnBoard() || Spare.OnBoard() || !At(position.H8).OnBoard() {
		t.Error("OnBoard() misclassifies locations")
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 10, Height: 10}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 10, true},
		{19.99, 19.99, true},
		{20, 15, false},
		{15, 20, false},
		{9.99, 15, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
