package plan

import (
	"testing"

	"github.com/discochess/chessboard/internal/fen"
	"github.com/discochess/chessboard/position"
)

// BenchmarkPlan_SingleMove measures the common case of one piece moving.
func BenchmarkPlan_SingleMove(b *testing.B) {
	from, _ := fen.Decode(fen.Start)
	to, _ := fen.Decode("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Plan(from, to)
	}
}

// BenchmarkPlan_FullReset measures a board of 32 pieces being cleared.
func BenchmarkPlan_FullReset(b *testing.B) {
	from, _ := fen.Decode(fen.Start)
	to := position.Position{}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Plan(from, to)
	}
}

// BenchmarkPlan_Scramble measures every piece looking for a new square.
func BenchmarkPlan_Scramble(b *testing.B) {
	from, _ := fen.Decode(fen.Start)
	to, _ := fen.Decode("PPPPPPPP/RNBQKBNR/8/8/8/8/rnbqkbnr/pppppppp")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Plan(from, to)
	}
}
