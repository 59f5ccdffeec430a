// ABOUTME: Tests for sparkline and badge widgets
// ABOUTME: Checks block scaling, year labels, and feasibility badge text

package widgets

import (
	"strings"
	"testing"
)

func TestSparkline_ScalesToRange(t *testing.T) {
	out := Sparkline([]float64{0, 50, 100}, 3, "")

	runes := []rune(out)
	if len(runes) != 3 {
		t.Fatalf("expected 3 blocks, got %d (%q)", len(runes), out)
	}
	if runes[0] != SparklineBlocks[0] {
		t.Errorf("expected lowest block first, got %q", runes[0])
	}
	if runes[2] != SparklineBlocks[len(SparklineBlocks)-1] {
		t.Errorf("expected highest block last, got %q", runes[2])
	}
}

func TestSparkline_FlatSeriesUsesMiddleBlock(t *testing.T) {
	out := Sparkline([]float64{12, 12, 12}, 3, "")
	want := strings.Repeat(string(SparklineBlocks[len(SparklineBlocks)/2]), 3)
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestSparkline_Empty(t *testing.T) {
	if out := Sparkline(nil, 10, ""); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
	if out := Sparkline([]float64{1}, 0, ""); out != "" {
		t.Errorf("expected empty output for zero width, got %q", out)
	}
}

func TestSampleValues(t *testing.T) {
	padded := sampleValues([]float64{5, 6}, 4)
	if len(padded) != 4 || padded[0] != 0 || padded[3] != 6 {
		t.Errorf("expected zero padding at the start, got %v", padded)
	}

	sampled := sampleValues([]float64{1, 2, 3, 4, 5, 6}, 3)
	if len(sampled) != 3 || sampled[0] != 1 || sampled[2] != 5 {
		t.Errorf("expected every other value, got %v", sampled)
	}
}

func TestYearSparkline_Labels(t *testing.T) {
	out := YearSparkline([]float64{100, 110, 120}, 2025, "")
	if !strings.HasPrefix(out, "2025 ") || !strings.HasSuffix(out, " 2027") {
		t.Errorf("expected 2025..2027 labels, got %q", out)
	}
	if YearSparkline(nil, 2025, "") != "" {
		t.Error("expected empty output for empty series")
	}
}

func TestFeasibilityBadge(t *testing.T) {
	if out := FeasibilityBadge("YES"); !strings.Contains(out, "RECHARGE FEASIBLE") {
		t.Errorf("expected recharge badge, got %q", out)
	}
	if out := FeasibilityBadge("NO"); !strings.Contains(out, "STORAGE ONLY") {
		t.Errorf("expected storage badge, got %q", out)
	}
}

func TestTrendIndicator(t *testing.T) {
	for _, trend := range []string{"rising", "falling", "flat"} {
		if out := TrendIndicator(trend); !strings.Contains(out, trend) {
			t.Errorf("expected %q in indicator, got %q", trend, out)
		}
	}
}
