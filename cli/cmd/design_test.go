// ABOUTME: Tests for the design command
// ABOUTME: Verifies dimension flags, lining and the rendered bill of quantities

package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func resetDesignFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		designHarvested = 0
		designSystemType, designMaterial, designShape = "", "", ""
		designUnlined = false
		designLength, designWidth, designDepth, designDiameter, designHeight = 0, 0, 0, 0, 0
	})
}

func TestDesignCommand_Storage(t *testing.T) {
	fb := newFakeBackend(t)
	resetDesignFlags(t)
	designHarvested = 20000
	designSystemType = "Storage Tank for Reuse"
	designMaterial = "plastic"

	var buf bytes.Buffer
	if code := runDesign(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}

	if fb.design.Lined != nil {
		t.Error("expected lining left to the backend default")
	}
	if fb.design.Dimensions != nil {
		t.Errorf("expected no dimensions without dimension flags, got %v", fb.design.Dimensions)
	}

	out := buf.String()
	for _, want := range []string{"Storage Tank for Reuse", "18,000 L", "10000 L tank", "₹131,000"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestDesignCommand_CustomShaftUnlined(t *testing.T) {
	fb := newFakeBackend(t)
	resetDesignFlags(t)
	designHarvested = 9000
	designSystemType = "Recharge Shaft"
	designShape = "circular"
	designDiameter, designDepth = 2, 3
	designUnlined = true

	var buf bytes.Buffer
	if code := runDesign(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}

	if fb.design.Lined == nil || *fb.design.Lined {
		t.Error("expected lined=false to be sent")
	}
	dims := fb.design.Dimensions
	if len(dims) != 2 || dims["diameter"] != 2 || dims["depth"] != 3 {
		t.Errorf("expected diameter and depth only, got %v", dims)
	}
	if fb.design.Shape != "circular" {
		t.Errorf("expected circular shape, got %q", fb.design.Shape)
	}
}

func TestDesignInputFromFlags_Validation(t *testing.T) {
	resetDesignFlags(t)

	if _, err := designInputFromFlags(); err == nil || !strings.Contains(err.Error(), "--harvested") {
		t.Errorf("expected harvested error, got %v", err)
	}

	designHarvested = 100
	if _, err := designInputFromFlags(); err == nil || !strings.Contains(err.Error(), "--system-type") {
		t.Errorf("expected system type error, got %v", err)
	}
}

func TestDesignInputFromFlags_DimensionsWithoutShape(t *testing.T) {
	resetDesignFlags(t)
	designHarvested = 8000
	designSystemType = "Storage Tank for Reuse"
	designLength, designWidth, designDepth = 2, 2, 2

	input, err := designInputFromFlags()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Shape != "" {
		t.Errorf("expected shape left to the server default, got %q", input.Shape)
	}
	want := map[string]float64{"length": 2, "width": 2, "depth": 2}
	if len(input.Dimensions) != len(want) {
		t.Fatalf("Dimensions = %v, want %v", input.Dimensions, want)
	}
	for k, v := range want {
		if input.Dimensions[k] != v {
			t.Errorf("Dimensions[%s] = %v, want %v", k, input.Dimensions[k], v)
		}
	}
}

func TestDesignCommand_UnlinedHelpNamesPCC(t *testing.T) {
	usage := designCmd.Flags().Lookup("unlined").Usage
	if !strings.Contains(usage, "PCC") || strings.Contains(usage, "brick") {
		t.Errorf("unlined usage = %q, want it to name PCC lining", usage)
	}
}
