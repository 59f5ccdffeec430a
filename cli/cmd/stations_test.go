package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestStationsCommand_ListsDistricts(t *testing.T) {
	newFakeBackend(t)

	var buf bytes.Buffer
	if code := runStations(context.Background(), &buf, ""); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "Erode") || !strings.Contains(out, "2 stations") {
		t.Errorf("expected Erode with 2 stations, got:\n%s", out)
	}
	if strings.Index(out, "Chennai") > strings.Index(out, "Erode") {
		t.Error("expected districts in backend order")
	}
}

func TestStationsCommand_DistrictCaseInsensitive(t *testing.T) {
	newFakeBackend(t)
	jsonOutput = true

	var buf bytes.Buffer
	if code := runStations(context.Background(), &buf, "erode"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}

	var stations []string
	if err := json.Unmarshal(buf.Bytes(), &stations); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(stations) != 2 || stations[0] != "Bhavani" {
		t.Errorf("expected [Bhavani Kodivery], got %v", stations)
	}
}

func TestStationsCommand_UnknownDistrict(t *testing.T) {
	newFakeBackend(t)

	var buf bytes.Buffer
	if code := runStations(context.Background(), &buf, "Atlantis"); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), `unknown district "Atlantis"`) {
		t.Errorf("unexpected output %q", buf.String())
	}
}
