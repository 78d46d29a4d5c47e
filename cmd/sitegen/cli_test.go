package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"energy_prospectus/pkg/core/config"
	"energy_prospectus/pkg/core/store"
)

// setup resets the command globals to the stock configuration and returns a
// command writing into buf.
func setup(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.Default()
	t.Cleanup(func() {
		metricsScenario = ""
		roadmapPhase = ""
		roadmapYear = 0
		facilityType = ""
		facilityID = ""
		outDir = "dist"
	})

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestMetricsCmd(t *testing.T) {
	cmd, buf := setup(t)

	if err := runMetrics(cmd, nil); err != nil {
		t.Fatalf("runMetrics failed: %v", err)
	}
	out := buf.String()

	// 75% scenario totals
	for _, want := range []string{"75% Market Capture", "$16365M", "$2293M", "$14072M", "613.7%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "384.5%") || !strings.Contains(out, "845.7%") {
		t.Errorf("expected every scenario in the table:\n%s", out)
	}
}

func TestMetricsCmd_Scenario(t *testing.T) {
	cmd, buf := setup(t)
	metricsScenario = "100%"

	if err := runMetrics(cmd, nil); err != nil {
		t.Fatalf("runMetrics failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "$19392M") {
		t.Errorf("expected 100%% net profit:\n%s", out)
	}
	if strings.Contains(out, "50% Market Capture") {
		t.Errorf("other scenarios should be filtered out:\n%s", out)
	}

	metricsScenario = "60"
	if err := runMetrics(cmd, nil); err == nil {
		t.Error("expected an error for an unknown scenario")
	}
}

func TestRoadmapCmd_Grid(t *testing.T) {
	cmd, buf := setup(t)

	if err := runRoadmap(cmd, nil); err != nil {
		t.Fatalf("runRoadmap failed: %v", err)
	}
	out := buf.String()

	for _, name := range []string{"Debt Repayment", "Refinery Expansion", "Export Infrastructure"} {
		if !strings.Contains(out, name) {
			t.Errorf("grid missing phase %q", name)
		}
	}

	// Debt Repayment is active in years 1-10: ten double-width cells
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Debt Repayment") && strings.Contains(line, idleCell) {
			if got := strings.Count(line, activeCell); got != 20 {
				t.Errorf("Debt Repayment active cells = %d, want 20", got)
			}
			break
		}
	}
	if !strings.Contains(out, "Year 1 - Year 10 (10 years)") {
		t.Errorf("expected timeline summary:\n%s", out)
	}
}

func TestRoadmapCmd_Phase(t *testing.T) {
	cmd, buf := setup(t)
	roadmapPhase = "debt repayment"

	if err := runRoadmap(cmd, nil); err != nil {
		t.Fatalf("runRoadmap failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Debt Repayment", "$1000M", "$-1000M", "debt service"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}

	roadmapPhase = "Moon Base"
	if err := runRoadmap(cmd, nil); err == nil {
		t.Error("expected an error for an unknown phase")
	}
}

func TestRoadmapCmd_Year(t *testing.T) {
	cmd, buf := setup(t)
	roadmapYear = 11

	if err := runRoadmap(cmd, nil); err != nil {
		t.Fatalf("runRoadmap failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Year 11", "Cogeneration", "Marine Facility"} {
		if !strings.Contains(out, want) {
			t.Errorf("year listing missing %q:\n%s", want, out)
		}
	}
	for _, idle := range []string{"Debt Repayment", "Refinery Expansion"} {
		if strings.Contains(out, idle) {
			t.Errorf("%s is not active in year 11:\n%s", idle, out)
		}
	}

	roadmapYear = 21
	if err := runRoadmap(cmd, nil); err == nil {
		t.Error("expected an error for a year past the horizon")
	}
}

func TestFacilitiesCmd(t *testing.T) {
	cmd, buf := setup(t)
	facilityType = "storage"

	if err := runFacilities(cmd, nil); err != nil {
		t.Fatalf("runFacilities failed: %v", err)
	}
	out := buf.String()
	if got := strings.Count(out, "storage-terminal-"); got != 3 {
		t.Errorf("storage rows = %d, want 3:\n%s", got, out)
	}
	if strings.Contains(out, "come-by-chance") {
		t.Errorf("refinery should be filtered out:\n%s", out)
	}

	facilityType = "castle"
	if err := runFacilities(cmd, nil); err == nil {
		t.Error("expected an error for an unknown type")
	}
}

func TestFacilitiesCmd_Detail(t *testing.T) {
	cmd, buf := setup(t)
	facilityID = "come-by-chance"

	if err := runFacilities(cmd, nil); err != nil {
		t.Fatalf("runFacilities failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Come By Chance Refinery", "115,000 barrels/day", "Operational", "850+", "47.2500, -52.7333"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}

	facilityID = "nowhere"
	if err := runFacilities(cmd, nil); err == nil {
		t.Error("expected an error for an unknown id")
	}
}

func TestBuildCmd(t *testing.T) {
	cmd, buf := setup(t)
	outDir = filepath.Join(t.TempDir(), "site")

	if err := runBuild(cmd, nil); err != nil {
		t.Fatalf("runBuild failed: %v", err)
	}
	if !strings.Contains(buf.String(), outDir) {
		t.Errorf("expected output dir in message: %s", buf.String())
	}

	for _, name := range []string{"index.html", "assets/site.js", "charts/financial-75.svg", "charts/roadmap.svg", store.ManifestFile} {
		if _, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(name))); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestRootCmd_Metrics(t *testing.T) {
	_, _ = setup(t)
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"metrics", "--scenario", "50"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(buf.String(), "$8817M") {
		t.Errorf("expected 50%% net profit:\n%s", buf.String())
	}
}
