package e2e_test

import (
	"net/http/httptest"
	"testing"

	apiconfig "energy_prospectus/pkg/api/config"
	"energy_prospectus/pkg/api/site"
	"energy_prospectus/pkg/core/config"
	"energy_prospectus/pkg/core/dataset"
	"energy_prospectus/pkg/core/page"
	"energy_prospectus/pkg/core/scenario"
)

// startSite builds the stock site and serves it the way cmd/api does.
func startSite(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	reg, err := dataset.Default()
	if err != nil {
		t.Fatalf("Failed to load datasets: %v", err)
	}
	built, err := page.Build(cfg, reg, nil)
	if err != nil {
		t.Fatalf("Failed to build site: %v", err)
	}
	table, err := scenario.NewTable(reg.Scenarios())
	if err != nil {
		t.Fatalf("Failed to index scenarios: %v", err)
	}

	h := site.NewHandler(built, table, apiconfig.NewHandler(cfg, table), nil)
	ts := httptest.NewServer(h.Router())
	t.Cleanup(ts.Close)
	return ts
}
