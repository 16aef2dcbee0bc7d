package sheetgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ryanmford/apexspeedrun/pkg/logger"
)

// Probe checks a running dashboard: /healthz must answer 200 and /status
// must report a non-failed pipeline state.
func Probe(ctx context.Context, cfg *Config) error {
	client := &http.Client{Timeout: cfg.Timeout}

	if err := probeGet(ctx, client, cfg.ProbeURL+"/healthz", nil); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	logger.Get().Info(ctx, "dashboard is healthy")

	var status struct {
		State    string `json:"state"`
		Athletes int    `json:"athletes"`
		Courses  int    `json:"courses"`
	}
	if err := probeGet(ctx, client, cfg.ProbeURL+"/status", &status); err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}
	if status.State == "failed" {
		return fmt.Errorf("dashboard pipeline reports failed state")
	}

	logger.Get().Info(ctx, "dashboard status",
		logger.String("state", status.State),
		logger.Int("athletes", status.Athletes),
		logger.Int("courses", status.Courses))
	return nil
}

func probeGet(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
