// Package caretaker implements the autonomous plot steward. It observes
// farm state via the API, triages it into care signals, decides on actions
// via a rule table, and acts through the authed care endpoints.
package caretaker

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/GhostDragonAlpha/Alexander-sub001/internal/plot"
)

// FarmSnapshot holds all data collected during one observation cycle.
type FarmSnapshot struct {
	Status plot.Statistics   `json:"status"`
	Cells  []plot.CellStatus `json:"cells"`
}

// Observer fetches farm state from the API.
type Observer struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewObserver creates an Observer targeting the given API base URL.
func NewObserver(baseURL string) *Observer {
	return &Observer{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Observe fetches the status and cell endpoints into one snapshot.
func (o *Observer) Observe() (*FarmSnapshot, error) {
	snap := &FarmSnapshot{}

	if err := o.fetchJSON("/api/v1/status", &snap.Status); err != nil {
		return nil, fmt.Errorf("fetch status: %w", err)
	}
	if err := o.fetchJSON("/api/v1/cells", &snap.Cells); err != nil {
		return nil, fmt.Errorf("fetch cells: %w", err)
	}
	return snap, nil
}

// fetchJSON GETs a path and decodes the JSON response into target.
func (o *Observer) fetchJSON(path string, target any) error {
	resp, err := o.HTTPClient.Get(o.BaseURL + path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s returned %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
