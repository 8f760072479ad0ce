// Act carries decisions out against the authed care endpoints.
package caretaker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Actor posts care actions to the API.
type Actor struct {
	BaseURL    string
	AdminKey   string
	HTTPClient *http.Client
}

// NewActor creates an Actor for the given API base URL and bearer token.
func NewActor(baseURL, adminKey string) *Actor {
	return &Actor{
		BaseURL:  baseURL,
		AdminKey: adminKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Apply executes one action. ActionNone is a successful no-op.
func (a *Actor) Apply(act Action) error {
	switch act.Kind {
	case ActionNone:
		return nil
	case ActionWater:
		return a.post("/api/v1/water", map[string]any{"amount": act.Amount})
	case ActionTreat:
		return a.post("/api/v1/treat", map[string]any{
			"pesticide": act.Amount,
			"fungicide": act.Amount,
		})
	case ActionFertilize:
		return a.post("/api/v1/fertilize", map[string]any{
			"amount":     act.Amount,
			"fertilizer": act.Fertilizer,
		})
	case ActionHarvest:
		return a.post("/api/v1/harvest", map[string]any{"all": true})
	case ActionPlant:
		return a.post("/api/v1/plant", map[string]any{
			"x": act.X, "y": act.Y, "species": act.Species,
		})
	case ActionTill:
		return a.post("/api/v1/till", map[string]any{})
	default:
		return fmt.Errorf("unknown action kind %q", act.Kind)
	}
}

func (a *Actor) post(path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	req, err := http.NewRequest(http.MethodPost, a.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.AdminKey)

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s returned %d: %s", path, resp.StatusCode, string(respBody))
	}
	return nil
}
