package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"cadence/internal/server"
	"cadence/pkg/habit"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    http.DefaultClient,
	}
}

func (c *Client) ListHabits(ctx context.Context) ([]habit.Habit, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/habits", nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("list habits: %s", res.Status)
	}
	var response server.HabitListResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, err
	}
	return response.Habits, nil
}

func (c *Client) CreateHabit(ctx context.Context, r server.CreateHabitRequest) (*server.CreateHabitResponse, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	req, _ := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/habits", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 201 {
		return nil, fmt.Errorf("create habit: %s", res.Status)
	}
	var out server.CreateHabitResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ToggleCompletion(ctx context.Context, habitID, date string) (*server.ToggleCompletionResponse, error) {
	body, err := json.Marshal(server.ToggleCompletionRequest{Date: date})
	if err != nil {
		return nil, err
	}
	req, _ := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/habits/"+habitID+"/toggle", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("toggle %s: %s", habitID, res.Status)
	}
	var out server.ToggleCompletionResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetHabitSummary(ctx context.Context, habitID string) (*server.HabitSummaryResponse, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/habits/"+habitID+"/summary", nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("summary %s: %s", habitID, res.Status)
	}
	var out server.HabitSummaryResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
