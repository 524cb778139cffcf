package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// Create handlers return the model structs directly, so their JSON
// keys must match the snake_case used by the listing projections.
func TestEventJSONKeysAreSnakeCase(t *testing.T) {
	e := Event{
		ID:        1,
		Title:     "Algebra help",
		HostID:    7,
		StartTime: time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 1, 16, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, want := range []string{"id", "title", "host_id", "start_time", "end_time"} {
		if _, ok := keys[want]; !ok {
			t.Errorf("missing key %q in %s", want, raw)
		}
	}
	for _, stray := range []string{"ID", "HostID", "StartTime"} {
		if _, ok := keys[stray]; ok {
			t.Errorf("unexpected key %q in %s", stray, raw)
		}
	}
}

func TestUserJSONNeverExposesPasswordHash(t *testing.T) {
	u := User{ID: 1, Email: "a@school.test", PasswordHash: "$2a$10$secret"}
	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "secret") || strings.Contains(string(raw), "password") {
		t.Errorf("password hash leaked: %s", raw)
	}
}
