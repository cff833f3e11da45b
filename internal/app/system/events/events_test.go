package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestEncode(t *testing.T) {
	now := time.Date(2030, 1, 2, 3, 4, 5, 0, time.FixedZone("WAT", 3600))
	raw, err := Encode(AppointmentCreated, map[string]string{"id": "abc"}, now)
	if err != nil {
		t.Fatal(err)
	}

	var env struct {
		Subject    string            `json:"subject"`
		OccurredAt time.Time         `json:"occurredAt"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatal(err)
	}
	if env.Subject != AppointmentCreated {
		t.Errorf("subject = %q", env.Subject)
	}
	if !env.OccurredAt.Equal(now) || env.OccurredAt.Location() != time.UTC {
		t.Errorf("occurredAt = %v", env.OccurredAt)
	}
	if env.Data["id"] != "abc" {
		t.Errorf("data = %v", env.Data)
	}
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	p.Publish(context.Background(), PropertyCreated, nil)
	p.Close()
}
