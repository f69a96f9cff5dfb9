package todo

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateRecord_Todo(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "valid minimal",
			raw:  `{"id":"t1","title":"x","createdAt":"2024-01-01T00:00:00.000Z","scheduledFor":"2024-01-02T00:00:00.000Z","deleted":false}`,
		},
		{
			name:    "missing deleted",
			raw:     `{"id":"t1","title":"x","createdAt":"2024-01-01T00:00:00.000Z","scheduledFor":"2024-01-02T00:00:00.000Z"}`,
			wantErr: true,
		},
		{
			name:    "id wrong type",
			raw:     `{"id":7,"title":"x","createdAt":"2024-01-01T00:00:00.000Z","scheduledFor":"2024-01-02T00:00:00.000Z","deleted":false}`,
			wantErr: true,
		},
		{
			name:    "sortOrder not an integer",
			raw:     `{"id":"t1","title":"x","createdAt":"2024-01-01T00:00:00.000Z","scheduledFor":"2024-01-02T00:00:00.000Z","deleted":false,"sortOrder":"first"}`,
			wantErr: true,
		},
		{
			name: "unknown fields tolerated",
			raw:  `{"id":"t1","title":"x","createdAt":"2024-01-01T00:00:00.000Z","scheduledFor":"2024-01-02T00:00:00.000Z","deleted":false,"futureField":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRecord(todoSchema, json.RawMessage(tt.raw))
			if tt.wantErr && !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("expected ErrInvalidRecord, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateRecord_List(t *testing.T) {
	valid := `{"id":"l1","name":"Groceries","createdAt":"2024-01-01T00:00:00.000Z","deleted":false}`
	if err := validateRecord(listSchema, json.RawMessage(valid)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	missingName := `{"id":"l1","createdAt":"2024-01-01T00:00:00.000Z","deleted":false}`
	if err := validateRecord(listSchema, json.RawMessage(missingName)); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord, got %v", err)
	}
}
