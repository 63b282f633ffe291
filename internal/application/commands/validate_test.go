package commands

import (
	"testing"

	"gardenbook/internal/domain"
)

func TestCreateCommands_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     interface{ Validate() error }
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid client",
			cmd:  &CreateClientCommand{Client: domain.Client{Name: "Ann"}},
		},
		{
			name:    "client without name",
			cmd:     &CreateClientCommand{Client: domain.Client{Name: "  "}},
			wantErr: true,
			errMsg:  "name is required",
		},
		{
			name: "valid plant",
			cmd:  &CreatePlantCommand{Plant: domain.Plant{Name: "Rose", LatinName: "Rosa"}},
		},
		{
			name:    "plant without latin name",
			cmd:     &CreatePlantCommand{Plant: domain.Plant{Name: "Rose"}},
			wantErr: true,
			errMsg:  "latin name is required",
		},
		{
			name:    "plant without name",
			cmd:     &CreatePlantCommand{Plant: domain.Plant{LatinName: "Rosa"}},
			wantErr: true,
			errMsg:  "name is required",
		},
		{
			name: "valid job without months",
			cmd:  &CreateJobCommand{Job: domain.Maintenance{Name: "Prune"}},
		},
		{
			name:    "job without name",
			cmd:     &CreateJobCommand{Job: domain.Maintenance{Description: "cut back"}},
			wantErr: true,
			errMsg:  "name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestUpdateCommands_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     interface{ Validate() error }
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid client update",
			cmd:  &UpdateClientCommand{Client: domain.Client{ID: 1, Name: "Ann"}},
		},
		{
			name:    "client update without id",
			cmd:     &UpdateClientCommand{Client: domain.Client{Name: "Ann"}},
			wantErr: true,
			errMsg:  "invalid ID: 0",
		},
		{
			name:    "plant update with negative id",
			cmd:     &UpdatePlantCommand{Plant: domain.Plant{ID: -3, Name: "Rose", LatinName: "Rosa"}},
			wantErr: true,
			errMsg:  "invalid ID: -3",
		},
		{
			name:    "job update without name",
			cmd:     &UpdateJobCommand{Job: domain.Maintenance{ID: 4}},
			wantErr: true,
			errMsg:  "name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDeleteCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		kind    domain.Kind
		id      int64
		wantErr bool
		errMsg  string
	}{
		{name: "client", kind: domain.KindClient, id: 1},
		{name: "plant", kind: domain.KindPlant, id: 2},
		{name: "job", kind: domain.KindJob, id: 3},
		{name: "month", kind: domain.KindMonth, id: 1, wantErr: true, errMsg: "cannot delete records of kind Month"},
		{name: "unknown", kind: domain.KindUnknown, id: 1, wantErr: true, errMsg: "cannot delete"},
		{name: "zero id", kind: domain.KindPlant, id: 0, wantErr: true, errMsg: "invalid ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDeleteCommand(nil, tt.kind, tt.id).Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseRelation(t *testing.T) {
	tests := []struct {
		input string
		want  Relation
	}{
		{"client-plant", RelationClientPlant},
		{"Client-Plant", RelationClientPlant},
		{" plant-job ", RelationPlantJob},
		{"plant-client", RelationUnknown},
		{"job-plant", RelationUnknown},
		{"job-month", RelationUnknown},
		{"", RelationUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseRelation(tt.input); got != tt.want {
				t.Errorf("ParseRelation(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLinkCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rel     Relation
		left    int64
		right   int64
		wantErr bool
		errMsg  string
	}{
		{name: "client-plant", rel: RelationClientPlant, left: 1, right: 2},
		{name: "plant-job", rel: RelationPlantJob, left: 1, right: 2},
		{name: "unknown relation", rel: RelationUnknown, left: 1, right: 2, wantErr: true, errMsg: "relation must be"},
		{name: "missing client", rel: RelationClientPlant, right: 2, wantErr: true, errMsg: "invalid client ID"},
		{name: "missing job", rel: RelationPlantJob, left: 1, wantErr: true, errMsg: "invalid job ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewLinkCommand(nil, tt.rel, tt.left, tt.right).Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCalendarCommand_Validate(t *testing.T) {
	tests := []struct {
		month   string
		wantErr bool
	}{
		{"January", false},
		{"December", false},
		{"january", true},
		{"Jan", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			err := NewCalendarCommand(nil, tt.month).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// contains checks if substr is in s
func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && len(substr) > 0 && findSubstring(s, substr)))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
