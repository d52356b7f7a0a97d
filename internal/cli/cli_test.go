package cli

import (
	"encoding/json"
	"testing"
)

func TestParseParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    string
		wantNil bool
		wantErr bool
	}{
		{
			name:    "no params",
			args:    []string{"Page.enable"},
			wantNil: true,
		},
		{
			name: "valid object",
			args: []string{"Page.navigate", `{"url":"https://example.com"}`},
			want: `{"url":"https://example.com"}`,
		},
		{
			name:    "invalid json",
			args:    []string{"Page.navigate", `{url:}`},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseParams(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseParams() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.wantNil {
				if got != nil {
					t.Errorf("expected nil params, got %v", got)
				}
				return
			}
			raw, ok := got.(json.RawMessage)
			if !ok {
				t.Fatalf("expected raw JSON params, got %T", got)
			}
			if string(raw) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, string(raw))
			}
		})
	}
}

func TestEventDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		want   string
	}{
		{"Page.loadEventFired", "Page"},
		{"Network.requestWillBeSent", "Network"},
		{"noDomain", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()

			if got := eventDomain(tt.method); got != tt.want {
				t.Errorf("eventDomain(%q) = %q, want %q", tt.method, got, tt.want)
			}
		})
	}
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	t.Parallel()

	want := map[string]bool{
		"targets": false,
		"call":    false,
		"listen":  false,
		"wait":    false,
	}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected subcommand %s to be registered", name)
		}
	}
}
