package config

import "testing"

func TestOutput_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		output Output
		want   bool
	}{
		{
			name:   "table output is valid",
			output: OutputTable,
			want:   true,
		},
		{
			name:   "json output is valid",
			output: OutputJSON,
			want:   true,
		},
		{
			name:   "unknown output",
			output: Output("yaml"),
			want:   false,
		},
		{
			name:   "empty output",
			output: Output(""),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.output.IsValid(); got != tt.want {
				t.Errorf("Output.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutput_String(t *testing.T) {
	if got := OutputJSON.String(); got != "json" {
		t.Errorf("Output.String() = %v, want json", got)
	}
}
