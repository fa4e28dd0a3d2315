package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParentCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "detailed code", code: "29-1141.01", want: "29-1141"},
		{name: "detailed code alternate suffix", code: "29-1141.04", want: "29-1141"},
		{name: "already coarse", code: "29-1141", want: "29-1141"},
		{name: "sentinel", code: "00-0000", want: "00-0000"},
		{name: "empty", code: "", want: ""},
		{name: "multiple delimiters truncate at first", code: "11-1011.00.x", want: "11-1011"},
		{name: "malformed stays deterministic", code: "not-a-code.9", want: "not-a-code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParentCode(tt.code))
		})
	}
}

func TestMajorGroup(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		want   string
		wantOK bool
	}{
		{name: "detailed code", code: "29-1141.01", want: "29", wantOK: true},
		{name: "coarse code", code: "11-1011", want: "11", wantOK: true},
		{name: "trimmed", code: " 13-2011.00", want: "13", wantOK: true},
		{name: "no dash", code: "291141", wantOK: false},
		{name: "single digit prefix", code: "9-1141", wantOK: false},
		{name: "empty", code: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MajorGroup(tt.code)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
