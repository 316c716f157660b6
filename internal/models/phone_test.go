package models

import "testing"

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "mobile 11 digits", input: "01012345678", want: "010-1234-5678"},
		{name: "mobile already formatted", input: "010-1234-5678", want: "010-1234-5678"},
		{name: "mobile with spaces and dots", input: "010.1234 5678", want: "010-1234-5678"},
		{name: "seoul landline 10 digits", input: "0212345678", want: "02-1234-5678"},
		{name: "regional landline 10 digits", input: "0311234567", want: "031-123-4567"},
		{name: "short seoul landline 9 digits", input: "021234567", want: "02-123-4567"},
		{name: "service number 8 digits", input: "15881234", want: "1588-1234"},
		{name: "international format eight digits", input: "+82 10 1234", want: "8210-1234"},
		{name: "unknown length returned unchanged", input: "123-4567", want: "123-4567"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPhone(tt.input); got != tt.want {
				t.Errorf("FormatPhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("010-1234-5678"); got != "01012345678" {
		t.Errorf("NormalizePhone = %q, want 01012345678", got)
	}
	if got := NormalizePhone("no digits"); got != "" {
		t.Errorf("NormalizePhone = %q, want empty", got)
	}
}
