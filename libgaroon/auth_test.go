package libgaroon

import "testing"

func TestBasicAuthRoundTrip(t *testing.T) {
	credential := EncodeBasicAuth("alice", "secret")
	if credential != testCredential {
		t.Errorf("Expected %q, got %q", testCredential, credential)
	}

	login, err := DecodeBasicAuth(credential)
	if err != nil {
		t.Fatalf("DecodeBasicAuth failed: %v", err)
	}
	if login != "alice" {
		t.Errorf("Expected login 'alice', got %q", login)
	}
}

func TestDecodeBasicAuthInvalid(t *testing.T) {
	tests := []string{
		"not base64!",
		EncodeBasicAuth("", "secret"),
		"YWxpY2U=", // alice, no separator
	}

	for _, credential := range tests {
		if _, err := DecodeBasicAuth(credential); err == nil {
			t.Errorf("DecodeBasicAuth(%q): expected an error", credential)
		}
	}
}

func TestMaskCredential(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"abc", "***"},
		{"YWxpY2U6c2VjcmV0", "YWxp************"},
	}

	for _, tt := range tests {
		if got := MaskCredential(tt.input); got != tt.want {
			t.Errorf("MaskCredential(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
