package domain

import "testing"

func TestRegistrationValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   Registration
		ok   bool
	}{
		{"complete", Registration{Username: "ada", Email: "ada@example.com", Password: "pw"}, true},
		{"missing password", Registration{Username: "ada", Email: "ada@example.com"}, false},
		{"blank username", Registration{Username: "  ", Email: "ada@example.com", Password: "pw"}, false},
		{"bad email", Registration{Username: "ada", Email: "ada", Password: "pw"}, false},
	}
	for _, tc := range cases {
		if err := tc.in.Validate(); (err == nil) != tc.ok {
			t.Fatalf("%s: unexpected result %v", tc.name, err)
		}
	}
}

func TestCredentialsValidate(t *testing.T) {
	t.Parallel()
	if err := (Credentials{Username: "ada"}).Validate(); err == nil {
		t.Fatalf("expected missing password error")
	}
	if err := (Credentials{Username: "ada", Password: "pw"}).Validate(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}
