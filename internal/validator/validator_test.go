package validator

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		title   string
		content string
		want    Reason
	}{
		{"", "valid content here", MissingTitle},
		{"", "", MissingTitle},
		{"Title", "", MissingContent},
		{"ab", "", MissingContent},
		{"ab", "valid content here", TitleTooShort},
		{"ab", "short", TitleTooShort},
		{"Title", "short", ContentTooShort},
		{"Title", "Long enough content", ""},
		{"abc", "0123456789", ""},
		{"日本語", "ちょうど十文字のテキスト", ""},
		{"   ", "          ", ""},
	}
	for i, c := range cases {
		err := Validate(c.title, c.content)
		if c.want == "" {
			if err != nil {
				t.Fatalf("case %d expected ok, got err: %v", i, err)
			}
			continue
		}

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("case %d expected ValidationError, got %v", i, err)
		}
		if verr.Reason != c.want {
			t.Fatalf("case %d expected %q, got %q", i, c.want, verr.Reason)
		}
		if err.Error() != string(c.want) {
			t.Fatalf("case %d unexpected message %q", i, err.Error())
		}
	}
}

func TestValidate_Deterministic(t *testing.T) {
	first := Validate("ab", "valid content here")
	for i := 0; i < 5; i++ {
		if got := Validate("ab", "valid content here"); got.Error() != first.Error() {
			t.Fatalf("call %d returned %v, expected %v", i, got, first)
		}
	}
}
