package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		attr slog.Attr
		key  string
		val  string
	}{
		{BuildID("b1"), KeyBuildID, "b1"},
		{Stage("discover"), KeyStage, "discover"},
		{Path("guides/example.md"), KeyPath, "guides/example.md"},
		{Slug("/guides/example/"), KeySlug, "/guides/example/"},
		{Group("Guides"), KeyGroup, "Guides"},
		{Format("json"), KeyFormat, "json"},
		{Error(errors.New("boom")), KeyError, "boom"},
		{Error(nil), KeyError, ""},
	}
	for _, tc := range cases {
		if tc.attr.Key != tc.key {
			t.Errorf("key = %q, want %q", tc.attr.Key, tc.key)
		}
		if tc.attr.Value.String() != tc.val {
			t.Errorf("%s value = %q, want %q", tc.key, tc.attr.Value.String(), tc.val)
		}
	}
	if Count(3).Value.Int64() != 3 {
		t.Error("Count value mismatch")
	}
}
