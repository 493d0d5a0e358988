package slackbot

import "testing"

func TestStripMentions(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<@U12345> summarize https://example.com", "summarize https://example.com"},
		{"summarize https://example.com <@U12345>", "summarize https://example.com"},
		{"<@U12345> <@UABCDE9> compare these", "compare these"},
		{"<@U12345>", ""},
		{"no mention at all", "no mention at all"},
	}

	for _, tc := range cases {
		if got := stripMentions(tc.in); got != tc.want {
			t.Errorf("stripMentions(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
