package llm

import (
	"errors"
	"testing"
)

func TestRecoverJSON(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "clean object",
			raw:  `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "code fence",
			raw:  "```json\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "prose wrapper",
			raw:  `Here is the extraction you asked for: {"a":{"b":null}} hope that helps`,
			want: `{"a":{"b":null}}`,
		},
		{
			name:    "no object",
			raw:     "I could not find any structured data.",
			wantErr: true,
		},
		{
			name:    "unbalanced braces",
			raw:     `{"a":1`,
			wantErr: true,
		},
		{
			name:    "invalid span",
			raw:     `{not json}`,
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RecoverJSON(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, ErrNoJSON) {
					t.Fatalf("expected ErrNoJSON, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, string(got))
			}
		})
	}
}
