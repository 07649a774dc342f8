package llm

import (
	"testing"
)

func TestDecodeObject(t *testing.T) {
	t.Parallel()

	type scores struct {
		Logistics int    `json:"logistics"`
		Comment   string `json:"comment"`
	}

	tests := []struct {
		name    string
		text    string
		want    scores
		wantErr bool
	}{
		{
			name: "clean object",
			text: `{"logistics": 4, "comment": "solid plan"}`,
			want: scores{Logistics: 4, Comment: "solid plan"},
		},
		{
			name: "fenced object",
			text: "```json\n{\"logistics\": 3, \"comment\": \"ok\"}\n```",
			want: scores{Logistics: 3, Comment: "ok"},
		},
		{
			name: "prose around object",
			text: "Here is my evaluation:\n{\"logistics\": 5, \"comment\": \"great\"}\nHope this helps!",
			want: scores{Logistics: 5, Comment: "great"},
		},
		{
			name: "trailing comma repaired",
			text: `{"logistics": 2, "comment": "meh",}`,
			want: scores{Logistics: 2, Comment: "meh"},
		},
		{
			name: "braces inside strings",
			text: `{"logistics": 1, "comment": "watch out for {nested} text"}`,
			want: scores{Logistics: 1, Comment: "watch out for {nested} text"},
		},
		{
			name:    "no object at all",
			text:    "Sorry, I cannot help with that.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got scores
			err := DecodeObject(tt.text, &got)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeObject failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeArray(t *testing.T) {
	t.Parallel()

	type item struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name      string
		text      string
		wantNames []string
		wantErr   bool
	}{
		{
			name:      "clean array",
			text:      `[{"name": "Louvre"}, {"name": "Eiffel Tower"}]`,
			wantNames: []string{"Louvre", "Eiffel Tower"},
		},
		{
			name:      "fenced array with preamble",
			text:      "Here are the attractions:\n```json\n[{\"name\": \"Orsay\"}]\n```",
			wantNames: []string{"Orsay"},
		},
		{
			name:      "trailing comma in array",
			text:      `[{"name": "Pantheon"},]`,
			wantNames: []string{"Pantheon"},
		},
		{
			name:    "unbalanced array",
			text:    `[{"name": "Louvre"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []item
			err := DecodeArray(tt.text, &got)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeArray failed: %v", err)
			}
			if len(got) != len(tt.wantNames) {
				t.Fatalf("expected %d items, got %d", len(tt.wantNames), len(got))
			}
			for i, n := range tt.wantNames {
				if got[i].Name != n {
					t.Errorf("item %d: got %q, want %q", i, got[i].Name, n)
				}
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	t.Parallel()

	if got := StripFences("```json\n{\"a\":1}\n```"); got != `{"a":1}` {
		t.Errorf("unexpected strip result: %q", got)
	}
	if got := StripFences("no fences here"); got != "no fences here" {
		t.Errorf("plain text should pass through, got %q", got)
	}
}
