package segment

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two sentences",
			text: "First sentence. Second sentence.",
			want: []string{"First sentence.", "Second sentence."},
		},
		{
			name: "mixed terminators",
			text: "Really?! Yes. Wow!",
			want: []string{"Really?!", "Yes.", "Wow!"},
		},
		{
			name: "single sentence without trailing space",
			text: "Just one sentence.",
			want: []string{"Just one sentence."},
		},
		{
			name: "no terminator",
			text: "no punctuation at all",
			want: []string{"no punctuation at all"},
		},
		{
			name: "dot without following whitespace is not a boundary",
			text: "Visit example.com today. Then leave.",
			want: []string{"Visit example.com today.", "Then leave."},
		},
		{
			name: "newlines count as whitespace",
			text: "One.\nTwo!\n\tThree?",
			want: []string{"One.", "Two!", "Three?"},
		},
		{
			name: "cyrillic text",
			text: "Он купил акции. Подробнее на сайте.",
			want: []string{"Он купил акции.", "Подробнее на сайте."},
		},
		{
			name: "surrounding whitespace trimmed",
			text: "  Padded. Text.  ",
			want: []string{"Padded.", "Text."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSplit_Empty(t *testing.T) {
	if got := Split(""); got != nil {
		t.Errorf("Expected nil for empty input, got %v", got)
	}

	if got := Split("   \n\t  "); got != nil {
		t.Errorf("Expected nil for whitespace-only input, got %v", got)
	}
}

func TestSplit_Deterministic(t *testing.T) {
	text := "Repeatable. Input! Always? The same."
	first := Split(text)
	for i := 0; i < 10; i++ {
		if got := Split(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("Split is not deterministic: %v vs %v", got, first)
		}
	}
}
