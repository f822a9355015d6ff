package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"  YES  \n", true},
		{"Y", true},
		{"n\n", false},
		{"\n", false},
		{"yep\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		p := NewPromptConfirmer(strings.NewReader(tt.input), &out)
		got, err := p.Confirm(context.Background(), "Delete it?")
		if err != nil {
			t.Fatalf("Confirm(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "Delete it? [y/N] " {
			t.Errorf("prompt = %q", out.String())
		}
	}
}

func TestPromptConfirmerReadsOneAnswerPerPrompt(t *testing.T) {
	p := NewPromptConfirmer(strings.NewReader("y\nn\n"), &bytes.Buffer{})
	first, _ := p.Confirm(context.Background(), "a")
	second, _ := p.Confirm(context.Background(), "b")
	if !first || second {
		t.Fatalf("got %v, %v; want true, false", first, second)
	}
}

func TestPromptConfirmerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	ok, err := NewPromptConfirmer(strings.NewReader("y\n"), &out).Confirm(ctx, "a")
	if ok || err == nil {
		t.Fatalf("cancelled prompt returned %v, %v", ok, err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed, got %q", out.String())
	}
}
