package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrompterConfirmRetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("maybe\nn\n"), &out)
	ok, err := p.confirm("Continue?", true)
	if err != nil || ok {
		t.Fatalf("expected no after retry, got %v (%v)", ok, err)
	}
	if strings.Count(out.String(), "Continue? [Y/n]: ") != 2 || !strings.Contains(out.String(), "Please answer yes or no.") {
		t.Fatalf("unexpected prompt output %q", out.String())
	}
}

func TestPrompterDefaultsAtEndOfInput(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader(""), &out)
	ok, err := p.confirm("Continue?", true)
	if err != nil || !ok {
		t.Fatalf("expected default yes, got %v (%v)", ok, err)
	}
	dir, err := p.ask("Results folder", "bench/results")
	if err != nil || dir != "bench/results" {
		t.Fatalf("expected default folder, got %q (%v)", dir, err)
	}
	if _, err := p.ask("Name", ""); err == nil {
		t.Fatalf("expected error for missing required answer")
	}
	if _, err := newPrompter(strings.NewReader("perhaps"), &out).confirm("Continue?", false); err == nil {
		t.Fatalf("expected error for invalid final answer")
	}
}
