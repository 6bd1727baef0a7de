package generator

import (
	"strings"
	"testing"
)

func TestBuildPromptExcludesEmail(t *testing.T) {
	prompt := BuildPrompt(map[string]interface{}{
		"email":            "a@b.com",
		"How comfortable?": "Very comfortable",
	})

	if strings.Contains(prompt, "a@b.com") {
		t.Error("recipient address must not be serialized into the prompt")
	}
	if !strings.Contains(prompt, "How comfortable?: Very comfortable") {
		t.Errorf("missing answer line in prompt:\n%s", prompt)
	}
}

func TestBuildPromptDeterministicOrder(t *testing.T) {
	answers := map[string]interface{}{
		"Zeta question":  "Never",
		"Alpha question": "Always",
		"Mid question":   "Sometimes",
	}

	first := BuildPrompt(answers)
	for i := 0; i < 10; i++ {
		if got := BuildPrompt(answers); got != first {
			t.Fatal("prompt must be identical across runs for the same answers")
		}
	}

	alpha := strings.Index(first, "Alpha question")
	mid := strings.Index(first, "Mid question")
	zeta := strings.Index(first, "Zeta question")
	if !(alpha < mid && mid < zeta) {
		t.Errorf("answer lines must be sorted by key, positions: %d %d %d", alpha, mid, zeta)
	}
}

func TestBuildPromptValueFormatting(t *testing.T) {
	prompt := BuildPrompt(map[string]interface{}{
		"Topics":     []string{"Strategy", "Data"},
		"Team size":  float64(5),
		"Free text":  "hello world",
		"Half score": float64(7.5),
	})

	for _, want := range []string{
		"Topics: Strategy, Data\n",
		"Team size: 5\n",
		"Free text: hello world\n",
		"Half score: 7.5\n",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptCarriesScoringContract(t *testing.T) {
	prompt := BuildPrompt(map[string]interface{}{"Q1": "Always"})

	if !strings.HasPrefix(prompt, scoringPrompt) {
		t.Error("prompt must start with the fixed scoring instructions")
	}
	if !strings.Contains(prompt, "Form responses:\nQ1: Always\n") {
		t.Errorf("answers must follow the instruction header:\n%s", prompt)
	}
}
