package caption

import (
	"errors"
	"testing"
)

func TestParseScriptTwoSpeakers(t *testing.T) {
	script := "Alice: Hello there.\nFrank: Hi, good to be here."

	utterances, err := ParseScript(script, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}

	if len(utterances) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(utterances))
	}

	if utterances[0].SpeakerID != 0 || utterances[0].SpeakerName != "Alice" {
		t.Errorf(
			"utterance 0: expected speaker 0 'Alice', got %d %q",
			utterances[0].SpeakerID, utterances[0].SpeakerName,
		)
	}
	if utterances[0].Text != "Hello there." {
		t.Errorf("utterance 0: unexpected text %q", utterances[0].Text)
	}
	if utterances[1].SpeakerID != 1 || utterances[1].SpeakerName != "Frank" {
		t.Errorf(
			"utterance 1: expected speaker 1 'Frank', got %d %q",
			utterances[1].SpeakerID, utterances[1].SpeakerName,
		)
	}
}

func TestParseScriptContinuationLines(t *testing.T) {
	script := "Speaker 1: Welcome back to the show\n" +
		"where we talk about everything.\n" +
		"\n" +
		"Speaker 2: Glad to be here."

	utterances, err := ParseScript(script, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}

	if len(utterances) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(utterances))
	}

	want := "Welcome back to the show where we talk about everything."
	if utterances[0].Text != want {
		t.Errorf("expected %q, got %q", want, utterances[0].Text)
	}
}

func TestParseScriptCaseInsensitiveLabels(t *testing.T) {
	script := "ALICE: First line.\nalice: Second line.\nAlice: Third line."

	utterances, err := ParseScript(script, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}

	if len(utterances) != 3 {
		t.Fatalf("expected 3 utterances, got %d", len(utterances))
	}
	for i, u := range utterances {
		if u.SpeakerID != 0 {
			t.Errorf("utterance %d: expected speaker 0, got %d", i, u.SpeakerID)
		}
		// display name is fixed at first sight
		if u.SpeakerName != "ALICE" {
			t.Errorf(
				"utterance %d: expected name 'ALICE', got %q",
				i, u.SpeakerName,
			)
		}
	}
}

func TestParseScriptSpeakerNameMapping(t *testing.T) {
	script := "Speaker 1: Hello.\nSpeaker 2: Hi."

	utterances, err := ParseScript(script, ParseOptions{
		SpeakerNames: map[int]string{0: "Andrew", 1: "Ava"},
	})
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}

	if utterances[0].SpeakerName != "Andrew" {
		t.Errorf("expected 'Andrew', got %q", utterances[0].SpeakerName)
	}
	if utterances[1].SpeakerName != "Ava" {
		t.Errorf("expected 'Ava', got %q", utterances[1].SpeakerName)
	}
}

func TestParseScriptLabelNameMapping(t *testing.T) {
	script := "host: Welcome everyone.\nGuest: Thanks for having me."

	utterances, err := ParseScript(script, ParseOptions{
		LabelNames: map[string]string{"host": "Maya", "guest": "Dev"},
	})
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}

	if utterances[0].SpeakerName != "Maya" {
		t.Errorf("expected 'Maya', got %q", utterances[0].SpeakerName)
	}
	if utterances[1].SpeakerName != "Dev" {
		t.Errorf("expected 'Dev', got %q", utterances[1].SpeakerName)
	}
}

func TestParseScriptDropsEmptyTurns(t *testing.T) {
	script := "Alice: \nBob: Something real."

	utterances, err := ParseScript(script, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}

	if len(utterances) != 1 {
		t.Fatalf("expected 1 utterance, got %d", len(utterances))
	}
	if utterances[0].Text != "Something real." {
		t.Errorf("unexpected text %q", utterances[0].Text)
	}
	// Bob keeps id 1: ids follow first-seen labels, not kept turns
	if utterances[0].SpeakerID != 1 {
		t.Errorf("expected speaker id 1, got %d", utterances[0].SpeakerID)
	}
}

func TestParseScriptNoSpeakerLines(t *testing.T) {
	script := "Just some narration text\nwith no speakers at all."

	_, err := ParseScript(script, ParseOptions{})
	if err == nil {
		t.Fatal("expected error for script without speaker lines")
	}

	var formatErr *ScriptFormatError
	if !errors.As(err, &formatErr) {
		t.Errorf("expected *ScriptFormatError, got %T", err)
	}
}

func TestParseScriptAnonymousFallback(t *testing.T) {
	script := "Just some narration text\nwith no speakers at all."

	utterances, err := ParseScript(script, ParseOptions{
		AnonymousFallback: true,
	})
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}

	if len(utterances) != 1 {
		t.Fatalf("expected 1 utterance, got %d", len(utterances))
	}
	want := "Just some narration text with no speakers at all."
	if utterances[0].Text != want {
		t.Errorf("expected %q, got %q", want, utterances[0].Text)
	}
	if utterances[0].SpeakerName != "Speaker 0" {
		t.Errorf("expected 'Speaker 0', got %q", utterances[0].SpeakerName)
	}
}

func TestParseScriptIdsScopedPerCall(t *testing.T) {
	first, err := ParseScript("Bob: Hi.", ParseOptions{})
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}
	second, err := ParseScript("Carol: Hey.", ParseOptions{})
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}

	if first[0].SpeakerID != 0 || second[0].SpeakerID != 0 {
		t.Errorf(
			"speaker ids must restart per call, got %d and %d",
			first[0].SpeakerID, second[0].SpeakerID,
		)
	}
}
