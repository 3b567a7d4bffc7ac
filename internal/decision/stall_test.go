package decision

import "testing"

func TestLooksDeferred_FlagsDeferralPhrasing(t *testing.T) {
	for _, msg := range []string{
		"Let me check the weather for you.",
		"I'll look into the file listing now.",
		"I will verify that directory first.",
		"Allow me to fetch that.",
		"Sure, I can check the forecast.",
		"I can look at those files.",
		"I can verify the path exists.",
		"LET ME run the tool.",
	} {
		if !LooksDeferred(msg) {
			t.Errorf("LooksDeferred(%q) = false, want true", msg)
		}
	}
}

func TestLooksDeferred_PassesDirectAnswers(t *testing.T) {
	for _, msg := range []string{
		"The weather in Jakarta is sunny, 31C.",
		"There are 4 files in the directory.",
		"Illustrations are in the docs folder.", // "ill" inside a word must not match
		"You can check the README for details.", // second person, not a deferral
		"",
	} {
		if LooksDeferred(msg) {
			t.Errorf("LooksDeferred(%q) = true, want false", msg)
		}
	}
}
