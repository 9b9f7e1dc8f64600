package llm

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
)

func TestBuildSectionPrompt(t *testing.T) {
	text := strings.Repeat("a", SectionTextLimit) + "TAIL"
	p := BuildSectionPrompt(constants.Liability, "Patta", text)

	assert.True(t, strings.HasPrefix(p, "You are a legal contract analyst. Analyze the following contract document for liability & indemnification information."))
	assert.Contains(t, p, "Contract Type: Patta\n")
	assert.Contains(t, p, "Section: Liability & Indemnification\n")
	assert.Contains(t, p, "Description: Liability limits, indemnification, and insurance requirements\n")
	for _, prefix := range []string{"CONTENT:", "ALERTS:", "CONFIDENCE:", "HAS_CONTENT:"} {
		assert.Contains(t, p, "\n"+prefix)
	}
	assert.NotContains(t, p, "TAIL")
}

func TestBuildSectionPrompt_Emphasis(t *testing.T) {
	assert.Contains(t, BuildSectionPrompt(constants.Compliance, "Patta", "x"), "Priority: High (key section for Patta documents)\n")
	assert.NotContains(t, BuildSectionPrompt(constants.Payment, "Patta", "x"), "Priority:")
	assert.Contains(t, BuildSectionPrompt(constants.Payment, "", "x"), "Priority: High")
	assert.NotContains(t, BuildSectionPrompt(constants.Compliance, "Lease", "x"), "Priority:")
}

func TestBuildSectionPrompt_DefaultType(t *testing.T) {
	assert.Contains(t, BuildSectionPrompt(constants.Payment, "", "x"), "Contract Type: default\n")
}

func TestBuildChatPrompt(t *testing.T) {
	rec := entity.DocumentRecord{DocumentType: "Patta", Owner: "Selvi", District: "Madurai"}
	p := BuildChatPrompt("  who owns it? ", rec, strings.Repeat("b", ChatTextLimit+10))

	assert.Contains(t, p, "- Owner: Selvi\n")
	assert.Contains(t, p, "- Survey Number: Unknown\n")
	assert.Contains(t, p, "- Location: Madurai, Unknown, Unknown\n")
	assert.Contains(t, p, strings.Repeat("b", ChatTextLimit)+"...")
	assert.NotContains(t, p, strings.Repeat("b", ChatTextLimit+1))
	assert.Contains(t, p, "User Question: who owns it?\n")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "நி", Truncate("நிலம்", 2))
}

type stubGen struct{ calls []time.Time }

func (s *stubGen) Generate(context.Context, string, Params) (string, error) {
	s.calls = append(s.calls, time.Now())
	return "ok", nil
}

func (s *stubGen) Model() string { return "stub" }

func TestThrottled_SpacesCalls(t *testing.T) {
	g := &stubGen{}
	th := NewThrottled(g, 50*time.Millisecond)

	for i := 0; i < 3; i++ {
		out, err := th.Generate(context.Background(), "p", ChatParams)
		require.NoError(t, err)
		assert.Equal(t, "ok", out)
	}
	require.Len(t, g.calls, 3)
	assert.GreaterOrEqual(t, g.calls[2].Sub(g.calls[0]), 90*time.Millisecond)
	assert.Equal(t, "stub", th.Model())
}

func TestThrottled_HonoursContext(t *testing.T) {
	th := NewThrottled(&stubGen{}, time.Hour)
	_, err := th.Generate(context.Background(), "p", ChatParams)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = th.Generate(ctx, "p", ChatParams)
	assert.Error(t, err)
}
