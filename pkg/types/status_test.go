package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkStatusDestinationExists(t *testing.T) {
	tests := []struct {
		status LinkStatus
		exists bool
	}{
		{StatusMissingInRepo, false},
		{StatusNotLinked, false},
		{StatusAlreadyLinked, false},
		{StatusLinksElsewhere, true},
		{StatusBrokenLink, true},
		{StatusFileExists, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.exists, tt.status.DestinationExists())
		})
	}
}

func TestLinkStatusLabels(t *testing.T) {
	assert.Equal(t, "Linked", StatusAlreadyLinked.Label())
	assert.Equal(t, "Broken link", StatusBrokenLink.Label())
	assert.Equal(t, "unknown", LinkStatus(99).String())
}

func TestChoice(t *testing.T) {
	assert.True(t, ChoiceYes.Approved())
	assert.True(t, ChoiceAll.Approved())
	assert.False(t, ChoiceNo.Approved())
	assert.Equal(t, "all", ChoiceAll.String())
}

func TestDotfileEntryValidation(t *testing.T) {
	full := DotfileEntry{Source: "zsh/zshrc", Destination: ".zshrc", Description: "zsh config"}
	assert.True(t, full.Valid())
	assert.Empty(t, full.MissingFields())
	assert.Equal(t, "zsh/zshrc -> ~/.zshrc", full.String())

	abs := DotfileEntry{Source: "hosts", Destination: "/etc/hosts", Description: "hosts"}
	assert.Equal(t, "hosts -> /etc/hosts", abs.String())
	tilde := DotfileEntry{Source: "x", Destination: "~/.x", Description: "x"}
	assert.Equal(t, "~/.x", tilde.DisplayDestination())

	partial := DotfileEntry{Source: "vim/vimrc"}
	assert.False(t, partial.Valid())
	assert.Equal(t, []string{"destination", "description"}, partial.MissingFields())
}

func TestSummaryCounts(t *testing.T) {
	s := Summary{
		Attempted: 4,
		Linked:    2,
		Outcomes: []Outcome{
			{Index: 1, Result: ResultLinked},
			{Index: 2, Result: ResultAlreadyLinked},
			{Index: 3, Result: ResultSkipped},
			{Index: 4, Result: ResultFailed},
		},
	}

	assert.Equal(t, 1, s.Count(ResultSkipped))
	failed := s.Failed()
	assert.Len(t, failed, 1)
	assert.Equal(t, 4, failed[0].Index)
	assert.True(t, ResultAlreadyLinked.Succeeded())
	assert.False(t, ResultSkipped.Succeeded())
	assert.Equal(t, "failed", Result(42).String())
}
