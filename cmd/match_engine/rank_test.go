package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRank_RequiresTarget(t *testing.T) {
	rankCandidateID = ""
	rankJobID = ""

	err := runRank(testCmd(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either --candidate or --job")
}

func TestRunRank_MutuallyExclusive(t *testing.T) {
	rankCandidateID = "00000000-0000-0000-0000-000000000001"
	rankJobID = "00000000-0000-0000-0000-000000000002"
	defer func() { rankCandidateID, rankJobID = "", "" }()

	err := runRank(testCmd(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}
