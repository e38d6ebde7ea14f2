// internal/game/claim_test.go
package game

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rigLowHearts deals low_hearts across seats A (0) and C (2) plus filler cards
// so that turn advancement always finds an eligible seat. Returns the exact
// assignment of the six low_hearts cards.
func rigLowHearts(t *testing.T, r *Room) []ClaimAssignment {
	t.Helper()
	a, c := r.Players[0], r.Players[2]
	rigHands(t, r,
		[]string{"2_hearts", "3_hearts", "4_hearts", "9_diamonds"},
		[]string{"9_clubs"},
		[]string{"5_hearts", "6_hearts", "7_hearts", "2_diamonds"},
		[]string{"J_clubs"},
	)
	return []ClaimAssignment{
		{CardID: "2_hearts", PlayerID: a.ID},
		{CardID: "3_hearts", PlayerID: a.ID},
		{CardID: "4_hearts", PlayerID: a.ID},
		{CardID: "5_hearts", PlayerID: c.ID},
		{CardID: "6_hearts", PlayerID: c.ID},
		{CardID: "7_hearts", PlayerID: c.ID},
	}
}

func assertLowHeartsStripped(t *testing.T, r *Room) {
	t.Helper()
	for idx, p := range r.Players {
		for _, c := range p.Hand {
			assert.NotEqual(t, "low_hearts", HalfSuitOf(c), "seat %d still holds %s after resolution", idx, c.ID)
		}
	}
}

func TestClaimCorrect(t *testing.T) {
	r, _ := setupStartedRoom(t, 4)
	assignments := rigLowHearts(t, r)

	result, err := r.Claim(r.Players[0].ID, "low_hearts", assignments)
	require.NoError(t, err)

	assert.Equal(t, [2]int{1, 0}, r.Scores)
	assert.Contains(t, r.ClaimedSuits, "low_hearts")
	assert.NotContains(t, r.MiddleSuits, "low_hearts")
	assertLowHeartsStripped(t, r)
	assert.Contains(t, result, "correctly claimed Low Hearts")
	assert.Contains(t, result, "Team 1 +1 point")
}

func TestClaimRightTeamWrongSeatGoesToMiddle(t *testing.T) {
	r, _ := setupStartedRoom(t, 4)
	assignments := rigLowHearts(t, r)
	// 2_hearts is truly A's; naming teammate C keeps the team right but the
	// seat wrong.
	assignments[0].PlayerID = r.Players[2].ID

	result, err := r.Claim(r.Players[0].ID, "low_hearts", assignments)
	require.NoError(t, err)

	assert.Equal(t, [2]int{0, 0}, r.Scores, "a middled half-suit never changes the score")
	assert.Contains(t, r.MiddleSuits, "low_hearts")
	assert.NotContains(t, r.ClaimedSuits, "low_hearts")
	assertLowHeartsStripped(t, r)
	assert.Contains(t, result, "Suit goes to middle")
}

func TestClaimWrongTeamScoresOpponents(t *testing.T) {
	r, _ := setupStartedRoom(t, 4)
	assignments := rigLowHearts(t, r)
	// Even one wrong-team assignment concedes the whole half-suit, no matter
	// how good the other five are.
	assignments[5].PlayerID = r.Players[1].ID

	result, err := r.Claim(r.Players[0].ID, "low_hearts", assignments)
	require.NoError(t, err)

	assert.Equal(t, [2]int{0, 1}, r.Scores)
	assert.Contains(t, r.ClaimedSuits, "low_hearts")
	assertLowHeartsStripped(t, r)
	assert.Contains(t, result, "incorrectly claimed Low Hearts")
	assert.Contains(t, result, "Team 2 +1 point")
}

func TestClaimIsTeamPrivilege(t *testing.T) {
	r, _ := setupStartedRoom(t, 4)
	assignments := rigLowHearts(t, r)

	// C is A's teammate; it is seat 0's turn, so C may claim.
	_, err := r.Claim(r.Players[2].ID, "low_hearts", assignments)
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 0}, r.Scores)
}

func TestClaimOffTurnTeamRejected(t *testing.T) {
	r, _ := setupStartedRoom(t, 4)
	assignments := rigLowHearts(t, r)

	_, err := r.Claim(r.Players[1].ID, "low_hearts", assignments)
	assert.ErrorIs(t, err, ErrNotTeamTurn)
	assert.Equal(t, [2]int{0, 0}, r.Scores)
	assert.NotEmpty(t, r.Players[0].Hand, "rejected claim must not strip cards")
}

func TestClaimValidation(t *testing.T) {
	r, _ := setupStartedRoom(t, 4)
	a := r.Players[0]
	good := rigLowHearts(t, r)

	t.Run("unknown half-suit", func(t *testing.T) {
		_, err := r.Claim(a.ID, "mid_hearts", good)
		assert.ErrorIs(t, err, ErrUnknownHalfSuit)
	})

	t.Run("short assignment list", func(t *testing.T) {
		_, err := r.Claim(a.ID, "low_hearts", good[:5])
		assert.ErrorIs(t, err, ErrIncompleteClaim)
	})

	t.Run("duplicate card", func(t *testing.T) {
		dup := append(append([]ClaimAssignment{}, good[:5]...), good[0])
		_, err := r.Claim(a.ID, "low_hearts", dup)
		assert.ErrorIs(t, err, ErrIncompleteClaim)
	})

	t.Run("card outside half-suit", func(t *testing.T) {
		bad := append(append([]ClaimAssignment{}, good[:5]...), ClaimAssignment{CardID: "9_hearts", PlayerID: a.ID})
		_, err := r.Claim(a.ID, "low_hearts", bad)
		assert.ErrorIs(t, err, ErrIncompleteClaim)
	})

	t.Run("unknown holder", func(t *testing.T) {
		bad := append([]ClaimAssignment{}, good...)
		bad[2].PlayerID = uuid.New()
		_, err := r.Claim(a.ID, "low_hearts", bad)
		assert.ErrorIs(t, err, ErrUnknownPlayer)
	})

	// None of the above may have mutated anything.
	assert.Empty(t, r.ClaimedSuits)
	assert.Empty(t, r.MiddleSuits)
	assert.Equal(t, [2]int{0, 0}, r.Scores)
	assert.Len(t, r.Players[0].Hand, 4)
}

func TestClaimResolvedSuitRejected(t *testing.T) {
	r, _ := setupStartedRoom(t, 4)
	assignments := rigLowHearts(t, r)

	_, err := r.Claim(r.Players[0].ID, "low_hearts", assignments)
	require.NoError(t, err)

	_, err = r.Claim(r.Players[0].ID, "low_hearts", assignments)
	assert.ErrorIs(t, err, ErrSuitResolved)
	assert.Equal(t, [2]int{1, 0}, r.Scores, "a half-suit resolves at most once")
}

func TestClaimMissingCardForcesIncorrectOutcome(t *testing.T) {
	r, _ := setupStartedRoom(t, 4)
	assignments := rigLowHearts(t, r)
	// Simulate an anomaly: a low_hearts card has vanished from circulation
	// without the suit being resolved. The claim must break, not match.
	a := r.Players[0]
	kept := a.Hand[:0]
	for _, c := range a.Hand {
		if c.ID != "2_hearts" {
			kept = append(kept, c)
		}
	}
	a.Hand = kept

	_, err := r.Claim(a.ID, "low_hearts", assignments)
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 1}, r.Scores, "holderless card scores the half-suit to the opponents")
	assert.Contains(t, r.ClaimedSuits, "low_hearts")
}

func TestClaimAdvancesTurnPastEmptyHands(t *testing.T) {
	r, _ := setupStartedRoom(t, 4)
	a, c := r.Players[0], r.Players[2]
	// A and C hold nothing but low_hearts; after resolution both are
	// empty-handed, so the turn must move to seat 1.
	rigHands(t, r,
		[]string{"2_hearts", "3_hearts", "4_hearts"},
		[]string{"9_clubs"},
		[]string{"5_hearts", "6_hearts", "7_hearts"},
		[]string{"J_clubs"},
	)
	assignments := []ClaimAssignment{
		{CardID: "2_hearts", PlayerID: a.ID},
		{CardID: "3_hearts", PlayerID: a.ID},
		{CardID: "4_hearts", PlayerID: a.ID},
		{CardID: "5_hearts", PlayerID: c.ID},
		{CardID: "6_hearts", PlayerID: c.ID},
		{CardID: "7_hearts", PlayerID: c.ID},
	}

	_, err := r.Claim(a.ID, "low_hearts", assignments)
	require.NoError(t, err)
	assert.Equal(t, 1, r.CurrentTurn)
}

func TestGameEndsExactlyAtEightResolutions(t *testing.T) {
	r, _ := setupStartedRoom(t, 4)
	a := r.Players[0]

	for i, info := range HalfSuits {
		// A holds the whole half-suit; the other seats hold filler from a
		// different half-suit so turn advancement always finds a seat.
		filler := cardIDsOf(HalfSuits[(i+1)%len(HalfSuits)].Name)
		rigHands(t, r,
			cardIDsOf(info.Name),
			[]string{filler[0]},
			[]string{filler[1]},
			[]string{filler[2]},
		)
		r.CurrentTurn = 0

		assignments := make([]ClaimAssignment, 0, 6)
		for _, c := range CardsOf(info.Name) {
			assignments = append(assignments, ClaimAssignment{CardID: c.ID, PlayerID: a.ID})
		}
		_, err := r.Claim(a.ID, info.Name, assignments)
		require.NoError(t, err)

		if i < len(HalfSuits)-1 {
			assert.False(t, hasGameOverLog(r), "game must not end before all 8 half-suits resolve")
		}
	}

	assert.Equal(t, 8, len(r.ClaimedSuits)+len(r.MiddleSuits))
	assert.True(t, hasGameOverLog(r))
	last := r.Log[len(r.Log)-1]
	assert.Contains(t, last.Message, "Team 1 wins")
	assert.Contains(t, last.Message, "Final score: 8 - 0")
}

func cardIDsOf(halfSuitName string) []string {
	ids := []string{}
	for _, c := range CardsOf(halfSuitName) {
		ids = append(ids, c.ID)
	}
	return ids
}

func hasGameOverLog(r *Room) bool {
	for _, e := range r.Log {
		if strings.HasPrefix(e.Message, "Game Over!") {
			return true
		}
	}
	return false
}
