package pool

import (
	"errors"
	"testing"

	"github.com/AdamBeresnev/draft-pool/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDuplicates(t *testing.T) {
	testCases := []struct {
		name     string
		picks    PickMap
		expected []int
	}{
		{
			name:     "one repeated player",
			picks:    PickMap{1: "X", 2: "Y", 3: "X"},
			expected: []int{1, 3},
		},
		{
			name:     "no repeats",
			picks:    PickMap{1: "X", 2: "Y"},
			expected: nil,
		},
		{
			name:     "blanks are never duplicates",
			picks:    PickMap{1: "", 2: "", 3: "X", 4: ""},
			expected: nil,
		},
		{
			name:     "two repeated players",
			picks:    PickMap{3: "A", 7: "A", 9: "B", 12: "B", 14: "B", 20: "C"},
			expected: []int{3, 7, 9, 12, 14},
		},
		{
			name:     "empty map",
			picks:    PickMap{},
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FindDuplicates(tc.picks))
		})
	}
}

func TestFindInvalidNames(t *testing.T) {
	c := catalog.New([]string{"Cam Ward, QB (Miami)", "Abdul Carter, LB (Penn State)"})

	invalid := FindInvalidNames(PickMap{
		1: "Cam Ward, QB (Miami)",
		2: "Nobody",
		3: "",
		5: "cam ward, qb (miami)",
	}, c)

	assert.Equal(t, []InvalidPick{
		{PickNumber: 2, Name: "Nobody"},
		{PickNumber: 5, Name: "cam ward, qb (miami)"},
	}, invalid)

	assert.Empty(t, FindInvalidNames(PickMap{1: "Abdul Carter, LB (Penn State)", 2: ""}, c))
}

func TestParseTiebreaker(t *testing.T) {
	n, err := ParseTiebreaker("")
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = ParseTiebreaker(" 42 ")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 42, *n)

	n, err = ParseTiebreaker("0")
	require.NoError(t, err)
	assert.Equal(t, 0, *n)

	for _, raw := range []string{"-1", "+5", "abc", "1.5", "12a"} {
		_, err := ParseTiebreaker(raw)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), raw)
		assert.Equal(t, MsgInvalidTiebreaker, verr.Message)
	}
}

func TestValidateSubmission_Precedence(t *testing.T) {
	c := catalog.Default()
	valid := "Cam Ward, QB (Miami)"

	testCases := []struct {
		name       string
		submission Submission
		message    string
		duplicates []int
	}{
		{
			name: "tiebreaker is checked before duplicates",
			submission: Submission{
				EntrantName: "Alice",
				Tiebreaker:  "lots",
				Picks:       PickMap{3: valid, 7: valid},
			},
			message: MsgInvalidTiebreaker,
		},
		{
			name: "duplicates hide off-catalog names",
			submission: Submission{
				EntrantName: "Alice",
				Picks:       PickMap{1: "Made Up Guy", 3: valid, 7: valid},
			},
			message:    MsgDuplicatePicks,
			duplicates: []int{3, 7},
		},
		{
			name: "lowest off-catalog pick is reported",
			submission: Submission{
				EntrantName: "Alice",
				Picks:       PickMap{9: "Second Fake", 2: "First Fake", 1: valid},
			},
			message: "'First Fake' is not in the official suggestions. Please select only from the list.",
		},
		{
			name: "name is checked last",
			submission: Submission{
				EntrantName: "   ",
				Picks:       PickMap{1: valid},
			},
			message: MsgNameRequired,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSubmission(tc.submission, c)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.message, verr.Message)
			assert.Equal(t, tc.duplicates, verr.Duplicates)
		})
	}

	err := ValidateSubmission(Submission{EntrantName: "Alice", Tiebreaker: "250", Picks: PickMap{1: valid, 2: ""}}, c)
	assert.NoError(t, err)
}

func TestPoints(t *testing.T) {
	assert.Equal(t, 5, Points(5, "X", "X"))
	assert.Equal(t, 0, Points(5, "X", "Y"))
	assert.Equal(t, 0, Points(5, "", ""))
	assert.Equal(t, 0, Points(5, "X", ""))
}

func TestDisplayName(t *testing.T) {
	team := "Sharks"
	empty := ""
	assert.Equal(t, "Alice (Sharks)", (&Entrant{Name: "Alice", TeamName: &team}).DisplayName())
	assert.Equal(t, "Bob", (&Entrant{Name: "Bob", TeamName: &empty}).DisplayName())
	assert.Equal(t, "Carl", (&Entrant{Name: "Carl"}).DisplayName())
}

func TestAdminContext(t *testing.T) {
	var none AdminContext
	assert.False(t, none.Granted())
	assert.True(t, GrantAdmin().Granted())
}

func TestValidateActualPick(t *testing.T) {
	c := catalog.New([]string{"Cam Ward, QB (Miami)"})

	assert.NoError(t, ValidateActualPick(1, "Cam Ward, QB (Miami)", c))
	assert.NoError(t, ValidateActualPick(32, "Cam Ward, QB (Miami)", c))

	testCases := []struct {
		pick    int
		player  string
		message string
	}{
		{0, "Cam Ward, QB (Miami)", MsgPickOutOfRange},
		{33, "Cam Ward, QB (Miami)", MsgPickOutOfRange},
		{5, "", MsgPlayerRequired},
		{5, "Someone Else", "'Someone Else' is not in the official suggestions. Please select only from the list."},
	}
	for _, tc := range testCases {
		err := ValidateActualPick(tc.pick, tc.player, c)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, tc.message, verr.Message)
	}
}
