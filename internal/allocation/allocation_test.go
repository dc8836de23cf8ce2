package allocation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	alice = Friend{ID: "f-alice", Name: "Alice"}
	bob   = Friend{ID: "f-bob", Name: "Bob"}
	carol = Friend{ID: "f-carol", Name: "Carol"}
)

// amounts flattens allocations into friend ID -> "0.00" strings, plus the order.
func amounts(allocs []FriendAllocation) (map[string]string, []string) {
	byID := make(map[string]string, len(allocs))
	order := make([]string, len(allocs))
	for i, a := range allocs {
		byID[a.FriendID] = a.AmountToPay.StringFixed(2)
		order[i] = a.FriendID
	}
	return byID, order
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name      string
		snapshot  Snapshot
		want      map[string]string
		wantOrder []string
	}{
		{
			name: "percentage tax is applied directly",
			snapshot: Snapshot{
				Total:        d("108"),
				Tax:          Percentage{Rate: d("8")},
				Participants: []Friend{alice},
				Lines:        []LineAllocation{{Amount: d("100"), FriendIDs: []string{alice.ID}}},
			},
			want: map[string]string{alice.ID: "108.00"},
		},
		{
			name: "flat tax converts to a rate",
			snapshot: Snapshot{
				Total:        d("110"),
				Tax:          FlatAmount{Amount: d("10")},
				Participants: []Friend{alice},
				Lines:        []LineAllocation{{Amount: d("100"), FriendIDs: []string{alice.ID}}},
			},
			want: map[string]string{alice.ID: "110.00"},
		},
		{
			name: "flat tax is shared proportionally",
			snapshot: Snapshot{
				Total:        d("33"),
				Tax:          FlatAmount{Amount: d("3")},
				Participants: []Friend{alice, bob},
				Lines: []LineAllocation{
					{Amount: d("20"), FriendIDs: []string{alice.ID}},
					{Amount: d("10"), FriendIDs: []string{bob.ID}},
				},
			},
			want: map[string]string{alice.ID: "22.00", bob.ID: "11.00"},
		},
		{
			name: "flat tax with non-positive subtotal means no tax",
			snapshot: Snapshot{
				Total:        d("5"),
				Tax:          FlatAmount{Amount: d("10")},
				Participants: []Friend{alice},
				Lines:        []LineAllocation{{Amount: d("5"), FriendIDs: []string{alice.ID}}},
			},
			want: map[string]string{alice.ID: "5.00"},
		},
		{
			name: "flat tax excludes an included tip from the subtotal",
			snapshot: Snapshot{
				Total:               d("125"),
				Tax:                 FlatAmount{Amount: d("10")},
				Tip:                 d("15"),
				TipsIncludedInTotal: true,
				Participants:        []Friend{alice},
				Lines:               []LineAllocation{{Amount: d("100"), FriendIDs: []string{alice.ID}}},
			},
			want: map[string]string{alice.ID: "125.00"},
		},
		{
			name: "co-assigned friends each pay the full line amount",
			snapshot: Snapshot{
				Total:        d("24"),
				Participants: []Friend{alice, bob},
				Lines:        []LineAllocation{{Amount: d("12"), FriendIDs: []string{alice.ID, bob.ID}}},
			},
			want: map[string]string{alice.ID: "12.00", bob.ID: "12.00"},
		},
		{
			name: "duplicate friend on one line is charged once",
			snapshot: Snapshot{
				Total:        d("12"),
				Participants: []Friend{alice},
				Lines:        []LineAllocation{{Amount: d("12"), FriendIDs: []string{alice.ID, alice.ID}}},
			},
			want: map[string]string{alice.ID: "12.00"},
		},
		{
			name: "participant without items pays only the tip share",
			snapshot: Snapshot{
				Total:        d("20"),
				Tip:          d("10"),
				Participants: []Friend{alice, carol},
				Lines:        []LineAllocation{{Amount: d("20"), FriendIDs: []string{alice.ID}}},
			},
			want:      map[string]string{alice.ID: "25.00", carol.ID: "5.00"},
			wantOrder: []string{alice.ID, carol.ID},
		},
		{
			name: "tip included in total is removed before reconciling",
			snapshot: Snapshot{
				Total:               d("30"),
				Tip:                 d("10"),
				TipsIncludedInTotal: true,
				Participants:        []Friend{alice, carol},
				Lines:               []LineAllocation{{Amount: d("20"), FriendIDs: []string{alice.ID}}},
			},
			want: map[string]string{alice.ID: "25.00", carol.ID: "5.00"},
		},
		{
			name: "gap within one cent is left alone",
			snapshot: Snapshot{
				Total:        d("80.01"),
				Participants: []Friend{alice, bob},
				Lines: []LineAllocation{
					{Amount: d("50"), FriendIDs: []string{alice.ID}},
					{Amount: d("30"), FriendIDs: []string{bob.ID}},
				},
			},
			want: map[string]string{alice.ID: "50.00", bob.ID: "30.00"},
		},
		{
			name: "gap within tolerance goes to the last friend",
			snapshot: Snapshot{
				Total:        d("81.50"),
				Participants: []Friend{alice, bob},
				Lines: []LineAllocation{
					{Amount: d("50"), FriendIDs: []string{alice.ID}},
					{Amount: d("30"), FriendIDs: []string{bob.ID}},
				},
			},
			want:      map[string]string{alice.ID: "50.00", bob.ID: "31.50"},
			wantOrder: []string{alice.ID, bob.ID},
		},
		{
			name: "negative gap within tolerance is taken from the last friend",
			snapshot: Snapshot{
				Total:        d("78"),
				Participants: []Friend{alice, bob},
				Lines: []LineAllocation{
					{Amount: d("30"), FriendIDs: []string{bob.ID}},
					{Amount: d("50"), FriendIDs: []string{alice.ID}},
				},
			},
			want:      map[string]string{bob.ID: "30.00", alice.ID: "48.00"},
			wantOrder: []string{bob.ID, alice.ID},
		},
		{
			name: "adjustment skips participants without items",
			snapshot: Snapshot{
				Total:        d("21"),
				Participants: []Friend{alice, carol},
				Lines:        []LineAllocation{{Amount: d("20"), FriendIDs: []string{alice.ID}}},
			},
			want: map[string]string{alice.ID: "21.00", carol.ID: "0.00"},
		},
		{
			name: "order is first seen on lines then remaining participants",
			snapshot: Snapshot{
				Total:        d("15"),
				Tip:          d("3"),
				Participants: []Friend{carol, alice, bob},
				Lines: []LineAllocation{
					{Amount: d("10"), FriendIDs: []string{bob.ID}},
					{Amount: d("5"), FriendIDs: []string{alice.ID}},
				},
			},
			want:      map[string]string{bob.ID: "11.00", alice.ID: "6.00", carol.ID: "1.00"},
			wantOrder: []string{bob.ID, alice.ID, carol.ID},
		},
		{
			name: "rounds half away from zero",
			snapshot: Snapshot{
				Total:        d("0.125"),
				Participants: []Friend{alice},
				Lines:        []LineAllocation{{Amount: d("0.125"), FriendIDs: []string{alice.ID}}},
			},
			want: map[string]string{alice.ID: "0.13"},
		},
		{
			name: "tip only receipt splits evenly",
			snapshot: Snapshot{
				Total:               d("10"),
				Tip:                 d("10"),
				TipsIncludedInTotal: true,
				Participants:        []Friend{alice, bob, carol},
			},
			want: map[string]string{alice.ID: "3.33", bob.ID: "3.33", carol.ID: "3.33"},
		},
		{
			name:     "empty snapshot",
			snapshot: Snapshot{},
			want:     map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := Allocate(tt.snapshot)
			require.NoError(t, err)
			require.True(t, outcome.OK(), "unexpected mismatch: %v", outcome.Mismatch)

			got, order := amounts(outcome.Allocations)
			assert.Equal(t, tt.want, got)
			if tt.wantOrder != nil {
				assert.Equal(t, tt.wantOrder, order)
			}
		})
	}
}

func TestAllocate_EchoesNames(t *testing.T) {
	outcome, err := Allocate(Snapshot{
		Total:        d("10"),
		Participants: []Friend{alice, bob},
		Lines:        []LineAllocation{{Amount: d("10"), FriendIDs: []string{bob.ID}}},
	})
	require.NoError(t, err)
	require.Len(t, outcome.Allocations, 2)
	assert.Equal(t, "Bob", outcome.Allocations[0].Name)
	assert.Equal(t, "Alice", outcome.Allocations[1].Name)
}

func TestAllocate_Mismatch(t *testing.T) {
	outcome, err := Allocate(Snapshot{
		Total:        d("1000"),
		Tax:          Percentage{Rate: d("0")},
		Participants: []Friend{alice},
		Lines:        []LineAllocation{{Amount: d("1"), FriendIDs: []string{alice.ID}}},
	})
	require.NoError(t, err)
	require.False(t, outcome.OK())
	assert.Empty(t, outcome.Allocations)

	m := outcome.Mismatch
	assert.Equal(t, "1.00", m.CalculatedTotal.StringFixed(2))
	assert.Equal(t, "1000.00", m.ExpectedTotal.StringFixed(2))
	assert.Equal(t, "999.00", m.Difference.StringFixed(2))
	assert.Equal(t, "3.00", m.Tolerance.StringFixed(2))
	assert.Contains(t, m.String(), "differs from expected 1000.00")
}

func TestAllocate_MismatchJustOverTolerance(t *testing.T) {
	outcome, err := Allocate(Snapshot{
		Total:        d("83.01"),
		Participants: []Friend{alice},
		Lines:        []LineAllocation{{Amount: d("80"), FriendIDs: []string{alice.ID}}},
	})
	require.NoError(t, err)
	require.NotNil(t, outcome.Mismatch)
	assert.Equal(t, "3.01", outcome.Mismatch.Difference.StringFixed(2))
}

func TestAllocate_UnknownFriend(t *testing.T) {
	_, err := Allocate(Snapshot{
		Total:        d("10"),
		Participants: []Friend{alice},
		Lines:        []LineAllocation{{Amount: d("10"), FriendIDs: []string{"f-stranger"}}},
	})
	require.ErrorIs(t, err, ErrUnknownFriend)
	assert.Contains(t, err.Error(), "f-stranger")
}

func TestAllocate_ConservesPreTipTotal(t *testing.T) {
	snapshot := Snapshot{
		Total:        d("55.24"),
		Tax:          Percentage{Rate: d("8.875")},
		Participants: []Friend{alice, bob, carol},
		Lines: []LineAllocation{
			{Amount: d("12.99"), FriendIDs: []string{alice.ID}},
			{Amount: d("9.50"), FriendIDs: []string{bob.ID}},
			{Amount: d("7.25"), FriendIDs: []string{carol.ID, alice.ID}},
			{Amount: d("13.75"), FriendIDs: []string{carol.ID}},
		},
	}

	outcome, err := Allocate(snapshot)
	require.NoError(t, err)
	require.True(t, outcome.OK())

	sum := decimal.Zero
	for _, a := range outcome.Allocations {
		sum = sum.Add(a.AmountToPay)
	}
	assert.True(t, sum.Sub(snapshot.Total).Abs().LessThanOrEqual(d("0.01")),
		"sum %s should match total %s", sum, snapshot.Total)
}

func TestAllocate_TipSharesSumToTip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		participants := make([]Friend, n)
		for i := range participants {
			participants[i] = Friend{ID: string(rune('a' + i))}
		}
		tip := d("20")

		outcome, err := Allocate(Snapshot{
			Total:               tip,
			Tip:                 tip,
			TipsIncludedInTotal: true,
			Participants:        participants,
		})
		require.NoError(t, err)
		require.Len(t, outcome.Allocations, n)

		share := tip.Div(decimal.NewFromInt(int64(n))).Round(2)
		sum := decimal.Zero
		for _, a := range outcome.Allocations {
			assert.True(t, share.Equal(a.AmountToPay), "n=%d: got %s want %s", n, a.AmountToPay, share)
			sum = sum.Add(a.AmountToPay)
		}
		assert.True(t, sum.Equal(share.Mul(decimal.NewFromInt(int64(n)))))
	}
}

func TestParseTaxSpec(t *testing.T) {
	spec, err := ParseTaxSpec(TaxTypePercentage, d("8"))
	require.NoError(t, err)
	assert.Equal(t, Percentage{Rate: d("8")}, spec)

	spec, err = ParseTaxSpec(TaxTypeAmount, d("2.50"))
	require.NoError(t, err)
	assert.Equal(t, FlatAmount{Amount: d("2.50")}, spec)

	_, err = ParseTaxSpec("vat", d("1"))
	require.ErrorIs(t, err, ErrUnknownTaxType)
}
