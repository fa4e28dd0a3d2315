package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soclens/pkg/contracts/domain"
)

func occRecord(code, title, state string, emp, aMean, hMean *float64) domain.OccupationRecord {
	return domain.OccupationRecord{
		OccCode:   code,
		OccTitle:  title,
		PrimState: state,
		TotEmp:    emp,
		AMean:     aMean,
		HMean:     hMean,
	}
}

func TestStateAggregates(t *testing.T) {
	records := []domain.OccupationRecord{
		occRecord("29-1141", "registered nurses", "md", fp(100), fp(50000), fp(24)),
		occRecord("29-1141", "registered nurses", "md", fp(50), fp(60000), nil),
		occRecord("29-1141", "registered nurses", "va", fp(200), fp(55000), fp(26)),
		occRecord("11-1011", "chief executives", "md", nil, fp(210000), fp(101)),
	}

	got := StateAggregates(records)
	require.Len(t, got, 3)

	// Sorted by occ_code then state.
	assert.Equal(t, "11-1011", got[0].OccCode)
	assert.Equal(t, "29-1141", got[1].OccCode)
	assert.Equal(t, "md", got[1].PrimState)
	assert.Equal(t, "va", got[2].PrimState)

	// Duplicate md rows: employment summed, wages simple-averaged.
	md := got[1]
	assert.Equal(t, 150.0, md.TotEmp)
	require.NotNil(t, md.AvgAMean)
	assert.InDelta(t, 55000, *md.AvgAMean, 1e-9)
	// Hourly mean skips the nil row instead of treating it as zero.
	require.NotNil(t, md.AvgHMean)
	assert.InDelta(t, 24, *md.AvgHMean, 1e-9)

	// Nil employment sums as zero, wage still averaged.
	ceo := got[0]
	assert.Equal(t, 0.0, ceo.TotEmp)
	require.NotNil(t, ceo.AvgAMean)
	assert.InDelta(t, 210000, *ceo.AvgAMean, 1e-9)
}

func TestStateAggregatesTitleDeterministic(t *testing.T) {
	records := []domain.OccupationRecord{
		occRecord("29-1141", "registered nurses (b)", "md", fp(1), nil, nil),
		occRecord("29-1141", "", "md", fp(1), nil, nil),
		occRecord("29-1141", "registered nurses (a)", "md", fp(1), nil, nil),
	}

	got := StateAggregates(records)
	require.Len(t, got, 1)
	assert.Equal(t, "registered nurses (a)", got[0].OccTitle)

	// Input order must not matter.
	reversed := []domain.OccupationRecord{records[2], records[1], records[0]}
	again := StateAggregates(reversed)
	assert.Equal(t, got, again)
}

func TestWeightedAggregates(t *testing.T) {
	tests := []struct {
		name       string
		records    []domain.OccupationRecord
		wantTotEmp float64
		wantAMean  *float64
		wantPerRow *float64
	}{
		{
			// (50000*100 + 60000*200) / 300 = 56666.67
			name: "two states weighted by employment",
			records: []domain.OccupationRecord{
				occRecord("29-1141", "registered nurses", "md", fp(100), fp(50000), nil),
				occRecord("29-1141", "registered nurses", "va", fp(200), fp(60000), nil),
			},
			wantTotEmp: 300,
			wantAMean:  fp(56666.666666666664),
			wantPerRow: fp(150),
		},
		{
			name: "all employments nil yields nil weighted wage",
			records: []domain.OccupationRecord{
				occRecord("29-1141", "registered nurses", "md", nil, fp(50000), nil),
				occRecord("29-1141", "registered nurses", "va", nil, fp(60000), nil),
			},
			wantTotEmp: 0,
			wantAMean:  nil,
			wantPerRow: nil,
		},
		{
			name: "zero employment excluded from weighting",
			records: []domain.OccupationRecord{
				occRecord("29-1141", "registered nurses", "md", fp(0), fp(50000), nil),
				occRecord("29-1141", "registered nurses", "va", fp(200), fp(60000), nil),
			},
			wantTotEmp: 200,
			wantAMean:  fp(60000),
			wantPerRow: fp(100),
		},
		{
			name: "nil wage row contributes to neither sum nor count",
			records: []domain.OccupationRecord{
				occRecord("29-1141", "registered nurses", "md", fp(100), fp(50000), nil),
				occRecord("29-1141", "registered nurses", "va", fp(400), nil, nil),
			},
			wantTotEmp: 500,
			wantAMean:  fp(50000),
			wantPerRow: fp(250),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedAggregates(tt.records)
			require.Len(t, got, 1)
			agg := got[0]

			assert.Equal(t, tt.wantTotEmp, agg.TotEmp)
			if tt.wantAMean == nil {
				assert.Nil(t, agg.WeightedAMean)
			} else {
				require.NotNil(t, agg.WeightedAMean)
				assert.InDelta(t, *tt.wantAMean, *agg.WeightedAMean, 1e-6)
			}
			if tt.wantPerRow == nil {
				assert.Nil(t, agg.AvgEmpPerRow)
			} else {
				require.NotNil(t, agg.AvgEmpPerRow)
				assert.InDelta(t, *tt.wantPerRow, *agg.AvgEmpPerRow, 1e-9)
			}
		})
	}
}

func TestWeightedAggregatesGroupsAcrossStates(t *testing.T) {
	records := []domain.OccupationRecord{
		occRecord("29-1141", "registered nurses", "md", fp(100), fp(50000), fp(24)),
		occRecord("29-1141", "registered nurses", "va", fp(200), fp(60000), fp(30)),
		occRecord("11-1011", "chief executives", "md", fp(10), fp(210000), nil),
	}

	got := WeightedAggregates(records)
	require.Len(t, got, 2)
	assert.Equal(t, "11-1011", got[0].OccCode)
	assert.Equal(t, "29-1141", got[1].OccCode)

	rn := got[1]
	require.NotNil(t, rn.WeightedHMean)
	// (24*100 + 30*200) / 300 = 28
	assert.InDelta(t, 28, *rn.WeightedHMean, 1e-9)
}

func TestSimpleMeanSkipsNils(t *testing.T) {
	// A textual "n/a" coerces to nil and must be excluded from both the
	// sum and the count used in averaging.
	values := []*float64{fp(10), ParseMeasure("n/a"), fp(20)}
	got := simpleMean(values)
	require.NotNil(t, got)
	assert.InDelta(t, 15, *got, 1e-9)

	assert.Nil(t, simpleMean([]*float64{nil, ParseMeasure("*")}))
	assert.Nil(t, simpleMean(nil))
}
