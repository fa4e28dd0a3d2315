package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soclens/pkg/contracts/domain"
)

func wageRow(soc string, aMean *float64) domain.ClosestWageRow {
	return domain.ClosestWageRow{SOCCode: soc, AMean: aMean}
}

func TestAverageWageByMajorGroup(t *testing.T) {
	rows := []domain.ClosestWageRow{
		wageRow("29-1141.01", fp(90000)),
		wageRow("29-1141.04", fp(110000)),
		wageRow("11-1011.00", fp(210000)),
		wageRow("11-1011.00", nil), // skipped, not zero
		wageRow("bogus", fp(1)),    // no major group
	}

	got := AverageWageByMajorGroup(rows)
	require.Len(t, got, 2)

	assert.Equal(t, "11", got[0].MajorGroup)
	assert.Equal(t, 210000.0, got[0].AvgAMean)
	assert.Equal(t, "29", got[1].MajorGroup)
	assert.Equal(t, 100000.0, got[1].AvgAMean)
}

func TestCountReleaseFlags(t *testing.T) {
	records := []domain.OccupationRecord{
		{Annual: "true", Hourly: "true"},
		{Annual: "TRUE", Hourly: ""},
		{Annual: "false", Hourly: "1"},
		{Annual: "", Hourly: ""},
	}

	got := CountReleaseFlags(records, DefaultTruthySet())
	assert.Equal(t, 2, got.Annual)
	assert.Equal(t, 2, got.Hourly)
	assert.Equal(t, 1, got.Both)

	custom := CountReleaseFlags(records, NewTruthySet("false"))
	assert.Equal(t, 1, custom.Annual)
	assert.Equal(t, 0, custom.Hourly)
}

func TestTopCodesByWage(t *testing.T) {
	rows := []domain.ClosestWageRow{
		wageRow("11-1011.00", fp(210000)),
		wageRow("29-1141.04", fp(110000)),
		wageRow("29-1141.01", fp(90000)),
		wageRow("29-1141.01", fp(90000)), // duplicate skill rows average out
		wageRow("15-1252.00", nil),       // no wage, excluded
	}

	got := TopCodesByWage(rows, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "11-1011.00", got[0].SOCCode)
	assert.Equal(t, "29-1141.04", got[1].SOCCode)

	all := TopCodesByWage(rows, 0)
	assert.Len(t, all, 3)

	// Ties break by code ascending.
	tied := TopCodesByWage([]domain.ClosestWageRow{
		wageRow("29-1141.04", fp(100)),
		wageRow("29-1141.01", fp(100)),
	}, 0)
	require.Len(t, tied, 2)
	assert.Equal(t, "29-1141.01", tied[0].SOCCode)
}
