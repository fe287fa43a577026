package rollup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func targetCfg() TargetConfig {
	return TargetConfig{HoursPerDay: 8, IncludeWeekends: false}
}

func TestDayTarget(t *testing.T) {
	cfg := targetCfg()

	assert.Equal(t, 8.0, cfg.DayTarget(day(2026, 2, 4))) // Wednesday
	assert.Equal(t, 0.0, cfg.DayTarget(day(2026, 2, 7))) // Saturday
	assert.Equal(t, 0.0, cfg.DayTarget(day(2026, 2, 8))) // Sunday

	cfg.IncludeWeekends = true
	assert.Equal(t, 8.0, cfg.DayTarget(day(2026, 2, 7)))
}

func TestDayTarget_NonWorkingDays(t *testing.T) {
	cfg := targetCfg()
	cfg.NonWorkingDays = map[string]bool{"2026-02-04": true}

	assert.Equal(t, 0.0, cfg.DayTarget(day(2026, 2, 4)))
	assert.Equal(t, 8.0, cfg.DayTarget(day(2026, 2, 5)))
}

func TestPeriodTarget(t *testing.T) {
	cfg := targetCfg()
	// Mon 2026-02-02 .. Sun 2026-02-08: five working days.
	period := PeriodRollup{Start: day(2026, 2, 2), End: day(2026, 2, 8), Days: 7}

	hours, days := cfg.PeriodTarget(period)
	assert.Equal(t, 40.0, hours)
	assert.Equal(t, 5, days)

	cfg.IncludeWeekends = true
	hours, days = cfg.PeriodTarget(period)
	assert.Equal(t, 56.0, hours)
	assert.Equal(t, 7, days)
}

func TestDelta_DeadZone(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeDelta(0.004))
	assert.Equal(t, 0.0, NormalizeDelta(-0.004))
	assert.Equal(t, 0.01, NormalizeDelta(0.01))
	assert.Equal(t, -0.01, NormalizeDelta(-0.01))

	cfg := targetCfg()
	period := PeriodRollup{
		Start:   day(2026, 2, 2),
		End:     day(2026, 2, 2),
		Days:    1,
		Seconds: 8*3600 + 10, // ~8.003h worked against an 8h target
	}
	assert.Equal(t, 0.0, cfg.Delta(period))
}

func TestOvertimeWorked_CutsOffAtActiveEnd(t *testing.T) {
	cfg := targetCfg()
	period := PeriodRollup{Start: day(2026, 2, 2), End: day(2026, 2, 8), Days: 7}
	daily := []DailyTotal{
		{Date: day(2026, 2, 2), Seconds: 10 * 3600}, // +2h
		{Date: day(2026, 2, 3), Seconds: 9 * 3600},  // +1h
		{Date: day(2026, 2, 4), Seconds: 0},         // -8h, not yet reached
		{Date: day(2026, 2, 5), Seconds: 0},
		{Date: day(2026, 2, 6), Seconds: 0},
		{Date: day(2026, 2, 7), Seconds: 0},
		{Date: day(2026, 2, 8), Seconds: 0},
	}

	// Active range ends on the 3rd: later zero days must not penalize.
	assert.Equal(t, 3.0, cfg.OvertimeWorked(period, daily, day(2026, 2, 3)))
	// Through the 4th, the missed target day eats the surplus.
	assert.Equal(t, 0.0, cfg.OvertimeWorked(period, daily, day(2026, 2, 4)))
}

func TestOvertimeWorked_FlooredAtZero(t *testing.T) {
	cfg := targetCfg()
	period := PeriodRollup{Start: day(2026, 2, 2), End: day(2026, 2, 2), Days: 1}
	daily := []DailyTotal{{Date: day(2026, 2, 2), Seconds: 3600}}

	assert.Equal(t, 0.0, cfg.OvertimeWorked(period, daily, day(2026, 2, 2)))
}

func TestOvertimeWorked_PeriodEntirelyInFuture(t *testing.T) {
	cfg := targetCfg()
	period := PeriodRollup{Start: day(2026, 3, 2), End: day(2026, 3, 8), Days: 7}

	assert.Equal(t, 0.0, cfg.OvertimeWorked(period, nil, day(2026, 2, 15)))
}
