package usecase

import (
	"context"
	"io"
	"testing"

	"adrd-care-system/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeAvailabilityRepo serves canned per-date results and counts lookups.
type fakeAvailabilityRepo struct {
	results map[string]*entity.AvailabilityResult
	calls   int
	dates   []string
}

func (f *fakeAvailabilityRepo) GetAvailability(_ context.Context, _, date string) *entity.AvailabilityResult {
	f.calls++
	f.dates = append(f.dates, date)
	if result, ok := f.results[date]; ok {
		return result
	}
	return &entity.AvailabilityResult{Success: true, AvailableTimes: []string{}}
}

func TestAvailabilityScanUsecase_ScanNextDays(t *testing.T) {
	t.Run("collects days with slots, drops empty days, survives failures", func(t *testing.T) {
		repo := &fakeAvailabilityRepo{results: map[string]*entity.AvailabilityResult{
			"12/15/2024": {Success: true, AvailableTimes: []string{"09:00 AM"}},
			"12/16/2024": {Success: false, Error: "Service temporarily unavailable"},
			"12/17/2024": {Success: true, AvailableTimes: []string{}},
			"12/18/2024": {Success: true, AvailableTimes: []string{"10:00 AM", "02:00 PM"}},
			"12/19/2024": {Success: true, AvailableTimes: []string{"11:00 AM"}},
		}}
		uc := NewAvailabilityScanUsecase(testLogger(), repo)

		days := uc.ScanNextDays(context.Background(), "dr_001", "12/15/2024", 5)

		require.Len(t, days, 3)
		assert.Equal(t, "12/15/2024", days[0].Date)
		assert.Equal(t, "12/18/2024", days[1].Date)
		assert.Equal(t, "12/19/2024", days[2].Date)
		assert.Equal(t, []string{"10:00 AM", "02:00 PM"}, days[1].Times)
		assert.Equal(t, 5, repo.calls)
	})

	t.Run("crosses month boundaries", func(t *testing.T) {
		repo := &fakeAvailabilityRepo{results: map[string]*entity.AvailabilityResult{}}
		uc := NewAvailabilityScanUsecase(testLogger(), repo)

		uc.ScanNextDays(context.Background(), "dr_001", "12/30/2024", 3)

		assert.Equal(t, []string{"12/30/2024", "12/31/2024", "01/01/2025"}, repo.dates)
	})

	t.Run("zero window falls back to the default", func(t *testing.T) {
		repo := &fakeAvailabilityRepo{results: map[string]*entity.AvailabilityResult{}}
		uc := NewAvailabilityScanUsecase(testLogger(), repo)

		uc.ScanNextDays(context.Background(), "dr_001", "12/15/2024", 0)

		assert.Equal(t, DefaultScanWindowDays, repo.calls)
	})

	t.Run("unparseable start date returns nothing", func(t *testing.T) {
		repo := &fakeAvailabilityRepo{results: map[string]*entity.AvailabilityResult{}}
		uc := NewAvailabilityScanUsecase(testLogger(), repo)

		days := uc.ScanNextDays(context.Background(), "dr_001", "2024-12-15", 5)

		assert.Nil(t, days)
		assert.Zero(t, repo.calls)
	})
}
