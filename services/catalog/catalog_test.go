package catalog

import (
	"testing"
	"time"

	"github.com/KasenaM/kisite-canines/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"KES 12,000", 12000},
		{"KES 1,500/night", 1500},
		{"From KES 6,000", 6000},
		{"KES 20,000+", 20000},
		{"KES 0", 0},
		{"Inquire", 0},
		{"", 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParsePrice(tc.in), "ParsePrice(%q)", tc.in)
	}
}

func TestPackagePrice(t *testing.T) {
	price, ok := PackagePrice(models.ServiceTraining, "Obedience Training")
	require.True(t, ok)
	assert.Equal(t, int64(12000), price)

	nightly, ok := PackagePrice(models.ServiceBoarding, "Standard Suite")
	require.True(t, ok)
	assert.Equal(t, int64(1500), nightly)

	_, ok = PackagePrice(models.ServiceTraining, "Nonexistent Package")
	assert.False(t, ok)
}

func TestTrainingWeeks(t *testing.T) {
	// Ad-hoc names carry the count directly.
	assert.Equal(t, 4, TrainingWeeks("4 Weeks"))
	assert.Equal(t, 2, TrainingWeeks("2 Weeks Puppy Camp"))

	// Catalog names fall back to the package details text.
	assert.Equal(t, 2, TrainingWeeks("Puppy Basics"))
	assert.Equal(t, 4, TrainingWeeks("Obedience Training"))

	// No duration anywhere.
	assert.Equal(t, 0, TrainingWeeks("Unknown Package"))
}

func TestBoardingNights(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
	}

	// Same-day stays still bill one night.
	assert.Equal(t, 1, BoardingNights(day(1), day(1)))
	assert.Equal(t, 3, BoardingNights(day(1), day(4)))
	// Partial days round up.
	assert.Equal(t, 4, BoardingNights(day(1), day(4).Add(6*time.Hour)))
	// An inverted range degrades to one night rather than zero or negative.
	assert.Equal(t, 1, BoardingNights(day(4), day(1)))
}

func TestBoardingTotal(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(4500), BoardingTotal(1500, start, end))
}

func TestFindIsScopedToService(t *testing.T) {
	_, ok := Find(models.ServiceGrooming, "Obedience Training")
	assert.False(t, ok)

	pkg, ok := Find(models.ServiceGrooming, "Full Groom")
	require.True(t, ok)
	assert.Equal(t, "KES 3,500", pkg.Price)
}
