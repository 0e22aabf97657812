package catalog

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/KasenaM/kisite-canines/models"
)

var firstNumber = regexp.MustCompile(`\d[\d,]*`)

// ParsePrice strips currency formatting ("KES 12,000", "KES 1,500/night")
// down to an integer amount in currency units. Returns 0 when no number is
// present.
func ParsePrice(price string) int64 {
	match := firstNumber.FindString(price)
	if match == "" {
		return 0
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(match, ",", ""), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// PackagePrice returns the catalog price for a service package in currency
// units. For Boarding this is the nightly rate.
func PackagePrice(service models.ServiceType, name string) (int64, bool) {
	pkg, ok := Find(service, name)
	if !ok {
		return 0, false
	}
	return ParsePrice(pkg.Price), true
}

// TrainingWeeks extracts the week count for a training package. The count is
// taken from the first integer in the package name itself (clients may send
// ad-hoc names like "4 Weeks"), falling back to the catalog package's details
// text ("4 Weeks – KES 12,000"). Returns 0 when no duration is encoded.
func TrainingWeeks(packageName string) int {
	if weeks := firstInt(packageName); weeks > 0 {
		return weeks
	}
	if pkg, ok := Find(models.ServiceTraining, packageName); ok {
		return firstInt(pkg.Details)
	}
	return 0
}

func firstInt(s string) int {
	match := firstNumber.FindString(s)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(match, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

// BoardingNights computes the billable nights for a stay. Stays shorter than
// one day still bill a single night.
func BoardingNights(start, end time.Time) int {
	diff := end.Sub(start)
	if diff <= 0 {
		return 1
	}
	nights := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		nights++
	}
	if nights < 1 {
		nights = 1
	}
	return nights
}

// BoardingTotal computes nightly rate × billable nights.
func BoardingTotal(nightlyRate int64, start, end time.Time) int64 {
	return nightlyRate * int64(BoardingNights(start, end))
}
