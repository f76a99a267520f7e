package statistic

import (
	"fmt"
	"strings"
)

// Rating is a qualitative label on the ordered scale extreme > high > moderate
// > low > terrible > abysmal. RatingNone sits outside the scale and means the
// statistic is absent.
type Rating string

const (
	Extreme  Rating = "extreme"
	High     Rating = "high"
	Moderate Rating = "moderate"
	Low      Rating = "low"
	Terrible Rating = "terrible"
	Abysmal  Rating = "abysmal"

	RatingNone Rating = "none"
)

// Scale lists the ordered ratings from strongest to weakest. RatingNone is excluded.
var Scale = []Rating{Extreme, High, Moderate, Low, Terrible, Abysmal}

// Rank returns the position of r on the scale, 0 for extreme. RatingNone and
// unknown ratings return -1.
func (r Rating) Rank() int {
	for i, s := range Scale {
		if s == r {
			return i
		}
	}
	return -1
}

// Stronger reports whether r sits above other on the scale.
//
// Precondition: both ratings must be on the scale.
func (r Rating) Stronger(other Rating) bool {
	return r.Rank() < other.Rank()
}

// ParseRating converts a case-insensitive rating word into a Rating.
//
// Postcondition: Returns the Rating or an error naming the unknown word.
func ParseRating(word string) (Rating, error) {
	r := Rating(strings.ToLower(strings.TrimSpace(word)))
	if r == RatingNone || r.Rank() >= 0 {
		return r, nil
	}
	return "", fmt.Errorf("unknown rating %q", word)
}
