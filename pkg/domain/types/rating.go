package types

import (
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Rating is a self-reported agreement value for one question.
// 1 means "strongly disagree" and 5 means "strongly agree".
type Rating int

const (
	MinRating     Rating = 1
	MaxRating     Rating = 5
	DefaultRating Rating = 3
)

// ErrRatingOutOfRange is returned for ratings outside [MinRating, MaxRating]
var ErrRatingOutOfRange = goerr.New("rating out of range")

// Validate checks if the rating is within the scale
func (r Rating) Validate() error {
	if r < MinRating || r > MaxRating {
		return goerr.Wrap(ErrRatingOutOfRange, "invalid rating",
			goerr.V("rating", int(r)),
			goerr.V("min", int(MinRating)),
			goerr.V("max", int(MaxRating)),
		)
	}
	return nil
}

// Int returns the rating as int
func (r Rating) Int() int {
	return int(r)
}

// ParseRating parses a decimal rating such as a form value. Surrounding
// spaces are ignored.
func ParseRating(s string) (Rating, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, goerr.Wrap(err, "rating is not an integer", goerr.V("value", s))
	}
	r := Rating(n)
	if err := r.Validate(); err != nil {
		return 0, err
	}
	return r, nil
}
