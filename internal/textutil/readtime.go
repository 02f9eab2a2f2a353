package textutil

import (
	"math"
	"strconv"
	"strings"
)

const WordsPerMinute = 230

func ReadingMinutes(body string) int {
	words := len(strings.Fields(body))
	minutes := int(math.Round(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// ReadingTime renders the estimate the way pages display it, e.g. "3 min read".
func ReadingTime(body string) string {
	return strconv.Itoa(ReadingMinutes(body)) + " min read"
}
