package date

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativeDateRE = regexp.MustCompile(`^([+-])(\d+)([dwmqy])$`)

// ParseRelative parses a date relative to today, like "+30d", "-1w", "+6m",
// "+1q" or "+2y". "0d" is today. Anything else is parsed with [Parse].
func ParseRelative(str string, today Date) (Date, error) {
	str = strings.TrimSpace(str)
	if str == "0d" {
		return today, nil
	}
	match := relativeDateRE.FindStringSubmatch(str)
	if match == nil {
		return Parse(str)
	}
	num, err := strconv.Atoi(match[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
	}
	if match[1] == "-" {
		num = -num
	}
	switch match[3] {
	case "w":
		return today.Add(num * 7), nil
	case "m":
		return New(today.y, today.m+time.Month(num), today.d), nil
	case "q":
		return New(today.y, today.m+time.Month(num*3), today.d), nil
	case "y":
		return New(today.y+num, today.m, today.d), nil
	default:
		return today.Add(num), nil
	}
}
