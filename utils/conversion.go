package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ClockToMinutes converts a "HH:mm" or "h:mm AM/PM" time-of-day string to
// minutes from midnight. "24:00" converts to 1440 so a close time at midnight
// compares correctly against end times.
func ClockToMinutes(clock string) (int, error) {
	clock = strings.TrimSpace(clock)
	upper := strings.ToUpper(clock)

	period := ""
	if strings.HasSuffix(upper, "AM") || strings.HasSuffix(upper, "PM") {
		period = upper[len(upper)-2:]
		clock = strings.TrimSpace(clock[:len(clock)-2])
	}

	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", clock)
	}

	switch period {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}

	if hour < 0 || hour > 24 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q out of range", clock)
	}
	// "24:00" marks end-of-day; nothing past it is a valid clock value.
	if hour == 24 && minute != 0 {
		return 0, fmt.Errorf("time %q out of range", clock)
	}
	return hour*60 + minute, nil
}

// ClockHour returns the integer hour component of a time-of-day string.
func ClockHour(clock string) (int, error) {
	minutes, err := ClockToMinutes(clock)
	if err != nil {
		return 0, err
	}
	return minutes / 60, nil
}

// HourLabel renders an integer hour as a 12-hour clock label, e.g. 14 -> "2:00 PM".
func HourLabel(hour int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:00 %s", h, period)
}

// HourRange returns the integer hours covered by [start, end), where start and
// end are time-of-day strings. Partial hours are widened so a 10:30 start
// still occupies the 10 o'clock bucket.
func HourRange(start, end string) ([]int, error) {
	startMin, err := ClockToMinutes(start)
	if err != nil {
		return nil, err
	}
	endMin, err := ClockToMinutes(end)
	if err != nil {
		return nil, err
	}
	first := startMin / 60
	last := (endMin + 59) / 60
	var hours []int
	for h := first; h < last; h++ {
		hours = append(hours, h)
	}
	return hours, nil
}
