package hijri

import "fmt"

// Countdown renders how many days away a milestone is.
func Countdown(inDays int) string {
	switch inDays {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	}
	return fmt.Sprintf("in %d days", inDays)
}
