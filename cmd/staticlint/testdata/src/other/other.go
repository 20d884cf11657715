package other

import "time"

func Stamp() time.Time {
	return time.Now()
}
