package geo

import "time"

func Expired(at time.Time) bool {
	return at.Before(time.Now()) // want "time.Now is not allowed in package geo"
}

func ExpiredAt(at, now time.Time) bool {
	return at.Before(now)
}
