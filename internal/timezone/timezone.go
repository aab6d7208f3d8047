package timezone

import (
	"os"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

// Default resolves the process timezone: APP_TZ when set and valid,
// otherwise DefaultTimezone.
func Default() string {
	if tz := os.Getenv("APP_TZ"); IsValid(tz) {
		return tz
	}
	return DefaultTimezone
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(Default()))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
