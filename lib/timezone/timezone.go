package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		panic(err)
	}
}

// Vietlott publishes draw dates in Vietnam local time; pin wall-clock
// reads there so capture timestamps don't drift with the host timezone.
func Now() time.Time {
	return time.Now().In(Location)
}
