package schedule

import "time"

// Interval é um intervalo meio-aberto [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps testa interseção de intervalos meio-abertos: encostar no início
// ou no fim do outro não conflita.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}
