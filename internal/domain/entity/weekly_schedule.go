package entity

// WeeklySchedule indexes a doctor's business hours by weekday.
type WeeklySchedule struct {
	days [DaysPerWeek]*BusinessHour
}

// NewWeeklySchedule builds a schedule from a doctor's entries. Entries with an
// invalid weekday are ignored; a later duplicate replaces an earlier one.
func NewWeeklySchedule(hours []BusinessHour) WeeklySchedule {
	var s WeeklySchedule
	for i := range hours {
		h := hours[i]
		if !h.Day.IsValid() {
			continue
		}
		s.days[h.Day] = &h
	}
	return s
}

// EntryFor returns the entry of exactly that weekday.
func (s WeeklySchedule) EntryFor(day Weekday) (*BusinessHour, bool) {
	if !day.IsValid() {
		return nil, false
	}
	h := s.days[day]
	return h, h != nil
}

// NextEntryAfter scans forward from the day after `day`, wrapping around the
// week. offset is the number of days from `day` to the entry found (1..7, where
// 7 is the same weekday one week later). At most seven days are scanned.
func (s WeeklySchedule) NextEntryAfter(day Weekday) (entry *BusinessHour, offset int, ok bool) {
	if !day.IsValid() {
		return nil, 0, false
	}
	for offset = 1; offset <= DaysPerWeek; offset++ {
		if h := s.days[day.Add(offset)]; h != nil {
			return h, offset, true
		}
	}
	return nil, 0, false
}

// Entries returns the entries ordered by weekday
func (s WeeklySchedule) Entries() []BusinessHour {
	out := make([]BusinessHour, 0, DaysPerWeek)
	for _, h := range s.days {
		if h != nil {
			out = append(out, *h)
		}
	}
	return out
}

// IsEmpty reports whether the doctor has no business hours at all
func (s WeeklySchedule) IsEmpty() bool {
	for _, h := range s.days {
		if h != nil {
			return false
		}
	}
	return true
}
