package utils

import "time"

const brDateLayout = "02/01/2006"

// ParseDate interpreta datas no formato YYYY-MM-DD. String vazia retorna nil.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.ParseInLocation(time.DateOnly, dateStr, time.Local)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// EndOfDay retorna o último instante representável do dia
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// LastDayOfMonth retorna a meia-noite do último dia do mês
func LastDayOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
}

func FormatBRDate(t time.Time) string {
	return t.Format(brDateLayout)
}
