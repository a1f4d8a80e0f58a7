package calendar

import "time"

// Holiday static reference data, immutable at runtime
type Holiday struct {
	Date    time.Time `json:"date"`
	Name    string    `json:"name"`
	Country string    `json:"country"`
}

// fixedHoliday праздник с фиксированными месяцем и днём
type fixedHoliday struct {
	month time.Month
	day   int
	name  string
}

// Таблица праздников платформы. Даты фиксированные из года в год;
// плавающие праздники в генерацию слотов не входят
var fixedHolidays = []fixedHoliday{
	{time.January, 1, "New Year's Day"},
	{time.May, 1, "Labour Day"},
	{time.October, 3, "Day of Unity"},
	{time.December, 25, "Christmas Day"},
	{time.December, 26, "Boxing Day"},
	{time.December, 31, "New Year's Eve"},
}

// Calendar classifies dates as holiday, weekend or working day
type Calendar struct {
	country string
	byDay   map[[2]int]string // [month, day] -> holiday name
}

// New создает календарь для указанной страны
func New(country string) *Calendar {
	byDay := make(map[[2]int]string, len(fixedHolidays))
	for _, h := range fixedHolidays {
		byDay[[2]int{int(h.month), h.day}] = h.name
	}
	return &Calendar{country: country, byDay: byDay}
}

// NonWorkingDay классифицирует дату
// Возвращает признаки праздника/выходного и название праздника (если есть)
func (c *Calendar) NonWorkingDay(date time.Time) (isHoliday bool, isWeekend bool, label string) {
	weekday := date.Weekday()
	isWeekend = weekday == time.Saturday || weekday == time.Sunday

	if name, ok := c.byDay[[2]int{int(date.Month()), date.Day()}]; ok {
		return true, isWeekend, name
	}

	return false, isWeekend, ""
}

// IsWorkingDay возвращает true, если дата не праздник и не выходной
func (c *Calendar) IsWorkingDay(date time.Time) bool {
	isHoliday, isWeekend, _ := c.NonWorkingDay(date)
	return !isHoliday && !isWeekend
}

// HolidaysForYear материализует список праздников на год
// Используется календарными UI для визуальной подсветки
func (c *Calendar) HolidaysForYear(year int) []Holiday {
	result := make([]Holiday, 0, len(fixedHolidays))
	for _, h := range fixedHolidays {
		result = append(result, Holiday{
			Date:    time.Date(year, h.month, h.day, 0, 0, 0, 0, time.UTC),
			Name:    h.name,
			Country: c.country,
		})
	}
	return result
}

// Country возвращает страну календаря
func (c *Calendar) Country() string {
	return c.country
}
