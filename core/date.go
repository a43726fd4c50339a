package core

import "fmt"

// Date counts whole days since the proleptic Gregorian epoch 0000-03-01.
// Game time is a Date plus an hour-of-day in [0,23].
type Date int64

// FromYMD builds a Date from a calendar year, month (1..12) and day (1..31)
func FromYMD(year, month, day int) Date {
	y := int64(year)
	if month <= 2 {
		y--
	}
	var era int64
	if y >= 0 {
		era = y / 400
	} else {
		era = (y - 399) / 400
	}
	yoe := y - era*400
	var mAdj int64
	if month > 2 {
		mAdj = int64(month) - 3
	} else {
		mAdj = int64(month) + 9
	}
	doy := (153*mAdj+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return Date(era*146097 + doe)
}

// YMD converts the date back to calendar year, month and day
func (d Date) YMD() (year, month, day int) {
	z := int64(d)
	var era int64
	if z >= 0 {
		era = z / 146097
	} else {
		era = (z - 146096) / 146097
	}
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day = int(doy - (153*mp+2)/5 + 1)
	if mp < 10 {
		month = int(mp + 3)
	} else {
		month = int(mp - 9)
	}
	if month <= 2 {
		y++
	}
	return int(y), month, day
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	y, m, dd := d.YMD()
	return fmt.Sprintf("%04d-%02d-%02d", y, m, dd)
}
