package model

import "fmt"

type Position struct {
	X float64
	Y float64
}

// Date is written day, month, year in the data files.
type Date struct {
	Year  uint16
	Month uint8
	Day   uint8
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

type Mortgage struct {
	Principal uint64
	Interest  float32
	Term      uint16
}

type Account struct {
	Credits  uint64
	Score    uint32
	Mortgage Mortgage
}

type Fleet struct {
	Kind  string
	Count uint16
}

type Tribute struct {
	Value     uint32
	Threshold uint32
	Fleet     Fleet
}

// Asteroids and Minables carry two numbers whose meaning the data format
// does not document; they are kept as written.
type Asteroids struct {
	Name        string
	FirstValue  uint32
	SecondValue float32
}

type Minables struct {
	Name        string
	FirstValue  uint32
	SecondValue float32
}

type Trade struct {
	Name  string
	Price uint32
}
