package models

// Person is a participant who can pay, owe, or receive money.
// Ids are assigned in insertion order and double as the tie-break key when
// an equal split leaves a remainder.
type Person struct {
	ID   int64
	Name string
}
