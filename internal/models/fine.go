package models

// FineRecord is one entry in the append-only fine log.
type FineRecord struct {
	ID     string  `bson:"id" json:"id"`
	Date   string  `bson:"date" json:"date"`
	Amount float64 `bson:"amount" json:"amount"`
	Name   string  `bson:"name" json:"name"`
	Note   string  `bson:"note" json:"note"`
}
