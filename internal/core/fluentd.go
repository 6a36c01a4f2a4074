package core

type FluentdSubTag string

const (
	FluentdLookup FluentdSubTag = "lookup_log"
)
