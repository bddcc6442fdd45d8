package entity

import "github.com/samber/lo"

type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
	StatusSold     Status = "sold"
	StatusClosed   Status = "closed"
	StatusExpired  Status = "expired"
)

var AllStatuses = []Status{StatusUpcoming, StatusActive, StatusFinished, StatusSold, StatusClosed, StatusExpired}

// MonitoredStatuses are the statuses whose UTXO is still watched on the ledger.
var MonitoredStatuses = []Status{StatusUpcoming, StatusActive, StatusFinished}

// transitions lists the allowed next statuses. Terminal statuses have none.
var transitions = map[Status][]Status{
	StatusUpcoming: {StatusActive, StatusClosed},
	StatusActive:   {StatusFinished, StatusExpired, StatusSold, StatusClosed},
	StatusFinished: {StatusExpired, StatusSold, StatusClosed},
}

func (s Status) IsValid() bool {
	return lo.Contains(AllStatuses, s)
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && len(transitions[s]) == 0
}

func (s Status) IsMonitored() bool {
	return lo.Contains(MonitoredStatuses, s)
}

// CanTransitionTo reports whether the state machine allows moving from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	return lo.Contains(transitions[s], next)
}

func (s Status) String() string {
	return string(s)
}
