package task

import "time"

// WageFact is the read model the task wage aggregator consumes: one row per
// task assigned to a staff member that carries a configured piece wage. The
// repository resolves the joins (task, contract, customer, service task
// template) so the aggregator stays a pure function of facts.
type WageFact struct {
	TaskID       string
	TaskName     string
	CustomerName string
	ContractCode string
	DueDate      time.Time
	Amount       int64
	WageSource   string
}
