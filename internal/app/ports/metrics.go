package ports

type TickMetrics interface {
	RecordCommit(module string)
	RecordRejection(module string)
	RecordNoAction(reason string)
}
