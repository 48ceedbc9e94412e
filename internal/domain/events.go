package domain

// Events passed from the event loop to the controller. They are handled
// synchronously inside one event loop turn.

// RowsInsertedEvent is emitted when the store publishes items [From, To)
type RowsInsertedEvent struct {
	From int
	To   int
}

// Empty reports whether no rows were published
func (e RowsInsertedEvent) Empty() bool { return e.To <= e.From }

// IngestStoppedEvent is emitted once when the input stream ends or fails
type IngestStoppedEvent struct {
	Total int
	Err   error
}

// SessionFinishedEvent is emitted once when the user submits or cancels
type SessionFinishedEvent struct {
	Result Result
}
