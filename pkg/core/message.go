package core

// Message is the value passed between pipeline stages. The set of
// variants is closed: only types in this package implement it.
type Message interface {
	isMessage()
}

// RecordMessage carries a log record.
type RecordMessage struct {
	Record *Record
}

// Drop replaces a record that a stage suppressed.
type Drop struct{}

// Done marks the end of the stream.
type Done struct{}

func (RecordMessage) isMessage() {}
func (Drop) isMessage()          {}
func (Done) isMessage()          {}

// NewRecordMessage wraps r in a Message.
func NewRecordMessage(r *Record) Message {
	return RecordMessage{Record: r}
}
