package mqtt

// Topic classes used to pick the QoS of a publication.
const (
	ClassState   = "state"
	ClassEvents  = "events"
	ClassSummary = "summary"
)

// Publisher sends telemetry payloads to a broker.
type Publisher interface {
	// Publish sends payload on topic using the QoS configured for class.
	Publish(class, topic string, payload []byte, retained bool) error
	Disconnect()
}
