package rabbitmq

// Exchange is the direct exchange all inquiry events go through.
const Exchange = "inquiries"

const (
	InquiryCreatedQueue      = "inquiry.created"
	InquiryCreatedRoutingKey = "created"
)

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// InquiryQueues lists the queues the API publishes to and the notifier consumes.
func InquiryQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: InquiryCreatedQueue, RoutingKey: InquiryCreatedRoutingKey},
	}
}
