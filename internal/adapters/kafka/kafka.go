package kafka

import (
	"github.com/IBM/sarama"
)

// NewSyncProducer builds the producer used for push-notification
// events. Hash partitioning keys by recipient keeps a single user's
// notifications in order.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Partitioner = sarama.NewHashPartitioner
	config.Version = sarama.V2_0_0_0
	config.ClientID = "teamup-service"

	return sarama.NewSyncProducer(brokers, config)
}
