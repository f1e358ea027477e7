package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "motorental",
}

var defaultKafka = Kafka{
	Brokers:      []string{"localhost:9092"},
	GroupID:      "rental-group",
	CreatedTopic: "rental-created",
	UpdatedTopic: "rental-updated",
}

var defaultRental = Rental{
	Timezone:         "America/Sao_Paulo",
	OperationTimeout: 3 * time.Second,
	// one attempt preserves the permanent-REJECT-on-first-failure policy;
	// raise RENTAL_CLAIM_ATTEMPTS to retry with backoff before rejecting
	ClaimAttempts:    1,
	ClaimBackoffBase: 100 * time.Millisecond,
	ClaimBackoffMax:  time.Second,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRental returns the default rental engine settings.
func DefaultRental() Rental {
	return defaultRental
}
