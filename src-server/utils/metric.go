package utils

// Latency samples in microseconds, fed by the route/notify layers and drained
// by the metric package.
type Metric struct {
	DatabaseRead       chan float64
	DatabaseWrite      chan float64
	DiscordSendMessage chan float64

	// resulting status of each applied transition
	Transition chan string
}

func NewMetric() *Metric {
	return &Metric{
		DatabaseRead:       make(chan float64),
		DatabaseWrite:      make(chan float64),
		DiscordSendMessage: make(chan float64),
		Transition:         make(chan string),
	}
}
