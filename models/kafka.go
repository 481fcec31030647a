package models

type Record struct {
	Key   []byte
	Value []byte
	Topic string
}

// DeadLetter is a record the reconciler could not sync.
type DeadLetter struct {
	Key      string `json:"key"`
	Value    []byte `json:"value"`
	Topic    string `json:"topic"`
	Reason   string `json:"reason"`
	FailedAt string `json:"failed_at"`
}
