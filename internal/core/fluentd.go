package core

type FluentdSubTag string

const (
	FluentdRequest        FluentdSubTag = "request_log"
	FluentdResponse       FluentdSubTag = "response_log"
	FluentdClassification FluentdSubTag = "classification_log"
)
