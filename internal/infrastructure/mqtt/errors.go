package mqtt

import "errors"

var (
	// ErrConnectionFailed wraps the reason Connect could not open a session.
	ErrConnectionFailed = errors.New("mqtt: connection failed")

	// ErrNotConnected is returned while the session is down.
	ErrNotConnected = errors.New("mqtt: client not connected")

	// ErrPublishFailed wraps broker rejections, timeouts and oversized
	// payloads.
	ErrPublishFailed = errors.New("mqtt: publish failed")

	// ErrInvalidQoS rejects QoS levels above 2.
	ErrInvalidQoS = errors.New("mqtt: invalid QoS level (must be 0, 1, or 2)")

	// ErrInvalidTopic rejects an empty topic.
	ErrInvalidTopic = errors.New("mqtt: topic cannot be empty")
)
