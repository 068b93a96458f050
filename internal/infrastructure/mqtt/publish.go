package mqtt

import "fmt"

// maxPayloadSize bounds a single message.
const maxPayloadSize = 1 << 20

// Stats counts publishes since Connect.
type Stats struct {
	Published uint64 `json:"published"`
	Failed    uint64 `json:"failed"`
}

// Publish sends payload to topic and waits for the broker to acknowledge
// it. State topics are retained; a retained empty payload clears the topic.
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if err := validatePublish(topic, payload, qos); err != nil {
		return err
	}
	if !c.IsConnected() {
		c.failed.Add(1)
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	switch {
	case !token.WaitTimeout(defaultPublishTimeout):
		c.failed.Add(1)
		return fmt.Errorf("%w: %s: timeout after %v", ErrPublishFailed, topic, defaultPublishTimeout)
	case token.Error() != nil:
		c.failed.Add(1)
		return fmt.Errorf("%w: %s: %w", ErrPublishFailed, topic, token.Error())
	}

	c.published.Add(1)
	return nil
}

// Stats returns the publish counters.
func (c *Client) Stats() Stats {
	return Stats{Published: c.published.Load(), Failed: c.failed.Load()}
}

func validatePublish(topic string, payload []byte, qos byte) error {
	switch {
	case topic == "":
		return ErrInvalidTopic
	case qos > maxQoS:
		return ErrInvalidQoS
	case len(payload) > maxPayloadSize:
		return fmt.Errorf("%w: payload of %d bytes exceeds %d", ErrPublishFailed, len(payload), maxPayloadSize)
	}
	return nil
}
