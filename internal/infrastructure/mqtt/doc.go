// Package mqtt provides MQTT client connectivity for homesim.
//
// The simulator only publishes: component state, events, action results and
// statistics are mirrored to a broker so dashboards and other tools can
// follow a session. Nothing is consumed from the broker.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Last Will and Testament (LWT) for offline detection
//   - Session client IDs (generated when not configured)
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topic := client.Topics().ComponentState(3)
//	err = client.Publish(topic, payload, 1, true)
package mqtt
