package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WritePoint queues one point. It never blocks; points written after Close
// are dropped.
//
//	client.WritePoint("component_state",
//	    map[string]string{"component_id": "3", "type": "light"},
//	    map[string]any{"online": true, "brightness": 40},
//	    info.LastUpdated)
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]any, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(write.NewPoint(measurement, tags, fields, timestamp))
	c.written.Add(1)
}
