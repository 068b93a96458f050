package component

// Camera is the variant payload of a security camera.
type Camera struct {
	IsRecording bool
}

// NewCamera returns an idle camera.
func NewCamera() *Camera {
	return &Camera{}
}

// StartRecording begins recording.
func (c *Camera) StartRecording() {
	c.IsRecording = true
}

// StopRecording ends recording.
func (c *Camera) StopRecording() {
	c.IsRecording = false
}

func (c *Camera) actions() []ActionDescriptor {
	return []ActionDescriptor{
		button("record", "Start Recording"),
		button("stop", "Stop Recording"),
	}
}
