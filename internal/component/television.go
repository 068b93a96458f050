package component

import (
	"fmt"
	"strings"
)

// Television volume limits, step and defaults.
const (
	MinVolume      = 0
	MaxVolume      = 100
	VolumeStep     = 5
	DefaultVolume  = 50
	DefaultChannel = 1
)

// Channel is one entry of the fixed channel list.
type Channel struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Channels is the fixed, ordered channel list every television tunes.
// Channel numbers run from 1 to len(Channels) with no gaps.
var Channels = []Channel{
	{Number: 1, Name: "UA:Перший"},
	{Number: 2, Name: "СТБ"},
	{Number: 3, Name: "1+1"},
	{Number: 4, Name: "ICTV"},
	{Number: 5, Name: "Новий канал"},
	{Number: 6, Name: "Інтер"},
	{Number: 7, Name: "ТРК Україна"},
	{Number: 8, Name: "ТЕТ"},
	{Number: 9, Name: "К1"},
	{Number: 10, Name: "НТН"},
}

// InputSource is a television input.
type InputSource string

// InputSource constants.
const (
	InputTV    InputSource = "TV"
	InputHDMI1 InputSource = "HDMI1"
	InputHDMI2 InputSource = "HDMI2"
	InputUSB   InputSource = "USB"
)

// InputSources lists the valid inputs in display order.
var InputSources = []InputSource{InputTV, InputHDMI1, InputHDMI2, InputUSB}

// Valid reports whether s is one of the enumerated inputs.
func (s InputSource) Valid() bool {
	for _, v := range InputSources {
		if s == v {
			return true
		}
	}
	return false
}

// Television is the variant payload of a TV set.
type Television struct {
	Volume         int
	CurrentChannel int
	InputSource    InputSource
	IsMuted        bool
}

// NewTelevision returns a television on channel 1, input TV, half volume.
func NewTelevision() *Television {
	return &Television{
		Volume:         DefaultVolume,
		CurrentChannel: DefaultChannel,
		InputSource:    InputTV,
	}
}

// ChannelName returns the name of the current channel, or "Unknown".
func (tv *Television) ChannelName() string {
	return channelName(tv.CurrentChannel)
}

func channelName(number int) string {
	for _, ch := range Channels {
		if ch.Number == number {
			return ch.Name
		}
	}
	return "Unknown"
}

// SetVolume sets an absolute volume level and unmutes.
func (tv *Television) SetVolume(level int) (string, error) {
	if level < MinVolume || level > MaxVolume {
		return "", errVolumeRange()
	}
	tv.Volume = level
	tv.IsMuted = false
	return fmt.Sprintf("Volume set to %d", level), nil
}

// VolumeUp raises the volume by one step, clamped at the maximum, and unmutes.
func (tv *Television) VolumeUp() string {
	tv.Volume = min(MaxVolume, tv.Volume+VolumeStep)
	tv.IsMuted = false
	return fmt.Sprintf("Volume: %d", tv.Volume)
}

// VolumeDown lowers the volume by one step, clamped at the minimum.
// Mute state is left unchanged.
func (tv *Television) VolumeDown() string {
	tv.Volume = max(MinVolume, tv.Volume-VolumeStep)
	return fmt.Sprintf("Volume: %d", tv.Volume)
}

// Mute silences the television.
func (tv *Television) Mute() {
	tv.IsMuted = true
}

// Unmute restores sound.
func (tv *Television) Unmute() {
	tv.IsMuted = false
}

// SetChannel tunes to an absolute channel number.
func (tv *Television) SetChannel(number int) (string, error) {
	if number < 1 || number > len(Channels) {
		return "", errChannelRange()
	}
	tv.CurrentChannel = number
	return tv.channelMessage(), nil
}

// ChannelUp moves to the next channel, wrapping from the last to the first.
func (tv *Television) ChannelUp() string {
	if tv.CurrentChannel >= len(Channels) {
		tv.CurrentChannel = 1
	} else {
		tv.CurrentChannel++
	}
	return tv.channelMessage()
}

// ChannelDown moves to the previous channel, wrapping from the first to the last.
func (tv *Television) ChannelDown() string {
	if tv.CurrentChannel <= 1 {
		tv.CurrentChannel = len(Channels)
	} else {
		tv.CurrentChannel--
	}
	return tv.channelMessage()
}

func errVolumeRange() error {
	return failf(ErrValidation, "Volume must be %d-%d", MinVolume, MaxVolume)
}

func errChannelRange() error {
	return failf(ErrValidation, "Channel must be 1-%d", len(Channels))
}

func (tv *Television) channelMessage() string {
	return fmt.Sprintf("Channel %d: %s", tv.CurrentChannel, tv.ChannelName())
}

// SetInputSource switches input. Unknown sources are rejected.
func (tv *Television) SetInputSource(source InputSource) (string, error) {
	if !source.Valid() {
		return "", failf(ErrValidation, "Invalid input source")
	}
	tv.InputSource = source
	return fmt.Sprintf("Input source: %s", source), nil
}

// ChannelList returns a copy of the channel list and its display message.
func (tv *Television) ChannelList() ([]Channel, string) {
	list := make([]Channel, len(Channels))
	copy(list, Channels)

	parts := make([]string, 0, len(list))
	for _, ch := range list {
		parts = append(parts, fmt.Sprintf("%d. %s", ch.Number, ch.Name))
	}
	return list, "Available channels: " + strings.Join(parts, ", ")
}

func (tv *Television) actions() []ActionDescriptor {
	return []ActionDescriptor{
		rangeAction("setVolume", "Volume", MinVolume, MaxVolume, float64(tv.Volume), ""),
		rangeAction("setChannel", "Channel", 1, float64(len(Channels)), float64(tv.CurrentChannel), ""),
		button("mute", "Mute"),
		button("unmute", "Unmute"),
		button("channelUp", "Channel +"),
		button("channelDown", "Channel -"),
		button("volumeUp", "Volume +"),
		button("volumeDown", "Volume -"),
		button("inputTV", "Input: TV"),
		button("inputHDMI1", "Input: HDMI1"),
		button("inputHDMI2", "Input: HDMI2"),
		button("inputUSB", "Input: USB"),
		button("getChannels", "Show Channels"),
	}
}
