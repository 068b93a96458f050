package component

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

var later = testNow.Add(time.Minute)

func TestExecute_Power(t *testing.T) {
	c := New(1, "Lamp", KindLight, "", testNow)

	res := Execute(c, "on", nil, later)
	if !res.Success || res.Message != "Lamp turned on" {
		t.Fatalf("on = %+v", res)
	}
	if c.Status != StatusOnline || !c.LastUpdated.Equal(later) {
		t.Errorf("after on: status %q lastUpdated %v", c.Status, c.LastUpdated)
	}

	res = Execute(c, "toggle", nil, later)
	if !res.Success || res.Message != "Lamp turned off" || c.Status != StatusOffline {
		t.Errorf("toggle from online = %+v, status %q", res, c.Status)
	}

	res = Execute(c, "toggle", nil, later)
	if res.Message != "Lamp turned on" || c.Status != StatusOnline {
		t.Errorf("toggle from offline = %+v, status %q", res, c.Status)
	}

	res = Execute(c, "off", nil, later)
	if res.Message != "Lamp turned off" || c.Status != StatusOffline {
		t.Errorf("off = %+v, status %q", res, c.Status)
	}
}

func TestExecute_CaseInsensitive(t *testing.T) {
	c := New(1, "Lamp", KindLight, "", testNow)
	for _, key := range []string{"setBrightness", "SETBRIGHTNESS", "setbrightness"} {
		res := Execute(c, key, Params{"brightness": 30}, later)
		if !res.Success {
			t.Errorf("Execute(%q) failed: %s", key, res.Message)
		}
	}
}

func TestExecute_Discrimination(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		action  string
		wantErr error
		wantMsg string
	}{
		{"unknown action", KindLight, "explode", ErrUnknownAction, "Unknown action"},
		{"lock on light", KindLight, "lock", ErrActionNotSupported, "Action not supported"},
		{"record on generic", KindGeneric, "record", ErrActionNotSupported, "Action not supported"},
		{"setvolume on camera", KindCamera, "setVolume", ErrActionNotSupported, "Action not supported"},
		{"brightness on thermostat", KindThermostat, "setbrightness", ErrActionNotSupported, "Action not supported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(1, "x", tt.kind, "", testNow)
			before := *c
			res := Execute(c, tt.action, nil, later)
			if res.Success {
				t.Fatal("expected failure")
			}
			if !errors.Is(res.Err, tt.wantErr) {
				t.Errorf("Err = %v, want %v", res.Err, tt.wantErr)
			}
			if res.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", res.Message, tt.wantMsg)
			}
			if !c.LastUpdated.Equal(before.LastUpdated) || c.Status != before.Status {
				t.Error("failed dispatch mutated the component")
			}
		})
	}
}

func TestExecute_SetBrightness(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantOK  bool
		wantMsg string
		want    int
	}{
		{"int", Params{"brightness": 40}, true, "Brightness set to 40%", 40},
		{"float64 integral", Params{"brightness": 75.0}, true, "Brightness set to 75%", 75},
		{"json number", Params{"brightness": json.Number("10")}, true, "Brightness set to 10%", 10},
		{"numeric string", Params{"brightness": " 0 "}, true, "Brightness set to 0%", 0},
		{"upper bound", Params{"brightness": 100}, true, "Brightness set to 100%", 100},
		{"too high", Params{"brightness": 150}, false, "Brightness must be 0-100", 100},
		{"negative", Params{"brightness": -1}, false, "Brightness must be 0-100", 100},
		{"fractional", Params{"brightness": 40.5}, false, "Brightness must be 0-100", 100},
		{"non-numeric", Params{"brightness": "bright"}, false, "Brightness must be 0-100", 100},
		{"missing", Params{}, false, "Brightness must be 0-100", 100},
		{"bool", Params{"brightness": true}, false, "Brightness must be 0-100", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(1, "Lamp", KindLight, "", testNow)
			res := Execute(c, "setBrightness", tt.params, later)
			if res.Success != tt.wantOK {
				t.Fatalf("Success = %v, want %v (%s)", res.Success, tt.wantOK, res.Message)
			}
			if res.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", res.Message, tt.wantMsg)
			}
			if c.Light.Brightness != tt.want {
				t.Errorf("Brightness = %d, want %d", c.Light.Brightness, tt.want)
			}
			if tt.wantOK != c.LastUpdated.Equal(later) {
				t.Errorf("LastUpdated = %v; should change only on success", c.LastUpdated)
			}
			if !tt.wantOK && !errors.Is(res.Err, ErrValidation) {
				t.Errorf("Err = %v, want ErrValidation", res.Err)
			}
		})
	}
}

func TestExecute_SetTemperature(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantOK  bool
		wantMsg string
		want    float64
	}{
		{"integral", 18, true, "Temperature set to 18°C", 18},
		{"fractional", 21.5, true, "Temperature set to 21.5°C", 21.5},
		{"string", "25", true, "Temperature set to 25°C", 25},
		{"low bound", 16, true, "Temperature set to 16°C", 16},
		{"too low", 15.9, false, "Temperature must be 16-30°C", 22},
		{"too high", 31, false, "Temperature must be 16-30°C", 22},
		{"garbage", "warm", false, "Temperature must be 16-30°C", 22},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(1, "Heat", KindThermostat, "", testNow)
			res := Execute(c, "settemperature", Params{"temperature": tt.value}, later)
			if res.Success != tt.wantOK || res.Message != tt.wantMsg {
				t.Errorf("result = %+v, want success %v message %q", res, tt.wantOK, tt.wantMsg)
			}
			if c.Thermostat.Temperature != tt.want {
				t.Errorf("Temperature = %v, want %v", c.Thermostat.Temperature, tt.want)
			}
		})
	}
}

func TestExecute_LockAndCamera(t *testing.T) {
	lock := New(1, "Front Door", KindLock, "", testNow)
	if res := Execute(lock, "unlock", nil, later); res.Message != "Front Door is now unlocked" || lock.Lock.IsLocked {
		t.Errorf("unlock = %+v, locked %v", res, lock.Lock.IsLocked)
	}
	if res := Execute(lock, "lock", nil, later); res.Message != "Front Door is now locked" || !lock.Lock.IsLocked {
		t.Errorf("lock = %+v, locked %v", res, lock.Lock.IsLocked)
	}

	cam := New(2, "Porch Cam", KindCamera, "", testNow)
	if res := Execute(cam, "record", nil, later); res.Message != "Porch Cam recording started" || !cam.Camera.IsRecording {
		t.Errorf("record = %+v", res)
	}
	if res := Execute(cam, "stop", nil, later); res.Message != "Porch Cam recording stopped" || cam.Camera.IsRecording {
		t.Errorf("stop = %+v", res)
	}
}

func TestExecute_Television(t *testing.T) {
	t.Run("volume", func(t *testing.T) {
		c := New(1, "TV", KindTelevision, "", testNow)
		tv := c.Television

		Execute(c, "mute", nil, later)
		if res := Execute(c, "volumeUp", nil, later); res.Message != "Volume: 55" || tv.IsMuted {
			t.Errorf("volumeUp = %+v, muted %v", res, tv.IsMuted)
		}

		Execute(c, "mute", nil, later)
		if res := Execute(c, "volumeDown", nil, later); res.Message != "Volume: 50" || !tv.IsMuted {
			t.Errorf("volumeDown = %+v, muted %v (mute should be kept)", res, tv.IsMuted)
		}

		if res := Execute(c, "setVolume", Params{"volume": 98}, later); res.Message != "Volume set to 98" || tv.IsMuted {
			t.Errorf("setVolume = %+v, muted %v", res, tv.IsMuted)
		}
		if res := Execute(c, "volumeUp", nil, later); res.Message != "Volume: 100" {
			t.Errorf("volumeUp clamp = %+v", res)
		}

		Execute(c, "setVolume", Params{"volume": 3}, later)
		if res := Execute(c, "volumeDown", nil, later); res.Message != "Volume: 0" {
			t.Errorf("volumeDown clamp = %+v", res)
		}

		if res := Execute(c, "setVolume", Params{"volume": 101}, later); res.Success || res.Message != "Volume must be 0-100" {
			t.Errorf("setVolume 101 = %+v", res)
		}
		if tv.Volume != 0 {
			t.Errorf("Volume = %d after rejected set, want 0", tv.Volume)
		}
	})

	t.Run("mute messages", func(t *testing.T) {
		c := New(1, "Bedroom TV", KindTelevision, "", testNow)
		if res := Execute(c, "mute", nil, later); res.Message != "Bedroom TV muted" || !c.Television.IsMuted {
			t.Errorf("mute = %+v", res)
		}
		if res := Execute(c, "unmute", nil, later); res.Message != "Bedroom TV unmuted" || c.Television.IsMuted {
			t.Errorf("unmute = %+v", res)
		}
	})

	t.Run("channel wrap", func(t *testing.T) {
		c := New(1, "TV", KindTelevision, "", testNow)
		if res := Execute(c, "channelDown", nil, later); res.Message != "Channel 10: НТН" {
			t.Errorf("channelDown from 1 = %q", res.Message)
		}
		if res := Execute(c, "channelUp", nil, later); res.Message != "Channel 1: UA:Перший" {
			t.Errorf("channelUp from 10 = %q", res.Message)
		}
		if res := Execute(c, "channelUp", nil, later); res.Message != "Channel 2: СТБ" {
			t.Errorf("channelUp from 1 = %q", res.Message)
		}
	})

	t.Run("set channel", func(t *testing.T) {
		c := New(1, "TV", KindTelevision, "", testNow)
		if res := Execute(c, "setChannel", Params{"channel": "4"}, later); res.Message != "Channel 4: ICTV" {
			t.Errorf("setChannel 4 = %+v", res)
		}
		for _, bad := range []any{0, 11, 2.5, "x"} {
			res := Execute(c, "setChannel", Params{"channel": bad}, later)
			if res.Success || res.Message != "Channel must be 1-10" {
				t.Errorf("setChannel %v = %+v", bad, res)
			}
		}
		if c.Television.CurrentChannel != 4 {
			t.Errorf("CurrentChannel = %d, want 4", c.Television.CurrentChannel)
		}
	})

	t.Run("inputs", func(t *testing.T) {
		c := New(1, "TV", KindTelevision, "", testNow)
		for action, want := range map[string]InputSource{
			"inputHDMI1": InputHDMI1,
			"inputHDMI2": InputHDMI2,
			"inputUSB":   InputUSB,
			"inputTV":    InputTV,
		} {
			res := Execute(c, action, nil, later)
			if !res.Success || res.Message != "Input source: "+string(want) || c.Television.InputSource != want {
				t.Errorf("%s = %+v, input %q", action, res, c.Television.InputSource)
			}
		}
	})

	t.Run("invalid input source", func(t *testing.T) {
		tv := NewTelevision()
		if _, err := tv.SetInputSource("VGA"); err == nil || err.Error() != "Invalid input source" {
			t.Errorf("SetInputSource(VGA) error = %v", err)
		}
		if tv.InputSource != InputTV {
			t.Errorf("InputSource = %q, want TV", tv.InputSource)
		}
	})

	t.Run("get channels is read-only", func(t *testing.T) {
		c := New(1, "TV", KindTelevision, "", testNow)
		res := Execute(c, "getChannels", nil, later)
		if !res.Success {
			t.Fatalf("getChannels failed: %s", res.Message)
		}
		list, ok := res.Data.([]Channel)
		if !ok || len(list) != 10 {
			t.Fatalf("Data = %#v, want 10 channels", res.Data)
		}
		want := "Available channels: 1. UA:Перший, 2. СТБ, 3. 1+1, 4. ICTV, 5. Новий канал, " +
			"6. Інтер, 7. ТРК Україна, 8. ТЕТ, 9. К1, 10. НТН"
		if res.Message != want {
			t.Errorf("Message = %q", res.Message)
		}
		if !c.LastUpdated.Equal(testNow) {
			t.Error("getChannels should not refresh LastUpdated")
		}

		list[0].Name = "changed"
		if Channels[0].Name != "UA:Перший" {
			t.Error("channel list data aliases the package list")
		}
	})
}

func TestActionKeys(t *testing.T) {
	keys := ActionKeys()
	if len(keys) != 22 {
		t.Errorf("got %d action keys, want 22: %v", len(keys), keys)
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Errorf("keys not sorted at %d: %q >= %q", i, keys[i-1], keys[i])
		}
	}
}

func TestIsAction(t *testing.T) {
	for _, key := range ActionKeys() {
		if !IsAction(strings.ToUpper(key)) {
			t.Errorf("IsAction(%q) = false", strings.ToUpper(key))
		}
	}
	if IsAction("explode") {
		t.Error("IsAction(explode) = true")
	}
}
