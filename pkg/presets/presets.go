// Package presets holds gauge layouts described in JSON and builds them onto
// a gauge.
package presets

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
)

var ErrNotFound = errors.New("preset not found")

var ErrReadOnly = errors.New("system presets are read only")

const prefKey = "presets"

var (
	mu  sync.RWMutex
	Map = map[string]string{}
)

func init() {
	setDefaults()
}

func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(Map))
	for name := range Map {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isSystem(name string) bool {
	for sys := range system {
		if strings.EqualFold(name, sys) {
			return true
		}
	}
	return false
}

// Set stores p under name, refusing to overwrite a built-in preset.
func Set(name string, p *Preset) error {
	if isSystem(name) {
		return ErrReadOnly
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	mu.Lock()
	Map[name] = string(data)
	mu.Unlock()
	return nil
}

func Delete(name string) error {
	if isSystem(name) {
		return ErrReadOnly
	}
	mu.Lock()
	delete(Map, name)
	mu.Unlock()
	return nil
}

func Get(name string) (*Preset, error) {
	mu.RLock()
	data, ok := Map[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	p, err := Parse([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", name, err)
	}
	return p, nil
}

// Parse decodes a preset description.
func Parse(data []byte) (*Preset, error) {
	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load merges user presets stored in the app preferences. Built-in presets
// always win.
func Load(app fyne.App) error {
	stored := app.Preferences().String(prefKey)
	if stored == "" {
		return nil
	}
	user := map[string]string{}
	if err := json.Unmarshal([]byte(stored), &user); err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	mu.Lock()
	for k, v := range user {
		Map[k] = v
	}
	mu.Unlock()
	setDefaults()
	return nil
}

// Save writes the user presets to the app preferences.
func Save(app fyne.App) error {
	mu.RLock()
	user := make(map[string]string, len(Map))
	for k, v := range Map {
		if !isSystem(k) {
			user[k] = v
		}
	}
	mu.RUnlock()
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	app.Preferences().SetString(prefKey, string(data))
	return nil
}

func setDefaults() {
	mu.Lock()
	defer mu.Unlock()
	for k, v := range system {
		Map[k] = v
	}
}

var system = map[string]string{
	"speedometer": `{"name":"speedometer","items":[
{"kind":"background","position":99,"stops":[{"offset":0.4,"color":"#303030"},{"offset":0.8,"color":"#000000"}]},
{"kind":"arc","position":90,"range":[0,240],"color":"#ffffff"},
{"kind":"degrees","position":88,"range":[0,240],"step":20,"color":"#ffffff"},
{"kind":"degrees","position":88,"range":[0,240],"step":5,"subDegree":true,"color":"#c0c0c0"},
{"kind":"values","position":70,"range":[0,240],"step":20,"color":"#ffffff","precision":0},
{"kind":"label","position":40,"angle":90,"text":"km/h","color":"#c0c0c0"},
{"kind":"label","position":50,"angle":270,"text":"0","color":"#ffffff"},
{"kind":"needle","position":60,"range":[0,240],"shape":"triangle","color":"#ff6700","precision":0,"label":true},
{"kind":"glass","position":88}]}`,

	"percent": `{"name":"percent","items":[
{"kind":"background","position":99},
{"kind":"colorband","position":85,"scheme":"normal","warn":70,"danger":90},
{"kind":"degrees","position":88,"step":10,"color":"#ffffff"},
{"kind":"degrees","position":88,"step":2,"subDegree":true,"color":"#c0c0c0"},
{"kind":"values","position":70,"step":20,"color":"#ffffff"},
{"kind":"label","position":50,"angle":270,"text":"0%","color":"#ffffff"},
{"kind":"needle","position":65,"shape":"feather","color":"#ff6700","format":"%1%","precision":0,"label":true},
{"kind":"glass","position":88}]}`,

	"tachometer": `{"name":"tachometer","items":[
{"kind":"background","position":99},
{"kind":"colorband","position":85,"range":[0,8],"bands":[{"color":"#00000000","upper":6},{"color":"#ffa500","upper":7},{"color":"#ff0000","upper":8}]},
{"kind":"degrees","position":88,"range":[0,8],"step":1,"color":"#ffffff"},
{"kind":"degrees","position":88,"range":[0,8],"step":0.25,"subDegree":true,"color":"#c0c0c0"},
{"kind":"values","position":70,"range":[0,8],"step":1,"color":"#ffffff","precision":0},
{"kind":"label","position":40,"angle":90,"text":"x1000 rpm","color":"#c0c0c0"},
{"kind":"label","position":50,"angle":270,"text":"0","color":"#ffffff"},
{"kind":"needle","position":65,"range":[0,8],"shape":"feather","color":"#ff0000","format":"%1 k","precision":1,"label":true},
{"kind":"glass","position":88}]}`,

	"thermometer": `{"name":"thermometer","items":[
{"kind":"background","position":99},
{"kind":"colorband","position":80,"range":[40,130],"degrees":[45,135],"scheme":"normal","warn":100,"danger":115},
{"kind":"degrees","position":88,"range":[40,130],"degrees":[45,135],"step":10,"color":"#ffffff"},
{"kind":"values","position":70,"range":[40,130],"degrees":[45,135],"step":30,"color":"#ffffff","precision":0},
{"kind":"label","position":30,"angle":270,"text":"°C","color":"#ffffff"},
{"kind":"needle","position":80,"range":[40,130],"degrees":[45,135],"shape":"diamond","color":"#ffffff","format":"%1 °C","precision":0,"label":true}]}`,

	"compass": `{"name":"compass","items":[
{"kind":"background","position":99},
{"kind":"degrees","position":90,"range":[0,360],"degrees":[90,450],"step":30,"color":"#ffffff"},
{"kind":"degrees","position":90,"range":[0,360],"degrees":[90,450],"step":10,"subDegree":true,"color":"#c0c0c0"},
{"kind":"values","position":72,"range":[0,330],"degrees":[90,420],"step":30,"color":"#ffffff","precision":0},
{"kind":"needle","position":70,"range":[0,360],"degrees":[90,450],"shape":"compass","markers":["#ff0000","#0000ff"]},
{"kind":"glass","position":90}]}`,

	"attitude": `{"name":"attitude","items":[
{"kind":"background","position":99},
{"kind":"attitude","position":90},
{"kind":"glass","position":90,"alpha":[0.1,0.3]}]}`,

	"boost": `{"name":"boost","items":[
{"kind":"background","position":99},
{"kind":"colorband","position":85,"range":[-1,2],"scheme":"universal","count":6},
{"kind":"degrees","position":88,"range":[-1,2],"step":0.5,"color":"#ffffff"},
{"kind":"degrees","position":88,"range":[-1,2],"step":0.1,"subDegree":true,"color":"#c0c0c0"},
{"kind":"values","position":70,"range":[-1,2],"step":0.5,"color":"#ffffff","precision":1},
{"kind":"label","position":40,"angle":90,"text":"bar","color":"#c0c0c0"},
{"kind":"label","position":50,"angle":270,"text":"0.00","color":"#ffffff"},
{"kind":"needle","position":65,"range":[-1,2],"shape":"attitude","color":"#ffffff","precision":2,"label":true},
{"kind":"glass","position":88}]}`,
}
