package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/power-cycler/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"onoff": func(on bool) string {
		if on {
			return "ON"
		}
		return "OFF"
	},
	"yesno": func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	},
	"seconds": func(d time.Duration) string {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Power Cycler</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.err { color: red; font-weight: bold; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Power Cycler</h1>

<h2>Test</h2>
<table>
<tr><th>Mode</th><td>{{.Seq.Mode}}</td></tr>
<tr><th>Device power</th><td class="{{if .Seq.PowerOn}}on{{else}}off{{end}}">{{onoff .Seq.PowerOn}}</td></tr>
<tr><th>Cycle</th><td>{{.Seq.Cycle}}</td></tr>
<tr><th>Paused</th><td>{{yesno .Seq.Paused}}</td></tr>
<tr><th>Power-on delay</th><td>{{seconds .Seq.Delay}}</td></tr>
<tr><th>Check step</th><td>{{.Seq.Step}}</td></tr>
<tr><th>Attempt pending</th><td>{{yesno .Seq.AttemptOn}}</td></tr>
<tr><th>Countdown pending</th><td>{{yesno .Seq.CountdownPending}}</td></tr>
<tr><th>Toggle in flight</th><td>{{yesno .Seq.ToggleInFlight}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Power on</th><td>{{.Seq.Counts.On}}</td></tr>
<tr><th>Power off</th><td>{{.Seq.Counts.Off}}</td></tr>
<tr><th>Cycles</th><td>{{.Seq.Counts.Cycles}}</td></tr>
<tr><th>Toggles</th><td>{{.Seq.Counts.Toggles}}</td></tr>
<tr><th>Spurious power-on</th><td class="{{if .Seq.Counts.Spurious}}err{{end}}">{{.Seq.Counts.Spurious}}</td></tr>
<tr><th>Failed power-on</th><td class="{{if .Seq.Counts.Failed}}err{{end}}">{{.Seq.Counts.Failed}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Threshold</th><td>{{.Config.Threshold}}</td></tr>
<tr><th>Pulse</th><td>{{.Config.PulseMs}}ms</td></tr>
<tr><th>Settle</th><td>{{.Config.SettleMs}}ms</td></tr>
<tr><th>ADC</th><td>{{.Config.ADCDevice}} ch{{.Config.ADCChannel}}</td></tr>
<tr><th>Switch pin</th><td>{{.Config.SwitchPin}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPPort}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
