package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/envirocontrol/internal/status"
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
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>EnviroControl</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.auto { color: green; font-weight: bold; }
.manual { color: orange; font-weight: bold; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>EnviroControl</h1>

<h2>Control</h2>
<table>
<tr><th>Mode</th><td class="{{if .Control.AIEnabled}}auto{{else}}manual{{end}}">{{if .Control.AIEnabled}}AUTO{{else}}MANUAL{{end}}</td></tr>
<tr><th>Override</th><td>{{.Control.Override}}</td></tr>
<tr><th>Setpoint</th><td>{{printf "%.1f" .Control.Threshold}} &deg;C (&plusmn;{{printf "%.1f" .Control.Band}})</td></tr>
</table>

<h2>Last Reading</h2>
<table>
{{if .HaveSample}}
<tr><th>Temperature</th><td>{{printf "%.1f" .LastSample.Temperature}} &deg;C</td></tr>
<tr><th>Humidity</th><td>{{printf "%.1f" .LastSample.Humidity}} %</td></tr>
<tr><th>Light</th><td>{{.LastSample.Light}}</td></tr>
<tr><th>Observed</th><td>{{.LastSample.ObservedAt.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
{{else}}
<tr><th>Reading</th><td>none yet</td></tr>
{{end}}
</table>

<h2>Connectivity</h2>
<table>
<tr><th>Serial</th><td class="{{if .SerialConnected}}connected{{else}}disconnected{{end}}">{{if .SerialConnected}}connected{{else}}disconnected{{end}} ({{.Config.Device}})</td></tr>
{{if .Config.Broker}}<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>{{end}}
{{if .LastParseFailure}}<tr><th>Last parse failure</th><td>{{.LastParseFailure.Line}}</td></tr>{{end}}
</table>

<h2>Command Counts</h2>
<table>
<tr><th>Fan ON</th><td>{{.Counts.FanOn}}</td></tr>
<tr><th>Fan OFF</th><td>{{.Counts.FanOff}}</td></tr>
<tr><th>Light ON</th><td>{{.Counts.LightOn}}</td></tr>
<tr><th>Light OFF</th><td>{{.Counts.LightOff}}</td></tr>
<tr><th>Auto resume</th><td>{{.Counts.AutoResume}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Baud</th><td>{{.Config.Baud}}</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>Forecast</th><td>{{if .Config.ForecastOn}}enabled{{else}}disabled{{end}}</td></tr>
<tr><th>Database</th><td>{{.Config.DBPath}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
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
