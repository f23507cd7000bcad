package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/masd01/one-led-watch/internal/status"
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
	"orDash": func(s string) string {
		if s == "" {
			return "—"
		}
		return s
	},
	"localTime": func(t time.Time) string {
		if t.IsZero() {
			return "—"
		}
		return t.Format("15:04:05")
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>One LED Watch</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.clock { font-size: 2em; letter-spacing: 0.1em; }
.idle { color: green; }
.servicing { color: orange; font-weight: bold; }
.await_release { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>One LED Watch</h1>

<p class="clock">{{orDash .Clock}}</p>

<h2>Scheduler</h2>
<table>
<tr><th>State</th><td class="{{if eq .SchedulerState "IDLE"}}idle{{else if eq .SchedulerState "SERVICING"}}servicing{{else}}await_release{{end}}">{{.SchedulerState}}</td></tr>
<tr><th>Presses serviced</th><td>{{.Presses}}</td></tr>
<tr><th>Displays completed</th><td>{{.Displays}}</td></tr>
<tr><th>Last displayed</th><td>{{orDash .LastDisplayed}} at {{localTime .LastDisplayAt}}</td></tr>
</table>

<h2>Daemon</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}} ({{.Config.Broker}})</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>Idle poll</th><td>{{.Config.IdlePollMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>LED pin</th><td>GPIO{{.Config.PinLED}}</td></tr>
<tr><th>Button pin</th><td>GPIO{{.Config.PinButton}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Template errors cannot happen with a value-type snapshot; if one
	// does, the partial page is still the best we can serve.
	_ = indexTmpl.Execute(w, snap)
}
